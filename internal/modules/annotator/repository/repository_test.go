package repository

import (
	"context"
	"sync"
	"testing"

	"anoa.com/skinannotator/internal/testutil"
)

func TestAddRewardsConcurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAnnotatorRepository(db)
	profile := testutil.CreateAnnotator(t, db, "alice", 0)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddRewards(context.Background(), profile.UserID, Reward{XP: 50, Points: 10, Annotations: 1}); err != nil {
				t.Errorf("AddRewards() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.FindByUserID(context.Background(), profile.UserID)
	if err != nil {
		t.Fatalf("FindByUserID() error = %v", err)
	}
	if got.XP != 500 || got.TotalPoints != 100 || got.TotalAnnotations != 10 {
		t.Errorf("counters = %d/%d/%d, want 500/100/10", got.XP, got.TotalPoints, got.TotalAnnotations)
	}
}
