package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/skinannotator/internal/entity"
	"anoa.com/skinannotator/internal/testutil"
	"github.com/google/uuid"
)

func snapshotOf(refreshedAt time.Time, nicknames ...string) []entity.AnnotatorStat {
	stats := make([]entity.AnnotatorStat, 0, len(nicknames))
	for i, nickname := range nicknames {
		stats = append(stats, entity.AnnotatorStat{
			UserID:        uuid.New(),
			Nickname:      nickname,
			Rank:          i + 1,
			Level:         1,
			LastRefreshed: refreshedAt,
		})
	}
	return stats
}

func nicknames(stats []entity.AnnotatorStat) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Nickname
	}
	return out
}

func TestReadersKeepPreviousSnapshotDuringRefresh(t *testing.T) {
	writer, reader := testutil.SetupSharedTestDB(t)
	ctx := context.Background()
	repo := NewLeaderboardRepository(writer)
	readRepo := NewLeaderboardRepository(reader)

	if err := repo.ReplaceSnapshot(ctx, snapshotOf(time.Now(), "old")); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}

	err := repo.Transaction(ctx, func(tx LeaderboardRepository) error {
		if err := tx.ReplaceSnapshot(ctx, snapshotOf(time.Now(), "new-1", "new-2")); err != nil {
			return err
		}

		during, err := readRepo.FindCached(ctx, 0)
		if err != nil {
			return err
		}
		if got := nicknames(during); len(got) != 1 || got[0] != "old" {
			t.Errorf("snapshot during refresh = %v, want [old]", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}

	after, err := readRepo.FindCached(ctx, 0)
	if err != nil {
		t.Fatalf("FindCached() error = %v", err)
	}
	if got := nicknames(after); len(got) != 2 || got[0] != "new-1" || got[1] != "new-2" {
		t.Errorf("snapshot after commit = %v, want [new-1 new-2]", got)
	}
}

func TestFailedRefreshKeepsSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewLeaderboardRepository(db)

	if err := repo.ReplaceSnapshot(ctx, snapshotOf(time.Now(), "a", "b")); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx LeaderboardRepository) error {
		if err := tx.ReplaceSnapshot(ctx, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want %v", err, boom)
	}

	count, err := repo.CountCached(ctx)
	if err != nil {
		t.Fatalf("CountCached() error = %v", err)
	}
	if count != 2 {
		t.Errorf("cache rows = %d after rollback, want 2", count)
	}
}
