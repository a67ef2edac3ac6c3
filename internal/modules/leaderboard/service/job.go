package service

import (
	"context"
	"errors"
	"sync"

	leaderboardDto "anoa.com/skinannotator/internal/modules/leaderboard/dto"
)

const RefreshJobName = "leaderboard-refresh"

// RefreshJob rebuilds the leaderboard snapshot. An empty schedule makes it
// an on-demand job.
type RefreshJob struct {
	service  LeaderboardService
	schedule string

	mu   sync.Mutex
	last leaderboardDto.RefreshResult
}

func NewRefreshJob(service LeaderboardService, schedule string) *RefreshJob {
	return &RefreshJob{service: service, schedule: schedule}
}

func (j *RefreshJob) GetName() string {
	return RefreshJobName
}

func (j *RefreshJob) GetSchedule() string {
	return j.schedule
}

func (j *RefreshJob) Execute(ctx context.Context) error {
	result := j.service.Refresh(ctx)

	j.mu.Lock()
	j.last = result
	j.mu.Unlock()

	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}

// LastResult returns the outcome of the most recent run.
func (j *RefreshJob) LastResult() leaderboardDto.RefreshResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}
