package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"anoa.com/skinannotator/internal/entity"
	leaderboardDto "anoa.com/skinannotator/internal/modules/leaderboard/dto"
	leaderboardRepo "anoa.com/skinannotator/internal/modules/leaderboard/repository"
	"anoa.com/skinannotator/pkg/ratelimiter"
	"github.com/google/uuid"
)

const refreshAction = "leaderboard_refresh"

type Options struct {
	// MaxStaleness is the snapshot age after which reads go live. Zero
	// disables the check.
	MaxStaleness time.Duration
	// RefreshCooldown throttles manual refreshes per user when Redis is set.
	RefreshCooldown time.Duration
}

// Throttle enforces the per-user cooldown on manual refreshes.
type Throttle interface {
	Allow(ctx context.Context, userID uuid.UUID, action string, limit time.Duration) (bool, error)
	TTL(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error)
	Clear(ctx context.Context, userID uuid.UUID, action string) error
}

type LeaderboardService interface {
	Refresh(ctx context.Context) leaderboardDto.RefreshResult
	ManualRefresh(ctx context.Context, userID uuid.UUID) (leaderboardDto.RefreshResult, error)
	GetStats(ctx context.Context) ([]leaderboardDto.StatsEntry, error)
	GetLeaderboard(ctx context.Context, limit int) ([]leaderboardDto.LeaderboardEntry, error)
	Debug(ctx context.Context) (*leaderboardDto.DebugResponse, error)
}

type leaderboardService struct {
	repo     leaderboardRepo.LeaderboardRepository
	throttle Throttle
	opts     Options
	now      func() time.Time

	// refreshMu serializes snapshot rebuilds inside this process.
	refreshMu sync.Mutex
}

// NewLeaderboardService builds the service. A nil throttle disables the
// manual refresh cooldown.
func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, throttle Throttle, opts Options) LeaderboardService {
	if throttle == nil {
		throttle = ratelimiter.NewLimiter(nil)
	}
	return &leaderboardService{
		repo:     repo,
		throttle: throttle,
		opts:     opts,
		now:      time.Now,
	}
}

// Refresh rebuilds the snapshot in one transaction. Failures are reported in
// the result, never returned.
func (s *leaderboardService) Refresh(ctx context.Context) leaderboardDto.RefreshResult {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.now()
	count := 0

	err := s.repo.Transaction(ctx, func(tx leaderboardRepo.LeaderboardRepository) error {
		profiles, err := tx.FindProfiles(ctx)
		if err != nil {
			return err
		}
		completions, err := tx.FindCompletions(ctx)
		if err != nil {
			return err
		}

		stats := BuildStandings(profiles, completions, s.now())
		if err := tx.ReplaceSnapshot(ctx, stats); err != nil {
			return err
		}
		count = len(stats)
		return nil
	})

	duration := s.now().Sub(start).Milliseconds()
	if err != nil {
		log.Printf("[LEADERBOARD] refresh failed after %dms: %v", duration, err)
		return leaderboardDto.RefreshResult{
			Success:    false,
			DurationMs: duration,
			Error:      err.Error(),
		}
	}

	log.Printf("[LEADERBOARD] refreshed %d annotators in %dms", count, duration)
	return leaderboardDto.RefreshResult{
		Success:    true,
		Message:    "leaderboard refreshed",
		Count:      count,
		DurationMs: duration,
	}
}

func (s *leaderboardService) ManualRefresh(ctx context.Context, userID uuid.UUID) (leaderboardDto.RefreshResult, error) {
	allowed, err := s.throttle.Allow(ctx, userID, refreshAction, s.opts.RefreshCooldown)
	if err != nil {
		// Redis outages must not block the refresh.
		log.Printf("[LEADERBOARD] rate limit check skipped for user=%s: %v", userID, err)
		allowed = true
	}
	if !allowed {
		ttl, _ := s.throttle.TTL(ctx, userID, refreshAction)
		if ttl <= 0 {
			ttl = s.opts.RefreshCooldown
		}
		return leaderboardDto.RefreshResult{}, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("leaderboard was refreshed recently. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	log.Printf("[LEADERBOARD] manual refresh requested by user=%s", userID)
	result := s.Refresh(ctx)
	if !result.Success {
		// A failed refresh does not count against the cooldown.
		if err := s.throttle.Clear(ctx, userID, refreshAction); err != nil {
			log.Printf("[LEADERBOARD] failed to clear cooldown for user=%s: %v", userID, err)
		}
	}
	return result, nil
}

func (s *leaderboardService) GetStats(ctx context.Context) ([]leaderboardDto.StatsEntry, error) {
	stats, err := s.readStandings(ctx, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboardDto.StatsEntry, 0, len(stats))
	for _, stat := range stats {
		entries = append(entries, leaderboardDto.NewStatsEntry(stat))
	}
	return entries, nil
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]leaderboardDto.LeaderboardEntry, error) {
	stats, err := s.readStandings(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(stats))
	for _, stat := range stats {
		entries = append(entries, leaderboardDto.NewLeaderboardEntry(stat))
	}
	return entries, nil
}

func (s *leaderboardService) Debug(ctx context.Context) (*leaderboardDto.DebugResponse, error) {
	res := &leaderboardDto.DebugResponse{
		Top10: []leaderboardDto.LeaderboardEntry{},
	}
	if !s.repo.HasCacheTable(ctx) {
		return res, nil
	}
	res.TableExists = true

	count, err := s.repo.CountCached(ctx)
	if err != nil {
		return nil, err
	}
	res.TotalAnnotators = count

	top, err := s.repo.FindCached(ctx, 10)
	if err != nil {
		return nil, err
	}
	for _, stat := range top {
		res.Top10 = append(res.Top10, leaderboardDto.NewLeaderboardEntry(stat))
	}
	if len(top) > 0 {
		last := top[0].LastRefreshed
		res.LastRefresh = &last
	}

	return res, nil
}

// readStandings serves the snapshot when it is usable and falls back to a
// live computation otherwise.
func (s *leaderboardService) readStandings(ctx context.Context, limit int) ([]entity.AnnotatorStat, error) {
	if stats, ok := s.readSnapshot(ctx, limit); ok {
		return stats, nil
	}
	return s.computeLive(ctx, limit)
}

func (s *leaderboardService) readSnapshot(ctx context.Context, limit int) ([]entity.AnnotatorStat, bool) {
	if !s.repo.HasCacheTable(ctx) {
		log.Printf("[LEADERBOARD] cache table missing, using live query")
		return nil, false
	}

	stats, err := s.repo.FindCached(ctx, limit)
	if err != nil {
		log.Printf("[LEADERBOARD] cache read failed, using live query: %v", err)
		return nil, false
	}
	if len(stats) == 0 {
		log.Printf("[LEADERBOARD] cache empty, using live query")
		return nil, false
	}

	if s.opts.MaxStaleness > 0 {
		if age := s.now().Sub(stats[0].LastRefreshed); age > s.opts.MaxStaleness {
			log.Printf("[LEADERBOARD] cache is %s old, using live query", age.Round(time.Second))
			return nil, false
		}
	}

	return stats, true
}

func (s *leaderboardService) computeLive(ctx context.Context, limit int) ([]entity.AnnotatorStat, error) {
	profiles, err := s.repo.FindProfiles(ctx)
	if err != nil {
		return nil, err
	}
	completions, err := s.repo.FindCompletions(ctx)
	if err != nil {
		return nil, err
	}

	stats := BuildStandings(profiles, completions, time.Time{})
	for i := range stats {
		stats[i].Rank = 0
	}
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}
