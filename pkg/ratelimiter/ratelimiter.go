// Package ratelimiter implements per-user cooldowns on top of Redis SETNX.
// A nil client disables every check.
package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"anoa.com/skinannotator/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitError carries how long the caller has to wait.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

func key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

// CheckAndSetRateLimit reports whether the action is allowed and, if so,
// starts the cooldown.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, key(userID, action), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.TTL(ctx, key(userID, action)).Result()
}

func ClearRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) error {
	if rdb == nil {
		return nil
	}
	_, err := rdb.Del(ctx, key(userID, action)).Result()
	return err
}

// Limiter binds the cooldown helpers to one client. A Limiter built on a nil
// client allows everything.
type Limiter struct {
	rdb *redis.Client
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func (l *Limiter) Allow(ctx context.Context, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	return CheckAndSetRateLimit(ctx, l.client(), userID, action, limit)
}

func (l *Limiter) TTL(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error) {
	return GetRateLimitTTL(ctx, l.client(), userID, action)
}

func (l *Limiter) Clear(ctx context.Context, userID uuid.UUID, action string) error {
	return ClearRateLimit(ctx, l.client(), userID, action)
}

func (l *Limiter) client() *redis.Client {
	if l == nil {
		return nil
	}
	return l.rdb
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
