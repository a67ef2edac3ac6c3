package ratelimiter

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"anoa.com/skinannotator/pkg/apperror"
	"github.com/google/uuid"
)

func TestNilClientAlwaysAllows(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		allowed, err := CheckAndSetRateLimit(ctx, nil, userID, "refresh", time.Minute)
		if err != nil {
			t.Fatalf("CheckAndSetRateLimit() error = %v", err)
		}
		if !allowed {
			t.Fatalf("CheckAndSetRateLimit() call %d = false, want true", i)
		}
	}

	ttl, err := GetRateLimitTTL(ctx, nil, userID, "refresh")
	if err != nil || ttl != 0 {
		t.Errorf("GetRateLimitTTL() = %v, %v, want 0, nil", ttl, err)
	}
	if err := ClearRateLimit(ctx, nil, userID, "refresh"); err != nil {
		t.Errorf("ClearRateLimit() error = %v", err)
	}
}

func TestLimiterWithoutClient(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	for _, l := range []*Limiter{NewLimiter(nil), nil} {
		for i := 0; i < 2; i++ {
			if allowed, err := l.Allow(ctx, userID, "refresh", time.Minute); err != nil || !allowed {
				t.Fatalf("Allow() call %d = %v, %v, want true, nil", i, allowed, err)
			}
		}
		if ttl, err := l.TTL(ctx, userID, "refresh"); err != nil || ttl != 0 {
			t.Errorf("TTL() = %v, %v, want 0, nil", ttl, err)
		}
		if err := l.Clear(ctx, userID, "refresh"); err != nil {
			t.Errorf("Clear() error = %v", err)
		}
	}
}

func TestRateLimitErrorMapsTo429(t *testing.T) {
	var err error = &RateLimitError{Message: "slow down", RetryAfter: 10 * time.Second}

	if !errors.Is(err, apperror.ErrRateLimitExceeded) {
		t.Fatal("RateLimitError should unwrap to ErrRateLimitExceeded")
	}
	if got := apperror.MapErrorToStatus(err); got != http.StatusTooManyRequests {
		t.Errorf("MapErrorToStatus() = %d, want %d", got, http.StatusTooManyRequests)
	}
	if err.Error() != "slow down" {
		t.Errorf("Error() = %q, want %q", err.Error(), "slow down")
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	if _, err := Connect(context.Background(), "not-a-url"); err == nil {
		t.Error("Connect() with invalid url should fail")
	}
}
