package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	leaderboardDto "anoa.com/skinannotator/internal/modules/leaderboard/dto"
	"anoa.com/skinannotator/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubService struct {
	limit      int
	refreshErr error
	result     leaderboardDto.RefreshResult
}

func (s *stubService) Refresh(ctx context.Context) leaderboardDto.RefreshResult {
	return s.result
}

func (s *stubService) ManualRefresh(ctx context.Context, userID uuid.UUID) (leaderboardDto.RefreshResult, error) {
	if s.refreshErr != nil {
		return leaderboardDto.RefreshResult{}, s.refreshErr
	}
	return s.result, nil
}

func (s *stubService) GetStats(ctx context.Context) ([]leaderboardDto.StatsEntry, error) {
	return []leaderboardDto.StatsEntry{}, nil
}

func (s *stubService) GetLeaderboard(ctx context.Context, limit int) ([]leaderboardDto.LeaderboardEntry, error) {
	s.limit = limit
	return []leaderboardDto.LeaderboardEntry{}, nil
}

func (s *stubService) Debug(ctx context.Context) (*leaderboardDto.DebugResponse, error) {
	return nil, errors.New("db down")
}

func setupRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLeaderboardHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.NewString())
		c.Next()
	})
	router.GET("/leaderboard", h.GetLeaderboard)
	router.GET("/stats", h.GetStats)
	router.POST("/stats/refresh", h.Refresh)
	router.GET("/debug", h.Debug)
	return router
}

func TestGetLeaderboardLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?limit=5", 5},
		{"?limit=0", 10},
		{"?limit=-3", 10},
		{"?limit=abc", 10},
		{"?limit=1000", 100},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			svc := &stubService{}
			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard"+tt.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("code = %d, want 200", w.Code)
			}
			if svc.limit != tt.want {
				t.Errorf("limit = %d, want %d", svc.limit, tt.want)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubService{result: leaderboardDto.RefreshResult{Success: true, Count: 3, DurationMs: 12}}
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stats/refresh", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200", w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["success"] != true || body["count"] != float64(3) || body["durationMs"] != float64(12) {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("failure", func(t *testing.T) {
		svc := &stubService{result: leaderboardDto.RefreshResult{Success: false, Error: "boom"}}
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stats/refresh", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("code = %d, want 500", w.Code)
		}
	})

	t.Run("throttled", func(t *testing.T) {
		svc := &stubService{refreshErr: &ratelimiter.RateLimitError{Message: "wait", RetryAfter: 20 * time.Second}}
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stats/refresh", nil))

		if w.Code != http.StatusTooManyRequests {
			t.Errorf("code = %d, want 429", w.Code)
		}
		if got := w.Header().Get("Retry-After"); got != "20" {
			t.Errorf("Retry-After = %q, want 20", got)
		}
	})
}

func TestDebugHidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(&stubService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "server error" {
		t.Errorf("error = %q, want generic message", body["error"])
	}
}
