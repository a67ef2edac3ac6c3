package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/skinannotator/internal/config"
	"anoa.com/skinannotator/internal/entity"
	"anoa.com/skinannotator/internal/testutil"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) (*Server, func(method, path, token string, body interface{}) (int, []byte)) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	for id := int64(1); id <= 3; id++ {
		testutil.CreateAnnotation(t, db, id, entity.StatusPending, nil, nil)
	}

	cfg := &config.Config{
		AllowedOrigins:          "http://localhost:5173",
		JWTSecret:               testutil.JWTSecret,
		JWTTTL:                  time.Hour,
		LeaderboardMaxStaleness: 15 * time.Minute,
		RefreshRateLimit:        30 * time.Second,
	}
	srv := NewServer(cfg, db, nil)

	call := func(method, path, token string, body interface{}) (int, []byte) {
		var buf bytes.Buffer
		if body != nil {
			if err := json.NewEncoder(&buf).Encode(body); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w.Code, w.Body.Bytes()
	}

	return srv, call
}

func TestAnnotationRoundTrip(t *testing.T) {
	_, call := newTestServer(t)

	code, body := call(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "ann@example.com",
		"password": "secret1",
		"nickname": "ann",
	})
	if code != http.StatusCreated {
		t.Fatalf("signup = %d %s", code, body)
	}
	var auth struct {
		Token string `json:"token"`
	}
	json.Unmarshal(body, &auth)

	code, body = call(http.MethodGet, "/api/annotations/next", auth.Token, nil)
	var next entity.Annotation
	json.Unmarshal(body, &next)
	if code != http.StatusOK || next.ImgID != 1 {
		t.Fatalf("next = %d %s, want img 1", code, body)
	}

	if code, body = call(http.MethodPatch, "/api/annotations/1/lock", auth.Token, nil); code != http.StatusOK {
		t.Fatalf("lock = %d %s", code, body)
	}

	code, body = call(http.MethodPut, "/api/annotations/1", auth.Token, map[string]interface{}{
		"status":        "done",
		"gender":        "female",
		"acne_present":  false,
		"wrinkle_score": 2,
	})
	if code != http.StatusOK {
		t.Fatalf("update = %d %s", code, body)
	}

	code, body = call(http.MethodGet, "/api/annotators/profile", auth.Token, nil)
	var profile struct {
		XP               int64 `json:"xp"`
		TotalPoints      int64 `json:"total_points"`
		TotalAnnotations int64 `json:"total_annotations"`
		Level            int   `json:"level"`
	}
	json.Unmarshal(body, &profile)
	if code != http.StatusOK || profile.XP != 50 || profile.TotalPoints != 10 || profile.TotalAnnotations != 1 || profile.Level != 1 {
		t.Fatalf("profile = %d %s", code, body)
	}

	code, body = call(http.MethodPost, "/api/annotators/stats/refresh", auth.Token, nil)
	var refresh struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	json.Unmarshal(body, &refresh)
	if code != http.StatusOK || !refresh.Success || refresh.Count != 1 {
		t.Fatalf("refresh = %d %s", code, body)
	}

	code, body = call(http.MethodGet, "/api/annotators/leaderboard?limit=5", auth.Token, nil)
	var board []struct {
		Nickname   string `json:"nickname"`
		Rank       int    `json:"rank"`
		ImageCount int64  `json:"image_count"`
	}
	json.Unmarshal(body, &board)
	if code != http.StatusOK || len(board) != 1 || board[0].Nickname != "ann" || board[0].Rank != 1 || board[0].ImageCount != 1 {
		t.Fatalf("leaderboard = %d %s", code, body)
	}

	code, body = call(http.MethodGet, "/api/auth/me", auth.Token, nil)
	var me struct {
		User struct {
			Email string `json:"email"`
			XP    int64  `json:"xp"`
		} `json:"user"`
	}
	json.Unmarshal(body, &me)
	if code != http.StatusOK || me.User.Email != "ann@example.com" || me.User.XP != 50 {
		t.Fatalf("me = %d %s", code, body)
	}

	code, body = call(http.MethodGet, "/api/annotations/next", auth.Token, nil)
	json.Unmarshal(body, &next)
	if code != http.StatusOK || next.ImgID != 2 {
		t.Fatalf("next after done = %d %s, want img 2", code, body)
	}
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	_, call := newTestServer(t)

	if code, _ := call(http.MethodGet, "/api/health", "", nil); code != http.StatusOK {
		t.Errorf("health = %d, want 200", code)
	}
	if code, _ := call(http.MethodGet, "/api/annotators/stats", "", nil); code != http.StatusUnauthorized {
		t.Errorf("stats without token = %d, want 401", code)
	}
	if code, _ := call(http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "bad"}); code != http.StatusBadRequest {
		t.Errorf("signin with invalid body = %d, want 400", code)
	}
}
