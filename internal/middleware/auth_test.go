package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const secret = "middleware-secret"

func sign(t *testing.T, key string, subject string, expires time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.NewString()

	router := gin.New()
	router.GET("/me", NewAuthMiddleware(secret).RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"no token provided"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"error":"no token provided"}`},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"wrong key", "Bearer " + sign(t, "other", userID, time.Now().Add(time.Hour)), http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"expired", "Bearer " + sign(t, secret, userID, time.Now().Add(-time.Hour)), http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"valid", "Bearer " + sign(t, secret, userID, time.Now().Add(time.Hour)), http.StatusOK, userID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}
