package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teambitewolf/news-hole/internal/auth"
	"github.com/teambitewolf/news-hole/internal/config"
	"github.com/teambitewolf/news-hole/internal/middleware"
)

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(&config.JWTSettings{Secret: "test-secret", Expiry: 15 * time.Minute, Issuer: "test-issuer"})
	token, _, err := jwtService.GenerateAccessToken(7, "ada@example.com")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"Valid token", "Bearer " + token, http.StatusOK},
		{"Missing header", "", http.StatusUnauthorized},
		{"Garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var email string
			handler := middleware.JWTAuth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				email, _ = auth.GetEmail(r)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/account/info", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "ada@example.com", email)
			} else {
				assert.Empty(t, email)
			}
		})
	}
}
