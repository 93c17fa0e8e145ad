package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teambitewolf/news-hole/internal/auth"
	"github.com/teambitewolf/news-hole/internal/config"
)

func TestGetUserID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), auth.UserIDContextKey, int64(123)))

	userID, ok := auth.GetUserID(r)
	assert.True(t, ok)
	assert.Equal(t, int64(123), userID)

	userID, ok = auth.GetUserID(httptest.NewRequest("GET", "/", nil))
	assert.False(t, ok)
	assert.Zero(t, userID)
}

func TestGetEmail(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), auth.EmailContextKey, "test@example.com"))

	email, ok := auth.GetEmail(r)
	assert.True(t, ok)
	assert.Equal(t, "test@example.com", email)

	_, ok = auth.GetEmail(httptest.NewRequest("GET", "/", nil))
	assert.False(t, ok)
}

func TestGetRequestID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), auth.RequestIDContextKey, "req123"))

	requestID, ok := auth.GetRequestID(r)
	assert.True(t, ok)
	assert.Equal(t, "req123", requestID)
}

func TestIsAuthenticated(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.False(t, auth.IsAuthenticated(r))

	r = r.WithContext(context.WithValue(r.Context(), auth.UserIDContextKey, int64(1)))
	assert.True(t, auth.IsAuthenticated(r))
}

func TestJWTAuthProvider_Authenticate(t *testing.T) {
	service := auth.NewJWTService(&config.JWTSettings{
		Secret: "test-secret",
		Expiry: 15 * time.Minute,
		Issuer: "test-issuer",
	})
	provider := auth.NewJWTAuthProvider(service)

	token, _, err := service.GenerateAccessToken(7, "test@test.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"Valid bearer token", "Bearer " + token, false},
		{"Missing header", "", true},
		{"Wrong scheme", "Basic " + token, true},
		{"Garbage token", "Bearer not.a.token", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/account/info", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			userID, email, err := provider.Authenticate(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, "test@test.com", email)
		})
	}
}

// MockAuthProvider implements the AuthProvider interface for testing
type MockAuthProvider struct {
	AuthenticateFunc func(r *http.Request) (int64, string, error)
}

func (m *MockAuthProvider) Authenticate(r *http.Request) (int64, string, error) {
	return m.AuthenticateFunc(r)
}

func TestAuthMiddleware(t *testing.T) {
	successProvider := &MockAuthProvider{
		AuthenticateFunc: func(r *http.Request) (int64, string, error) {
			return 123, "test@example.com", nil
		},
	}
	failProvider := &MockAuthProvider{
		AuthenticateFunc: func(r *http.Request) (int64, string, error) {
			return 0, "", fmt.Errorf("authentication failed")
		},
	}

	var handlerCalled bool
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true

		userID, ok := auth.GetUserID(r)
		assert.True(t, ok)
		assert.Equal(t, int64(123), userID)

		email, ok := auth.GetEmail(r)
		assert.True(t, ok)
		assert.Equal(t, "test@example.com", email)

		requestID, ok := auth.GetRequestID(r)
		assert.True(t, ok)
		assert.Equal(t, "req123", requestID)

		w.WriteHeader(http.StatusOK)
	})

	t.Run("Successful authentication", func(t *testing.T) {
		handlerCalled = false
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Request-ID", "req123")
		w := httptest.NewRecorder()

		auth.AuthMiddleware(nextHandler, failProvider, successProvider).ServeHTTP(w, r)

		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed authentication", func(t *testing.T) {
		handlerCalled = false
		r := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		auth.AuthMiddleware(nextHandler, failProvider).ServeHTTP(w, r)

		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authentication_failed")
	})

	t.Run("No providers", func(t *testing.T) {
		handlerCalled = false
		w := httptest.NewRecorder()

		auth.AuthMiddleware(nextHandler).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	service := auth.NewJWTService(&config.JWTSettings{Secret: "s", Expiry: -time.Minute})
	token, _, err := service.GenerateAccessToken(1, "a@b.c")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler := auth.RequireAuth(auth.NewJWTAuthProvider(service))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an expired token")
	}))
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_expired")
}

func TestRequireAuth(t *testing.T) {
	provider := &MockAuthProvider{
		AuthenticateFunc: func(r *http.Request) (int64, string, error) {
			return 123, "test@example.com", nil
		},
	}

	var handlerCalled bool
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	auth.RequireAuth(provider)(nextHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.True(t, handlerCalled)
}
