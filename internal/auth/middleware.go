// Package auth provides password hashing, reset token generation and
// bearer token authentication for the account API.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information and request metadata.
const (
	UserIDContextKey    ContextKey = constants.UserIDContextKey
	EmailContextKey     ContextKey = constants.EmailContextKey
	RequestIDContextKey ContextKey = constants.RequestIDContextKey
)

// AuthProvider authenticates a request and returns the user's ID and email.
type AuthProvider interface {
	Authenticate(r *http.Request) (int64, string, error)
}

// JWTAuthProvider implements bearer token authentication.
type JWTAuthProvider struct {
	jwtService JWTValidator
}

// NewJWTAuthProvider creates a new JWTAuthProvider with the specified JWT validator.
func NewJWTAuthProvider(jwtService JWTValidator) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
	}
}

// Authenticate extracts the bearer token from the Authorization header and validates it.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (int64, string, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return 0, "", utils.ErrUnauthorized
	}

	token := strings.TrimPrefix(authHeader, constants.BearerTokenPrefix)

	claims, err := p.jwtService.ValidateToken(token, constants.TokenTypeAccess)
	if err != nil {
		return 0, "", err
	}

	return claims.UserID, claims.Email, nil
}

// AuthMiddleware wraps an HTTP handler with authentication.
// The request proceeds if at least one provider succeeds.
func AuthMiddleware(next http.Handler, providers ...AuthProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID, ok := GetRequestID(r)
		if !ok {
			requestID = r.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			ctx = context.WithValue(ctx, RequestIDContextKey, requestID)
		}

		var lastErr error = utils.ErrUnauthorized
		for _, provider := range providers {
			userID, email, err := provider.Authenticate(r)
			if err == nil {
				ctx = context.WithValue(ctx, UserIDContextKey, userID)
				ctx = context.WithValue(ctx, EmailContextKey, email)

				log.Debug().
					Int64("user_id", userID).
					Str("request_id", requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("User authenticated")

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			lastErr = err
		}

		log.Info().
			Err(lastErr).
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Authentication failed")

		var appErr *utils.AppError
		switch {
		case errors.As(lastErr, &appErr):
			utils.ErrorFromAppError(w, appErr)
		case errors.Is(lastErr, utils.ErrUnauthorized):
			utils.Unauthorized(w, constants.MsgAuthRequired)
		default:
			utils.Error(w, http.StatusUnauthorized, constants.CodeAuthenticationFailed, constants.MsgAuthRequired, nil)
		}
	})
}

// RequireAuth returns a router middleware that requires authentication.
func RequireAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return AuthMiddleware(next, providers...)
	}
}

// GetUserID extracts the user ID from the request context.
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(int64)
	return userID, ok
}

// GetEmail extracts the authenticated email from the request context.
func GetEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(EmailContextKey).(string)
	return email, ok
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// IsAuthenticated checks if the request is authenticated.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUserID(r)
	return ok
}
