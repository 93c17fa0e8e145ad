package middleware

import (
	"net/http"

	"github.com/teambitewolf/news-hole/internal/auth"
)

// JWTAuth is a middleware that requires a valid bearer access token
func JWTAuth(jwtService auth.JWTValidator) func(http.Handler) http.Handler {
	provider := auth.NewJWTAuthProvider(jwtService)
	return auth.RequireAuth(provider)
}
