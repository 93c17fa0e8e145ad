package auth

import (
	"github.com/teambitewolf/news-hole/internal/config"
)

// JWTValidator defines the interface for access token validation
type JWTValidator interface {
	// ValidateToken validates a token and returns its claims if valid
	ValidateToken(tokenString string, expectedType string) (*CustomClaims, error)

	// GetConfig returns the JWT settings configuration
	GetConfig() *config.JWTSettings
}

// TokenIssuer signs access tokens after a successful login
type TokenIssuer interface {
	GenerateAccessToken(userID int64, email string) (string, string, error)
	GetConfig() *config.JWTSettings
}
