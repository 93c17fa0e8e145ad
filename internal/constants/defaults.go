// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used when configuration
// leaves a setting empty.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default number of idle database connections kept.
	DefaultDBMinConnections = 5

	// DefaultDBDriver is used when no driver is configured.
	DefaultDBDriver = DriverPostgres

	// DefaultSQLitePath is the database file used by the sqlite driver.
	DefaultSQLitePath = "./data/newshole.db"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName is reported in logs and the version endpoint.
	DefaultAppName = "newshole-account"
)

// Environment Types define the recognized application running environments.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Request limits
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	MaxRequestBodySize = 1048576

	// MaxRequestIDLength bounds a client supplied X-Request-ID.
	MaxRequestIDLength = 128
)

// Password hashing. Rounds is the bcrypt log2 work factor.
const (
	DefaultPasswordHashRounds = 10
	MinPasswordHashRounds     = 4
	MaxPasswordHashRounds     = 31
)

// Reset tokens
const (
	// ResetTokenBytes is the amount of randomness in a reset token (256 bits).
	ResetTokenBytes = 32

	// DefaultResetBaseURL is the NewPassword page the reset link points at.
	DefaultResetBaseURL = "http://localhost:8080/account/new-password"
)

// Auth defaults
const (
	DefaultJWTIssuer  = "newshole-account"
	BearerTokenPrefix = "Bearer "
)

// Email providers and defaults
const (
	EmailProviderLog      = "log"
	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"

	DefaultSMTPPort            = 587
	DefaultPasswordResetSender = "no-reply@newshole.local"
	DefaultSupportSender       = "support@newshole.local"
)

// Rate limit defaults for the account endpoints.
const (
	DefaultRateLimitPerSecond = 1.0
	DefaultRateLimitBurst     = 10

	// RateLimitCategoryAccount keys the limiters guarding the account group.
	RateLimitCategoryAccount = "account"
)

// Log redaction
const (
	LogRedactedValue = "[REDACTED]"
)
