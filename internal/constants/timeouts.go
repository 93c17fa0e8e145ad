package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 10 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// Authentication Timeouts
const (
	DefaultJWTExpiry = 15 * time.Minute

	// ResetTokenValidity is the fixed window during which a reset token may be used.
	// A token exactly ResetTokenValidity old is still valid.
	ResetTokenValidity = 1 * time.Hour
)

// Rate limiting
const (
	RateLimitCleanupInterval = 10 * time.Minute
	RateLimitIdleExpiry      = 1 * time.Hour
)

// Email dispatch
const (
	DefaultSMTPTimeout     = 15 * time.Second
	DefaultSendGridTimeout = 15 * time.Second
)
