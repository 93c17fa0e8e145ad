// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines routing, request parameter and context key
// constants so that handlers, middleware and tests agree on names.
package constants

// Base Routes define the root URL paths for different parts of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"

	// VersionPath reports the running version and environment.
	VersionPath = "/version"

	// AccountPath groups every account endpoint under the API base path.
	AccountPath = "/account"
)

// Account routes, relative to AccountPath.
const (
	RouteLogin          = "/login"
	RouteInfo           = "/info"
	RoutePasswordReset  = "/password/reset"
	RoutePasswordToken  = "/password/token"
	RoutePasswordChange = "/password/new"
)

// Query Parameters define common query string parameter names.
const (
	// QueryParamToken carries a password reset token in the NewPassword link.
	QueryParamToken = "token"
)

// Context Key Names
const (
	UserIDContextKey    = "user_id"
	EmailContextKey     = "email"
	RequestIDContextKey = "request_id"
)

// Auth Token Types
const (
	TokenTypeAccess = "access"
	TokenTypeBearer = "Bearer"
)

// Account field limits. MinPasswordLength matches the account forms.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
	MaxNameLength     = 100
	MaxEmailLength    = 255
)
