// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as response codes,
// headers, and content types used by the response helpers and middleware.
package constants

// Response flags for the JSON envelope.
const (
	// ResponseSuccess marks a successful response envelope.
	ResponseSuccess = true

	// ResponseFailure marks an error response envelope.
	ResponseFailure = false
)

// Generic error codes used in the JSON envelope.
const (
	CodeBadRequest           = "bad_request"
	CodeUnauthorized         = "unauthorized"
	CodeNotFound             = "not_found"
	CodeConflict             = "conflict"
	CodeInternalError        = "internal_error"
	CodeValidationError      = "validation_error"
	CodeTokenExpired         = "token_expired"
	CodeTokenInvalid         = "token_invalid"
	CodeAuthenticationFailed = "authentication_failed"
	CodeServiceUnavailable   = "service_unavailable"
	CodePersistenceFailure   = "persistence_failure"
)

// HTTP Header Names define common HTTP headers used in requests and responses.
const (
	HeaderContentType           = "Content-Type"
	HeaderCacheControl          = "Cache-Control"
	HeaderAuthorization         = "Authorization"
	HeaderXRequestID            = "X-Request-ID"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderRetryAfter            = "Retry-After"
	HeaderXForwardedFor         = "X-Forwarded-For"
	HeaderXRealIP               = "X-Real-IP"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
)

// Security header values.
const (
	FrameOptionsDeny           = "DENY"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'"
	CacheControlNoStore        = "no-cache, no-store, must-revalidate"
)
