// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines the account result messages, the machine-readable
// codes returned by the HTTP layer, and the generic user-facing error messages.
// Messages never contain passwords, hashes or tokens.
package constants

// Account result messages. These are the user-visible texts attached to
// each account operation result code.
const (
	MsgSuccess                = "Success!"
	MsgUserExists             = "User Exists"
	MsgAccountDoesNotExist    = "Account Does Not Exist."
	MsgPasswordDoesNotMatch   = "Password Does Not Match."
	MsgEmailNotFound          = "No user with provided email found."
	MsgTokenExpiredOrInvalid  = "Password reset link has expired or is invalid."
	MsgPasswordResetSubject   = "Password Reset Request"
	MsgPasswordResetBody      = "Reset password. Follow link: "
	MsgPasswordResetEmailSent = "Password reset instructions have been sent."
	MsgPasswordChanged        = "Password successfully changed."
	MsgAccountCreated         = "Account created."
)

// Account result codes as rendered by the HTTP layer.
const (
	CodeSuccess                = "success"
	CodeFailedToCreate         = "failed_to_create"
	CodeUserAlreadyExists      = "user_already_exists"
	CodeAccountDoesNotExist    = "account_does_not_exist"
	CodePasswordDoesNotMatch   = "password_does_not_match"
	CodeEmailNotFound          = "email_not_found"
	CodeFailedToResetPassword  = "failed_to_reset_password"
	CodeFailedToChangePassword = "failed_to_change_password"
	CodeEmailFailed            = "email_failed"
	CodeRateLimited            = "rate_limited"
)

// Email dispatch messages
const (
	MsgEmailSent          = "Email sent."
	MsgEmailUnknownSender = "Unknown sender category"
	MsgEmailSendFailed    = "Failed to send email"
)

// Generic user-facing error messages.
const (
	MsgAuthRequired        = "Authentication required"
	MsgInternalServerError = "An internal server error occurred"
	MsgTokenExpired        = "Authentication token has expired"
	MsgInvalidToken        = "Invalid token"
	MsgRequestBodyTooLarge = "Request body too large"
	MsgEmptyRequestBody    = "Request body must not be empty"
	MsgMalformedJSON       = "Request body contains malformed JSON"
	MsgResourceNotFound    = "The requested resource could not be found"
	MsgResourceExists      = "A resource with the same unique identifier already exists"
	MsgPersistenceFailure  = "The operation could not be saved"
	MsgRateLimited         = "Too many requests, please try again later"
	MsgServiceUnavailable  = "Service is not healthy"
)
