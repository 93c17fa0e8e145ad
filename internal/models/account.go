package models

import (
	"github.com/teambitewolf/news-hole/internal/constants"
)

// CreateAccountCode is the outcome of creating an account.
type CreateAccountCode int

const (
	CreateAccountSuccess CreateAccountCode = iota
	CreateAccountUserAlreadyExists
	CreateAccountFailedToCreate
)

// String returns the API code.
func (c CreateAccountCode) String() string {
	switch c {
	case CreateAccountSuccess:
		return constants.CodeSuccess
	case CreateAccountUserAlreadyExists:
		return constants.CodeUserAlreadyExists
	default:
		return constants.CodeFailedToCreate
	}
}

// CreateAccountResult is returned by CreateAccount.
// Err is nil on success and is classified with the utils error sentinels otherwise.
type CreateAccountResult struct {
	Code    CreateAccountCode
	Message string
	Err     error
}

// LoginCode is the outcome of a credential check.
type LoginCode int

const (
	LoginSuccess LoginCode = iota
	LoginAccountDoesNotExist
	LoginPasswordDoesNotMatch
)

// String returns the API code.
func (c LoginCode) String() string {
	switch c {
	case LoginSuccess:
		return constants.CodeSuccess
	case LoginAccountDoesNotExist:
		return constants.CodeAccountDoesNotExist
	default:
		return constants.CodePasswordDoesNotMatch
	}
}

// LoginResult is returned by Login. User and UserID are set only on success;
// UserID is the subject of the access token issued by the HTTP layer.
type LoginResult struct {
	Code    LoginCode
	Message string
	User    *UserLogin
	UserID  int64
	Err     error
}

// ResetPasswordCode is the outcome of requesting a reset token.
type ResetPasswordCode int

const (
	ResetPasswordSuccess ResetPasswordCode = iota
	ResetPasswordEmailNotFound
	ResetPasswordFailedToResetPassword
)

// String returns the API code.
func (c ResetPasswordCode) String() string {
	switch c {
	case ResetPasswordSuccess:
		return constants.CodeSuccess
	case ResetPasswordEmailNotFound:
		return constants.CodeEmailNotFound
	default:
		return constants.CodeFailedToResetPassword
	}
}

// ResetPasswordResult is returned by ResetPassword.
// Token is empty unless Code is ResetPasswordSuccess.
type ResetPasswordResult struct {
	Code    ResetPasswordCode
	Message string
	Token   string
	Err     error
}

// ChangePasswordCode is the outcome of consuming a reset token.
type ChangePasswordCode int

const (
	ChangePasswordSuccess ChangePasswordCode = iota
	ChangePasswordFailedToChangePassword
	// ChangePasswordTokenExpired is reported by callers that checked validity first.
	ChangePasswordTokenExpired
)

// String returns the API code.
func (c ChangePasswordCode) String() string {
	switch c {
	case ChangePasswordSuccess:
		return constants.CodeSuccess
	case ChangePasswordTokenExpired:
		return constants.CodeTokenExpired
	default:
		return constants.CodeFailedToChangePassword
	}
}

// ChangePasswordResult is returned by ChangePassword.
type ChangePasswordResult struct {
	Code    ChangePasswordCode
	Message string
	Err     error
}

// AccountInfoCode is the outcome of an account lookup.
type AccountInfoCode int

const (
	AccountInfoSuccess AccountInfoCode = iota
	AccountInfoAccountDoesNotExist
)

// String returns the API code.
func (c AccountInfoCode) String() string {
	if c == AccountInfoSuccess {
		return constants.CodeSuccess
	}
	return constants.CodeAccountDoesNotExist
}

// AccountInfoResult is returned by GetAccountInfo.
type AccountInfoResult struct {
	Code    AccountInfoCode
	Message string
	User    *UserLogin
	Err     error
}
