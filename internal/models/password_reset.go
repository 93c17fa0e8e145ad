package models

import (
	"time"
)

// ResetPasswordEntry is a single-use capability to change one user's password.
// Token is the plaintext value handed to the user; stores persist only its digest.
type ResetPasswordEntry struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewResetPasswordEntry binds a fresh token to user at the given time.
func NewResetPasswordEntry(token string, user *User, now time.Time) *ResetPasswordEntry {
	return &ResetPasswordEntry{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now.UTC(),
	}
}

// IsValidAt reports whether the entry is still inside the validity window at now.
// An entry exactly window old is still valid.
func (e *ResetPasswordEntry) IsValidAt(now time.Time, window time.Duration) bool {
	return now.Sub(e.CreatedAt) <= window
}

// PasswordResetRequest requests a reset link for an email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest sets a new password using a reset token.
type ChangePasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// TokenValidityResponse reports whether a reset token can still be used.
type TokenValidityResponse struct {
	Valid bool `json:"valid"`
}
