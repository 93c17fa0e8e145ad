// Package utils provides utility functions and helpers for common operations
// used throughout the application: error taxonomy, JSON responses, request
// validation, logging setup and redaction of personal or secret values.
package utils

import (
	"strings"

	"github.com/teambitewolf/news-hole/internal/constants"
)

// NormalizeEmail trims and lower-cases an email address. Every store call
// goes through it, so email comparison is case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaskEmail masks the user part of an email address, showing only the first and last character.
//
// For example: "user@example.com" becomes "u**r@example.com"
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	user := parts[0]
	domain := parts[1]

	if len(user) <= 2 {
		return email
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + domain
}

// RedactSecrets replaces every occurrence of the given secrets in msg.
// Empty secrets are ignored.
func RedactSecrets(msg string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, constants.LogRedactedValue)
	}
	return msg
}

// TruncateString truncates a string to the given maximum length and adds ellipsis if necessary.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
