package utils_test

import (
	"testing"

	"github.com/teambitewolf/news-hole/internal/utils"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"Already normalized", "test@test.com", "test@test.com"},
		{"Mixed case", "Test@Test.COM", "test@test.com"},
		{"Surrounding whitespace", "  test@test.com \n", "test@test.com"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.NormalizeEmail(tt.email); got != tt.want {
				t.Errorf("NormalizeEmail() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"Standard email", "user@example.com", "u**r@example.com"},
		{"Short user part", "ab@example.com", "ab@example.com"},
		{"Not an email", "notanemail", "notanemail"},
		{"Long user part", "johnsmith@example.com", "j*******h@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.MaskEmail(tt.email); got != tt.want {
				t.Errorf("MaskEmail() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRedactSecrets(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		secrets []string
		want    string
	}{
		{"No secrets", "failed to update user", nil, "failed to update user"},
		{"Plaintext echoed", "bad value hunter22 rejected", []string{"hunter22"}, "bad value [REDACTED] rejected"},
		{"Hash and plaintext", "p=pw h=$2a$10$abc", []string{"pw", "$2a$10$abc"}, "p=[REDACTED] h=[REDACTED]"},
		{"Empty secret ignored", "message", []string{""}, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.RedactSecrets(tt.msg, tt.secrets...); got != tt.want {
				t.Errorf("RedactSecrets() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"Shorter than max", "hello", 10, "hello"},
		{"Longer than max", "hello world", 8, "hello..."},
		{"Tiny max", "hello", 2, "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.TruncateString(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString() = %v, want %v", got, tt.want)
			}
		})
	}
}
