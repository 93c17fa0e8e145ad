package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teambitewolf/news-hole/internal/models"
)

func TestNewResetPasswordEntry(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2024, 3, 1, 13, 0, 0, 0, loc)
	user := &models.User{ID: 42, Email: "test@test.com"}

	entry := models.NewResetPasswordEntry("tok", user, now)

	assert.Equal(t, "tok", entry.Token)
	assert.Equal(t, int64(42), entry.UserID)
	assert.Equal(t, "test@test.com", entry.Email)
	assert.Equal(t, time.UTC, entry.CreatedAt.Location())
	assert.True(t, entry.CreatedAt.Equal(now))
}

func TestResetPasswordEntry_IsValidAt(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := &models.ResetPasswordEntry{Token: "tok", CreatedAt: created}

	tests := []struct {
		name  string
		after time.Duration
		want  bool
	}{
		{"Just created", 0, true},
		{"Fifty nine minutes", 59 * time.Minute, true},
		{"Exactly one hour", time.Hour, true},
		{"One hour and a nanosecond", time.Hour + time.Nanosecond, false},
		{"Sixty one minutes", 61 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entry.IsValidAt(created.Add(tt.after), time.Hour))
		})
	}
}

func TestResetPasswordEntry_JSONOmitsToken(t *testing.T) {
	entry := &models.ResetPasswordEntry{Token: "super-secret-token", UserID: 1}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "super-secret-token")
}
