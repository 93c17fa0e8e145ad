package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teambitewolf/news-hole/internal/models"
)

func TestResultCodeStrings(t *testing.T) {
	tests := []struct {
		name string
		code interface{ String() string }
		want string
	}{
		{"create success", models.CreateAccountSuccess, "success"},
		{"create exists", models.CreateAccountUserAlreadyExists, "user_already_exists"},
		{"create failed", models.CreateAccountFailedToCreate, "failed_to_create"},
		{"login success", models.LoginSuccess, "success"},
		{"login unknown", models.LoginAccountDoesNotExist, "account_does_not_exist"},
		{"login mismatch", models.LoginPasswordDoesNotMatch, "password_does_not_match"},
		{"reset success", models.ResetPasswordSuccess, "success"},
		{"reset not found", models.ResetPasswordEmailNotFound, "email_not_found"},
		{"reset failed", models.ResetPasswordFailedToResetPassword, "failed_to_reset_password"},
		{"change success", models.ChangePasswordSuccess, "success"},
		{"change failed", models.ChangePasswordFailedToChangePassword, "failed_to_change_password"},
		{"change expired", models.ChangePasswordTokenExpired, "token_expired"},
		{"info success", models.AccountInfoSuccess, "success"},
		{"info unknown", models.AccountInfoAccountDoesNotExist, "account_does_not_exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
		})
	}
}
