// Package handlers provides HTTP request handlers for the account API.
package handlers

import (
	"context"

	"github.com/teambitewolf/news-hole/internal/models"
	"github.com/teambitewolf/news-hole/internal/service"
)

// AccountServiceInterface defines the account operations used by the handlers.
// Every operation reports its outcome as a result code; none of them fail
// with a Go error except DeleteChangePasswordToken.
type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, email, firstName, lastName, password string) models.CreateAccountResult
	Login(ctx context.Context, email, password string) models.LoginResult
	ResetPassword(ctx context.Context, email string) models.ResetPasswordResult
	IsChangePasswordTokenValid(ctx context.Context, token string) bool
	DeleteChangePasswordToken(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, token, newPassword string) models.ChangePasswordResult
	GetAccountInfo(ctx context.Context, email string) models.AccountInfoResult
}

// EmailServiceInterface sends the password reset link.
type EmailServiceInterface interface {
	SendPasswordResetEmail(ctx context.Context, toAddress, baseURL, token string) service.SendEmailResponse
}
