package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/auth"
	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/models"
	"github.com/teambitewolf/news-hole/internal/repository"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// AccountService implements account creation, login and the password reset
// flow on top of the user and reset entry stores. It holds no state between
// calls; the stores are the only authority.
//
// Public operations never return Go errors. Every outcome is a result with a
// code, a message and, on failure, an error classified with the utils
// sentinels. Messages never contain passwords or hashes.
type AccountService struct {
	users    repository.UserRepository
	resets   repository.PasswordResetRepository
	hasher   auth.PasswordHasher
	rounds   int
	validity time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

// AccountOption configures an AccountService
type AccountOption func(*AccountService)

// WithClock replaces the clock used for entry timestamps and expiry checks
func WithClock(now func() time.Time) AccountOption {
	return func(s *AccountService) {
		s.now = now
	}
}

// WithTokenGenerator replaces the reset token generator
func WithTokenGenerator(gen func() (string, error)) AccountOption {
	return func(s *AccountService) {
		s.newToken = gen
	}
}

// WithRounds sets the bcrypt cost used for new password hashes
func WithRounds(rounds int) AccountOption {
	return func(s *AccountService) {
		s.rounds = rounds
	}
}

// NewAccountService creates a new AccountService
func NewAccountService(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	hasher auth.PasswordHasher,
	opts ...AccountOption,
) *AccountService {
	s := &AccountService{
		users:    users,
		resets:   resets,
		hasher:   hasher,
		rounds:   constants.DefaultPasswordHashRounds,
		validity: constants.ResetTokenValidity,
		now:      time.Now,
		newToken: auth.GenerateResetToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount registers a new user. An existing email yields
// UserAlreadyExists without touching the store; any other failure,
// including losing a concurrent registration race, yields FailedToCreate.
func (s *AccountService) CreateAccount(ctx context.Context, email, firstName, lastName, password string) models.CreateAccountResult {
	email = utils.NormalizeEmail(email)

	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		msg, classified := failure("check account", err, password)
		return models.CreateAccountResult{Code: models.CreateAccountFailedToCreate, Message: msg, Err: classified}
	}
	if exists {
		return models.CreateAccountResult{
			Code:    models.CreateAccountUserAlreadyExists,
			Message: constants.MsgUserExists,
			Err:     utils.NewDuplicateError("User", "email", utils.MaskEmail(email)),
		}
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		msg, classified := failure("hash password", err, password)
		return models.CreateAccountResult{Code: models.CreateAccountFailedToCreate, Message: msg, Err: classified}
	}

	user := models.NewUser(email, firstName, lastName, s.now())
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		msg, classified := failure("create account", err, password, hash)
		log.Warn().
			Str("email", utils.MaskEmail(email)).
			Bool("duplicate", utils.IsDuplicateError(err)).
			Msg("Failed to create account")
		return models.CreateAccountResult{Code: models.CreateAccountFailedToCreate, Message: msg, Err: classified}
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", utils.MaskEmail(email)).
		Msg("Account created")

	return models.CreateAccountResult{Code: models.CreateAccountSuccess, Message: constants.MsgSuccess}
}

// Login verifies a password against the stored hash
func (s *AccountService) Login(ctx context.Context, email, password string) models.LoginResult {
	email = utils.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !utils.IsNotFoundError(err) {
			log.Error().
				Str("email", utils.MaskEmail(email)).
				Str("error", utils.RedactSecrets(err.Error(), password)).
				Msg("Failed to load account for login")
		}
		return models.LoginResult{
			Code:    models.LoginAccountDoesNotExist,
			Message: constants.MsgAccountDoesNotExist,
			Err:     classify("load account", err, password),
		}
	}

	if !s.hasher.CheckPassword(password, user.PasswordHash) {
		return models.LoginResult{
			Code:    models.LoginPasswordDoesNotMatch,
			Message: constants.MsgPasswordDoesNotMatch,
			Err:     utils.NewUnauthorizedError(constants.MsgPasswordDoesNotMatch),
		}
	}

	return models.LoginResult{
		Code:    models.LoginSuccess,
		Message: constants.MsgSuccess,
		User:    user.LoginView(),
		UserID:  user.ID,
	}
}

// ResetPassword issues a reset token for a registered email. Unknown emails
// never produce a token.
func (s *AccountService) ResetPassword(ctx context.Context, email string) models.ResetPasswordResult {
	email = utils.NormalizeEmail(email)

	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		msg, classified := failure("check account", err)
		return models.ResetPasswordResult{Code: models.ResetPasswordFailedToResetPassword, Message: msg, Err: classified}
	}
	if !exists {
		return models.ResetPasswordResult{
			Code:    models.ResetPasswordEmailNotFound,
			Message: constants.MsgEmailNotFound,
			Err:     utils.NewNotFoundError("User", utils.MaskEmail(email)),
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		msg, classified := failure("load account", err)
		return models.ResetPasswordResult{Code: models.ResetPasswordFailedToResetPassword, Message: msg, Err: classified}
	}

	token, err := s.newToken()
	if err != nil {
		msg, classified := failure("generate token", err)
		return models.ResetPasswordResult{Code: models.ResetPasswordFailedToResetPassword, Message: msg, Err: classified}
	}

	entry := models.NewResetPasswordEntry(token, user, s.now())
	if err := s.resets.Create(ctx, entry); err != nil {
		msg, classified := failure("store reset entry", err, token)
		return models.ResetPasswordResult{Code: models.ResetPasswordFailedToResetPassword, Message: msg, Err: classified}
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", utils.MaskEmail(email)).
		Msg("Password reset requested")

	return models.ResetPasswordResult{
		Code:    models.ResetPasswordSuccess,
		Message: constants.MsgSuccess,
		Token:   token,
	}
}

// IsChangePasswordTokenValid reports whether token exists and is at most one
// hour old. Expired entries are left in place.
func (s *AccountService) IsChangePasswordTokenValid(ctx context.Context, token string) bool {
	entry, err := s.resets.Get(ctx, token)
	if err != nil {
		if !utils.IsNotFoundError(err) {
			log.Error().
				Str("error", utils.RedactSecrets(err.Error(), token)).
				Msg("Failed to load reset entry")
		}
		return false
	}

	return entry.IsValidAt(s.now(), s.validity)
}

// DeleteChangePasswordToken removes the entry for token. An unknown token
// is a no-op.
func (s *AccountService) DeleteChangePasswordToken(ctx context.Context, token string) error {
	entry, err := s.resets.Get(ctx, token)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return nil
		}
		_, classified := failure("load reset entry", err, token)
		return classified
	}

	if err := s.resets.Delete(ctx, entry); err != nil {
		_, classified := failure("delete reset entry", err, token)
		return classified
	}

	return nil
}

// ChangePassword consumes token and sets a new password for its owner.
// Expiry is not checked here; callers check IsChangePasswordTokenValid first.
//
// The user update and the entry delete are separate transactions. If the
// delete fails after the update, the stale entry remains until it expires.
func (s *AccountService) ChangePassword(ctx context.Context, token, newPassword string) models.ChangePasswordResult {
	fail := func(op string, err error, secrets ...string) models.ChangePasswordResult {
		msg, classified := failure(op, err, append(secrets, token, newPassword)...)
		return models.ChangePasswordResult{Code: models.ChangePasswordFailedToChangePassword, Message: msg, Err: classified}
	}

	entry, err := s.resets.Get(ctx, token)
	if err != nil {
		return fail("load reset entry", err)
	}

	user, err := s.users.GetByEmail(ctx, entry.Email)
	if err != nil {
		return fail("load account", err)
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return fail("hash password", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fail("update account", err, hash)
	}

	if err := s.resets.Delete(ctx, entry); err != nil {
		log.Error().
			Int64("user_id", user.ID).
			Str("error", utils.RedactSecrets(err.Error(), token, newPassword, hash)).
			Msg("Password updated but reset entry could not be deleted")
		return fail("delete reset entry", err, hash)
	}

	log.Info().
		Int64("user_id", user.ID).
		Msg("Password changed")

	return models.ChangePasswordResult{Code: models.ChangePasswordSuccess, Message: constants.MsgSuccess}
}

// GetAccountInfo returns the hash-free view of an account
func (s *AccountService) GetAccountInfo(ctx context.Context, email string) models.AccountInfoResult {
	email = utils.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.AccountInfoResult{
			Code:    models.AccountInfoAccountDoesNotExist,
			Message: constants.MsgAccountDoesNotExist,
			Err:     classify("load account", err),
		}
	}

	return models.AccountInfoResult{
		Code:    models.AccountInfoSuccess,
		Message: constants.MsgSuccess,
		User:    user.LoginView(),
	}
}

// hashPassword hashes password with a fresh salt at the configured cost
func (s *AccountService) hashPassword(password string) (string, error) {
	salt, err := s.hasher.GenerateSalt(s.rounds)
	if err != nil {
		return "", err
	}
	return s.hasher.HashPassword(password, salt)
}

// failure turns a store or hashing error into a redacted message and a
// classified error. Not found and duplicate errors keep their class; anything
// else becomes a persistence failure.
func failure(op string, err error, secrets ...string) (string, error) {
	classified := classify(op, err, secrets...)
	return utils.RedactSecrets(classified.Error(), secrets...), classified
}

// classify maps err into the error taxonomy without carrying secrets
func classify(op string, err error, secrets ...string) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) && (utils.IsNotFoundError(err) || utils.IsDuplicateError(err)) {
		return appErr
	}
	return utils.NewPersistenceError(op, errors.New(utils.RedactSecrets(err.Error(), secrets...)))
}
