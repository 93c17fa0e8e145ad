package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/auth"
	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/models"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// AccountHandler handles the account routes
type AccountHandler struct {
	accounts     AccountServiceInterface
	emails       EmailServiceInterface
	tokens       auth.TokenIssuer
	resetBaseURL string
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts AccountServiceInterface, emails EmailServiceInterface, tokens auth.TokenIssuer, resetBaseURL string) *AccountHandler {
	if accounts == nil {
		panic("accounts cannot be nil")
	}
	if emails == nil {
		panic("emails cannot be nil")
	}
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	return &AccountHandler{
		accounts:     accounts,
		emails:       emails,
		tokens:       tokens,
		resetBaseURL: resetBaseURL,
	}
}

// CreateAccount handles account registration
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	result := h.accounts.CreateAccount(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)

	switch result.Code {
	case models.CreateAccountSuccess:
		utils.JSON(w, http.StatusCreated, map[string]string{
			"message": constants.MsgAccountCreated,
			"email":   utils.NormalizeEmail(req.Email),
		})
	case models.CreateAccountUserAlreadyExists:
		utils.Error(w, http.StatusConflict, result.Code.String(), result.Message, nil)
	default:
		utils.Error(w, http.StatusInternalServerError, result.Code.String(), result.Message, nil)
	}
}

// Login checks credentials and issues an access token
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	result := h.accounts.Login(r.Context(), req.Email, req.Password)
	if storeUnavailable(w, result.Err) {
		return
	}

	switch result.Code {
	case models.LoginSuccess:
	case models.LoginAccountDoesNotExist:
		utils.Error(w, http.StatusNotFound, result.Code.String(), result.Message, nil)
		return
	default:
		utils.Error(w, http.StatusUnauthorized, result.Code.String(), result.Message, nil)
		return
	}

	accessToken, _, err := h.tokens.GenerateAccessToken(result.UserID, result.User.Email)
	if err != nil {
		utils.InternalServerError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.LoginResponse{
		User:        result.User,
		AccessToken: accessToken,
		TokenType:   constants.TokenTypeBearer,
		ExpiresIn:   int64(h.tokens.GetConfig().Expiry.Seconds()),
	})
}

// GetAccountInfo returns the authenticated user's account
func (h *AccountHandler) GetAccountInfo(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.GetEmail(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	result := h.accounts.GetAccountInfo(r.Context(), email)
	if storeUnavailable(w, result.Err) {
		return
	}
	if result.Code != models.AccountInfoSuccess {
		utils.Error(w, http.StatusNotFound, result.Code.String(), result.Message, nil)
		return
	}

	utils.JSON(w, http.StatusOK, result.User)
}

// RequestPasswordReset issues a reset token and emails the link. The token
// is never part of the response. When the email cannot be sent, the token is
// deleted again.
func (h *AccountHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	ctx := r.Context()
	result := h.accounts.ResetPassword(ctx, req.Email)

	switch result.Code {
	case models.ResetPasswordSuccess:
	case models.ResetPasswordEmailNotFound:
		utils.Error(w, http.StatusNotFound, result.Code.String(), result.Message, nil)
		return
	default:
		utils.Error(w, http.StatusInternalServerError, result.Code.String(), result.Message, nil)
		return
	}

	sent := h.emails.SendPasswordResetEmail(ctx, utils.NormalizeEmail(req.Email), h.resetBaseURL, result.Token)
	if !sent.Success {
		if err := h.accounts.DeleteChangePasswordToken(ctx, result.Token); err != nil {
			log.Error().
				Err(err).
				Str("email", utils.MaskEmail(req.Email)).
				Msg("Failed to delete reset token after email failure")
		}
		utils.Error(w, http.StatusBadGateway, constants.CodeEmailFailed, constants.MsgEmailSendFailed, nil)
		return
	}

	utils.JSON(w, http.StatusAccepted, map[string]string{
		"message": constants.MsgPasswordResetEmailSent,
	})
}

// CheckResetToken reports whether the token in the query string can still be used
func (h *AccountHandler) CheckResetToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(constants.QueryParamToken)
	if token == "" {
		utils.BadRequest(w, "token is required", map[string]string{constants.QueryParamToken: "This field is required"})
		return
	}

	if !h.accounts.IsChangePasswordTokenValid(r.Context(), token) {
		utils.Error(w, http.StatusGone, models.ChangePasswordTokenExpired.String(), constants.MsgTokenExpiredOrInvalid, nil)
		return
	}

	utils.JSON(w, http.StatusOK, models.TokenValidityResponse{Valid: true})
}

// ChangePassword sets a new password using a reset token. Token validity is
// checked before the token is consumed.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	ctx := r.Context()
	if !h.accounts.IsChangePasswordTokenValid(ctx, req.Token) {
		utils.Error(w, http.StatusGone, models.ChangePasswordTokenExpired.String(), constants.MsgTokenExpiredOrInvalid, nil)
		return
	}

	result := h.accounts.ChangePassword(ctx, req.Token, req.NewPassword)
	if result.Code != models.ChangePasswordSuccess {
		// The token can be consumed by a concurrent request after the check
		if utils.IsNotFoundError(result.Err) {
			utils.Error(w, http.StatusGone, models.ChangePasswordTokenExpired.String(), constants.MsgTokenExpiredOrInvalid, nil)
			return
		}
		utils.Error(w, http.StatusInternalServerError, result.Code.String(), result.Message, nil)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": constants.MsgPasswordChanged,
	})
}

// storeUnavailable answers 503 when err is a persistence failure, so an outage
// is never reported as a missing account. It returns true if it responded.
func storeUnavailable(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, utils.ErrPersistence) {
		return false
	}
	log.Error().Err(err).Msg("Account store unavailable")
	utils.Error(w, http.StatusServiceUnavailable, constants.CodePersistenceFailure, constants.MsgPersistenceFailure, nil)
	return true
}
