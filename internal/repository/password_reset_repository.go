package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/auth"
	"github.com/teambitewolf/news-hole/internal/database"
	"github.com/teambitewolf/news-hole/internal/models"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// PasswordResetRepository is the reset token store. Entries are keyed by
// token; only the token's SHA-256 digest is persisted.
type PasswordResetRepository interface {
	Get(ctx context.Context, token string) (*models.ResetPasswordEntry, error)
	Create(ctx context.Context, entry *models.ResetPasswordEntry) error
	Delete(ctx context.Context, entry *models.ResetPasswordEntry) error
}

// SQLPasswordResetRepository is a database/sql implementation of PasswordResetRepository
type SQLPasswordResetRepository struct {
	db *database.Pool
}

// NewPasswordResetRepository creates a new PasswordResetRepository
func NewPasswordResetRepository(db *database.Pool) PasswordResetRepository {
	return &SQLPasswordResetRepository{db: db}
}

// Get returns the entry for token together with its owner's email.
// A missing entry yields an error classified as not found.
func (r *SQLPasswordResetRepository) Get(ctx context.Context, token string) (*models.ResetPasswordEntry, error) {
	startTime := time.Now()

	query := r.db.Rebind(`
        SELECT r.user_id, u.email, r.created_at
        FROM password_reset_entries r
        JOIN users u ON u.user_id = r.user_id
        WHERE r.token_hash = ?
    `)
	tokenHash := auth.HashToken(token)

	entry := &models.ResetPasswordEntry{Token: token}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&entry.UserID,
		&entry.Email,
		&entry.CreatedAt,
	)

	utils.LogDBQuery(query, []interface{}{tokenHash}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Reset entry", "token")
		}
		return nil, fmt.Errorf("failed to get reset entry: %w", err)
	}

	entry.CreatedAt = entry.CreatedAt.UTC()
	return entry, nil
}

// Create stores a new reset entry
func (r *SQLPasswordResetRepository) Create(ctx context.Context, entry *models.ResetPasswordEntry) error {
	startTime := time.Now()

	query := r.db.Rebind(`
        INSERT INTO password_reset_entries (token_hash, user_id, created_at)
        VALUES (?, ?, ?)
    `)
	args := []interface{}{auth.HashToken(entry.Token), entry.UserID, entry.CreatedAt.UTC()}

	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return utils.NewDuplicateError("Reset entry", "token", "")
		}
		return fmt.Errorf("failed to create reset entry: %w", err)
	}

	log.Info().
		Int64("user_id", entry.UserID).
		Msg("Password reset entry created")

	return nil
}

// Delete removes the entry. Deleting an entry that is already gone is not an error.
func (r *SQLPasswordResetRepository) Delete(ctx context.Context, entry *models.ResetPasswordEntry) error {
	startTime := time.Now()

	query := r.db.Rebind(`DELETE FROM password_reset_entries WHERE token_hash = ?`)
	tokenHash := auth.HashToken(entry.Token)

	var rowsAffected int64
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, tokenHash)
		if err != nil {
			return err
		}
		rowsAffected, err = result.RowsAffected()
		return err
	})

	utils.LogDBQuery(query, []interface{}{tokenHash}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete reset entry: %w", err)
	}

	log.Debug().
		Int64("user_id", entry.UserID).
		Int64("rows", rowsAffected).
		Msg("Password reset entry deleted")

	return nil
}
