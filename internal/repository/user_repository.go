package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/database"
	"github.com/teambitewolf/news-hole/internal/models"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// UserRepository is the credential store. Emails are matched exactly; callers
// normalize them first.
type UserRepository interface {
	Exists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// SQLUserRepository is a database/sql implementation of UserRepository
type SQLUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &SQLUserRepository{
		db: db,
	}
}

// Exists reports whether a user with the given email is registered
func (r *SQLUserRepository) Exists(ctx context.Context, email string) (bool, error) {
	startTime := time.Now()

	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`)

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// GetByEmail retrieves a user by email
func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	startTime := time.Now()

	query := r.db.Rebind(`
        SELECT user_id, email, first_name, last_name, password_hash, created_at, updated_at
        FROM users
        WHERE email = ?
    `)

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", utils.MaskEmail(email))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Create inserts a new user and sets its ID. The UNIQUE constraint on email
// is the authoritative guard against concurrent registrations.
func (r *SQLUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	query := `
        INSERT INTO users (email, first_name, last_name, password_hash, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)`
	if r.db.Dialect().SupportsReturning() {
		query += `
        RETURNING user_id`
	}
	query = r.db.Rebind(query)

	args := []interface{}{
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	}

	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if r.db.Dialect().SupportsReturning() {
			return tx.QueryRowContext(ctx, query, args...).Scan(&user.ID)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		user.ID, err = result.LastInsertId()
		return err
	})

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return utils.NewDuplicateError("User", "email", utils.MaskEmail(user.Email))
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", utils.MaskEmail(user.Email)).
		Msg("User created")

	return nil
}

// Update writes the user's names and password hash
func (r *SQLUserRepository) Update(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
        UPDATE users
        SET first_name = ?, last_name = ?, password_hash = ?, updated_at = ?
        WHERE user_id = ?
    `)
	args := []interface{}{
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	}

	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return utils.NewNotFoundError("User", user.ID)
		}
		return nil
	})

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		if utils.IsNotFoundError(err) {
			return err
		}
		if database.IsUniqueViolation(err) {
			return utils.NewDuplicateError("User", "email", utils.MaskEmail(user.Email))
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Msg("User updated")

	return nil
}
