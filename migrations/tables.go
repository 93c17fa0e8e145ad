package migrations

import (
	"context"
	"database/sql"

	"github.com/teambitewolf/news-hole/internal/database"
)

// execAll runs each statement in order inside tx
func execAll(ctx context.Context, tx *sql.Tx, statements []string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// UsersTableDDL returns the statements that create the users table.
// The unique constraint on email is what serializes concurrent registrations.
func UsersTableDDL(dialect database.Dialect) []string {
	switch dialect {
	case database.DialectMySQL:
		return []string{`
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGINT AUTO_INCREMENT PRIMARY KEY,
					email VARCHAR(255) NOT NULL,
					first_name VARCHAR(100) NOT NULL DEFAULT '',
					last_name VARCHAR(100) NOT NULL DEFAULT '',
					password_hash VARCHAR(255) NOT NULL,
					created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
					updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
					CONSTRAINT idx_email UNIQUE (email)
				) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
			`}
	case database.DialectSQLite:
		return []string{`
				CREATE TABLE IF NOT EXISTS users (
					user_id INTEGER PRIMARY KEY AUTOINCREMENT,
					email TEXT NOT NULL,
					first_name TEXT NOT NULL DEFAULT '',
					last_name TEXT NOT NULL DEFAULT '',
					password_hash TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT idx_email UNIQUE (email)
				)
			`}
	default:
		return []string{`
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
					email VARCHAR(255) NOT NULL,
					first_name VARCHAR(100) NOT NULL DEFAULT '',
					last_name VARCHAR(100) NOT NULL DEFAULT '',
					password_hash VARCHAR(255) NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT idx_email UNIQUE (email)
				)
			`}
	}
}

// PasswordResetEntriesTableDDL returns the statements that create the
// password_reset_entries table. Only the token digest is stored.
func PasswordResetEntriesTableDDL(dialect database.Dialect) []string {
	switch dialect {
	case database.DialectMySQL:
		return []string{`
				CREATE TABLE IF NOT EXISTS password_reset_entries (
					token_hash CHAR(64) PRIMARY KEY,
					user_id BIGINT NOT NULL,
					created_at DATETIME(6) NOT NULL,
					INDEX idx_reset_user_id (user_id),
					CONSTRAINT fk_reset_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
				) ENGINE=InnoDB
			`}
	case database.DialectSQLite:
		return []string{`
				CREATE TABLE IF NOT EXISTS password_reset_entries (
					token_hash TEXT PRIMARY KEY,
					user_id INTEGER NOT NULL,
					created_at TIMESTAMP NOT NULL,
					CONSTRAINT fk_reset_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
				)
			`,
			`CREATE INDEX IF NOT EXISTS idx_reset_user_id ON password_reset_entries(user_id)`,
		}
	default:
		return []string{`
				CREATE TABLE IF NOT EXISTS password_reset_entries (
					token_hash CHAR(64) PRIMARY KEY,
					user_id BIGINT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL,
					CONSTRAINT fk_reset_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
				)
			`,
			`CREATE INDEX IF NOT EXISTS idx_reset_user_id ON password_reset_entries(user_id)`,
		}
	}
}

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx, dialect database.Dialect) error {
			return execAll(ctx, tx, UsersTableDDL(dialect))
		},
	}
}

// createPasswordResetEntriesTable creates the password_reset_entries table
func createPasswordResetEntriesTable() Migration {
	return Migration{
		Name:        "create_password_reset_entries_table",
		Description: "Creates the password_reset_entries table",
		TableName:   "password_reset_entries",
		RunSQL: func(ctx context.Context, tx *sql.Tx, dialect database.Dialect) error {
			return execAll(ctx, tx, PasswordResetEntriesTableDDL(dialect))
		},
	}
}
