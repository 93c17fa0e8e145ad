// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file names tables, columns, constraints and drivers so
// that repositories, migrations and tests share a single spelling.
package constants

// Table Names
const (
	TableUsers                = "users"
	TablePasswordResetEntries = "password_reset_entries"
	TableMigrations           = "migrations"
)

// Column Names
const (
	ColumnUserID       = "user_id"
	ColumnEmail        = "email"
	ColumnFirstName    = "first_name"
	ColumnLastName     = "last_name"
	ColumnPasswordHash = "password_hash"
	ColumnTokenHash    = "token_hash"
	ColumnCreatedAt    = "created_at"
	ColumnUpdatedAt    = "updated_at"
)

// Constraint and index names
const (
	ConstraintUniqueEmail = "idx_email"
	IndexResetUserID      = "idx_reset_user_id"
)

// Database drivers accepted in configuration.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Driver-specific unique violation codes.
const (
	PostgresUniqueViolation = "23505"
	MySQLDuplicateEntry     = 1062
)

// PostgreSQL connection options.
const (
	PostgresSSLDisable     = "disable"
	PostgresConnectTimeout = 15
)
