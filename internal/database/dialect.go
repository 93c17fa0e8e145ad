package database

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/teambitewolf/news-hole/internal/constants"
)

// Dialect identifies the SQL flavour spoken by a pool.
type Dialect int

const (
	// DialectPostgres uses $n placeholders and RETURNING.
	DialectPostgres Dialect = iota
	// DialectMySQL uses ? placeholders and LastInsertId.
	DialectMySQL
	// DialectSQLite uses ? placeholders and RETURNING.
	DialectSQLite
)

// DialectFor maps a driver name to its dialect.
func DialectFor(driver string) Dialect {
	switch driver {
	case constants.DriverMySQL:
		return DialectMySQL
	case constants.DriverSQLite:
		return DialectSQLite
	default:
		return DialectPostgres
	}
}

// Dialect returns the dialect of the pool's driver.
func (p *Pool) Dialect() Dialect {
	return DialectFor(p.Driver)
}

// Rebind rewrites ? placeholders into the pool's placeholder style.
func (p *Pool) Rebind(query string) string {
	return p.Dialect().Rebind(query)
}

// Rebind rewrites ? placeholders for the dialect. Placeholders inside
// single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SupportsReturning reports whether INSERT ... RETURNING can be used.
func (d Dialect) SupportsReturning() bool {
	return d != DialectMySQL
}

// IsUniqueViolation reports whether err was raised by a unique constraint
// on any of the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constants.PostgresUniqueViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == constants.PostgresUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == constants.MySQLDuplicateEntry
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
