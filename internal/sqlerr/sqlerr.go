// Package sqlerr classifies database driver errors into a small set of kinds
// so callers can tell a missing row from a constraint violation or a lost
// connection, whatever backend produced the error.
package sqlerr

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Kind is the category of a database error.
type Kind int

// Error kinds.
const (
	Other Kind = iota
	NotFound
	ForeignKeyViolation
	UniqueViolation
	NotNullViolation
	CheckViolation
	Connection
)

var kindNames = map[Kind]string{
	Other:               "other",
	NotFound:            "not found",
	ForeignKeyViolation: "foreign key violation",
	UniqueViolation:     "unique violation",
	NotNullViolation:    "not null violation",
	CheckViolation:      "check violation",
	Connection:          "connection",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrNotFound is returned (wrapped) when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

// Error is a classified database error.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the driver error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap classifies err and annotates it with the operation that failed.
// A nil err yields nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: KindOf(err), Err: err}
}

// KindOf classifies err.
func KindOf(err error) Kind {
	if err == nil {
		return Other
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return NotFound
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return Connection
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgKind(pgErr.Code)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return sqliteKind(liteErr)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlKind(myErr.Number)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Connection
	}

	return Other
}

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}

// IsConstraint reports whether err is any constraint violation.
func IsConstraint(err error) bool {
	switch KindOf(err) {
	case ForeignKeyViolation, UniqueViolation, NotNullViolation, CheckViolation:
		return true
	}
	return false
}

// pgKind maps a Postgres SQLSTATE.
func pgKind(code string) Kind {
	switch code {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	}
	if strings.HasPrefix(code, "08") {
		return Connection
	}
	return Other
}

func sqliteKind(err sqlite3.Error) Kind {
	switch err.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKeyViolation
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation
	case sqlite3.ErrConstraintNotNull:
		return NotNullViolation
	case sqlite3.ErrConstraintCheck:
		return CheckViolation
	}
	if err.Code == sqlite3.ErrCantOpen {
		return Connection
	}
	return Other
}

func mysqlKind(number uint16) Kind {
	switch number {
	case 1451, 1452:
		return ForeignKeyViolation
	case 1062:
		return UniqueViolation
	case 1048:
		return NotNullViolation
	case 3819:
		return CheckViolation
	case 1040, 1045, 2002, 2003, 2006, 2013:
		return Connection
	}
	return Other
}
