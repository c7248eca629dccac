package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned on unique constraint violations.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConnectionFailed is returned when the store is unreachable.
	ErrConnectionFailed = errors.New("connection failed")
)

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool { return errors.Is(err, ErrDuplicateKey) }

// mysqlDuplicateEntry is the server error number for ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// mapError translates raw driver errors into the package sentinels while
// keeping the driver message available through the error chain. The
// message matters: write-path conflicts surface it to clients.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateKey) {
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == mysqlDuplicateEntry {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return err
	}

	// Some sqlite builds surface constraint failures as plain strings.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}

	return err
}
