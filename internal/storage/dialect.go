package storage

import (
	"fmt"
	"strings"
	"time"
)

// Dialect selects between the two supported stores: a networked MySQL
// server and an embedded SQLite file. It drives DDL generation, driver
// selection and timestamp formatting.
type Dialect int

const (
	// DialectSQLite is the embedded single-file store, the default.
	DialectSQLite Dialect = iota
	// DialectMySQL is the networked multi-user server.
	DialectMySQL
)

// defaultSQLitePath is used when no connection string is configured.
const defaultSQLitePath = "app.sqlite3"

func (d Dialect) String() string {
	if d == DialectMySQL {
		return "mysql"
	}
	return "sqlite"
}

// DetectDialect inspects a configured connection string and returns the
// dialect together with the database/sql driver name and DSN to open.
// A string starting with "mysql://" (or already in the native
// user:pass@tcp(host)/db form) targets MySQL; anything else is treated
// as a SQLite file path. An empty string falls back to the default
// embedded store.
func DetectDialect(connString string) (Dialect, string, string) {
	connString = strings.TrimSpace(connString)
	switch {
	case connString == "":
		return DialectSQLite, "sqlite3", defaultSQLitePath
	case strings.HasPrefix(connString, "mysql://"), strings.Contains(connString, "@tcp("):
		return DialectMySQL, "mysql", mysqlDSN(connString)
	default:
		return DialectSQLite, "sqlite3", connString
	}
}

// mysqlDSN converts an URL-style connection string into the DSN format
// the mysql driver expects. Strings already in native form pass through.
func mysqlDSN(connString string) string {
	raw := strings.TrimPrefix(connString, "mysql://")
	if strings.Contains(raw, "@tcp(") {
		return raw
	}
	at := strings.LastIndex(raw, "@")
	if at < 0 {
		return raw
	}
	cred, rest := raw[:at], raw[at+1:]
	host, path := rest, ""
	if slash := strings.Index(rest, "/"); slash >= 0 {
		host, path = rest[:slash], rest[slash:]
	}
	return fmt.Sprintf("%s@tcp(%s)%s", cred, host, path)
}

// FormatTime renders an instant in the textual form stored for the
// dialect. MySQL DATETIME(6) takes a space-separated form with
// microsecond precision; SQLite stores ISO-8601 text with a literal "Z"
// appended. The suffix is kept for compatibility with existing rows
// even though it is purely cosmetic.
func (d Dialect) FormatTime(t time.Time) string {
	if d == DialectMySQL {
		return t.Format("2006-01-02 15:04:05.000000")
	}
	return t.Format("2006-01-02T15:04:05.000000") + "Z"
}

// Now returns the current UTC instant formatted for the dialect.
func (d Dialect) Now() string {
	return d.FormatTime(time.Now().UTC())
}

// CreateUsersTable returns the idempotent DDL for the users table.
// Both variants declare the same logical schema; MySQL adds its native
// auto-increment plus engine and charset clauses.
func (d Dialect) CreateUsersTable() string {
	if d == DialectMySQL {
		return `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			username VARCHAR(255) NOT NULL UNIQUE,
			email    VARCHAR(255) NOT NULL UNIQUE,
			feature  TEXT NULL,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	}
	return `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email    TEXT NOT NULL UNIQUE,
		feature  TEXT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
}
