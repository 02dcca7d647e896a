package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a row does not exist or is not
	// visible to the caller (ownership filters included).
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert hits a uniqueness
	// constraint (email, external id, class code, enrollment pair).
	ErrDuplicate = errors.New("duplicate")
)

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS students (
	id SERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	student_id TEXT NOT NULL UNIQUE,
	course TEXT NOT NULL,
	year_level TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS professors (
	id SERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	professor_id TEXT NOT NULL UNIQUE,
	department TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS classes (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	code TEXT NOT NULL UNIQUE,
	created_at BIGINT NOT NULL,
	professor_id INTEGER NOT NULL REFERENCES professors(id)
);
CREATE TABLE IF NOT EXISTS enrollments (
	student_id INTEGER NOT NULL REFERENCES students(id),
	class_id INTEGER NOT NULL REFERENCES classes(id),
	PRIMARY KEY (student_id, class_id)
);
CREATE TABLE IF NOT EXISTS password_reset_tokens (
	id SERIAL PRIMARY KEY,
	email TEXT NOT NULL,
	token TEXT NOT NULL UNIQUE,
	user_type TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	expires_at BIGINT NOT NULL,
	used BOOLEAN NOT NULL DEFAULT FALSE
);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS students (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	student_id TEXT NOT NULL UNIQUE,
	course TEXT NOT NULL,
	year_level TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS professors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	professor_id TEXT NOT NULL UNIQUE,
	department TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS classes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	code TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL,
	professor_id INTEGER NOT NULL REFERENCES professors(id)
);
CREATE TABLE IF NOT EXISTS enrollments (
	student_id INTEGER NOT NULL REFERENCES students(id),
	class_id INTEGER NOT NULL REFERENCES classes(id),
	PRIMARY KEY (student_id, class_id)
);
CREATE TABLE IF NOT EXISTS password_reset_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL,
	token TEXT NOT NULL UNIQUE,
	user_type TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL,
	used BOOLEAN NOT NULL DEFAULT FALSE
);
`

// Schema returns the bootstrap DDL for the given driver.
func Schema(driver string) (string, error) {
	switch driver {
	case "postgres":
		return schemaPostgres, nil
	case "sqlite":
		return schemaSQLite, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// CreateTables applies the bootstrap schema. The DDL is idempotent so it
// runs on every startup.
func CreateTables(db *sql.DB, driver string) error {
	ddl, err := Schema(driver)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Timestamps are stored as Unix milliseconds so the same SQL works on
// both postgres and sqlite.
func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// isUniqueViolation normalizes driver-specific uniqueness errors.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
