package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite journal schema.
func InitSqliteSchema(db *sql.DB) error {
	createAttemptsQuery := `
	CREATE TABLE IF NOT EXISTS solve_attempts (
		attempt_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		city_count INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL,
		started_at_ms INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solve_attempts_started_at
    ON solve_attempts(started_at_ms);
	`

	return initSchema(db, createAttemptsQuery, createIndexQuery)
}

// Initialize the Postgres journal schema.
func InitPostgresSchema(db *sql.DB) error {
	createAttemptsQuery := `
	CREATE TABLE IF NOT EXISTS solve_attempts (
		attempt_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		city_count INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solve_attempts_started_at
    ON solve_attempts(started_at);
	`

	return initSchema(db, createAttemptsQuery, createIndexQuery)
}

func initSchema(db *sql.DB, statements ...string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
