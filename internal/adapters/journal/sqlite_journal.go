package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"tsp-canvas-service/internal/ports"
)

// SQLite backed journal of finished solve attempts.
// Timestamps are stored as unix milliseconds.
type SqliteAttemptJournal struct {
	DB *sql.DB
}

func NewSqliteAttemptJournal(db *sql.DB) *SqliteAttemptJournal {
	return &SqliteAttemptJournal{DB: db}
}

// Store one attempt. Re-recording the same attempt id replaces the row.
func (s *SqliteAttemptJournal) Record(ctx context.Context, a ports.Attempt) error {
	if s.DB == nil {
		return errors.New("attempt journal: db is nil")
	}

	if strings.TrimSpace(a.AttemptID) == "" {
		return errors.New("insert attempt journal: attempt id must not be empty")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO solve_attempts (
        attempt_id,
        session_id,
        city_count,
        outcome,
        error_message,
        duration_ms,
        started_at_ms
    )
    VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
		a.AttemptID,
		a.SessionID,
		a.CityCount,
		a.Outcome,
		a.ErrorMessage,
		a.Duration.Milliseconds(),
		a.StartedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert attempt journal attempt=%q: %w", a.AttemptID, err)
	}

	return nil
}

// Fetch the latest attempts, newest first.
func (s *SqliteAttemptJournal) Recent(ctx context.Context, limit int) ([]ports.Attempt, error) {
	if s.DB == nil {
		return nil, errors.New("attempt journal: db is nil")
	}

	if limit <= 0 {
		return []ports.Attempt{}, nil
	}

	q := `
	SELECT
        attempt_id,
        session_id,
        city_count,
        outcome,
        error_message,
        duration_ms,
        started_at_ms
    FROM solve_attempts
    ORDER BY started_at_ms DESC, attempt_id
    LIMIT ?;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempt journal: query solve_attempts table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.Attempt, 0, limit)
	for rows.Next() {
		var a ports.Attempt
		var durMs, startedMs int64
		if err := rows.Scan(&a.AttemptID, &a.SessionID, &a.CityCount, &a.Outcome, &a.ErrorMessage, &durMs, &startedMs); err != nil {
			return nil, fmt.Errorf("list attempt journal: scan rows: %w", err)
		}
		a.Duration = time.Duration(durMs) * time.Millisecond
		a.StartedAt = time.UnixMilli(startedMs).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempt journal: row iteration: %w", err)
	}

	return out, nil
}
