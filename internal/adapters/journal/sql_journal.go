package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"tsp-canvas-service/internal/platform/obs"
	"tsp-canvas-service/internal/ports"
)

// SQLAttemptJournal is a Postgres-backed journal of finished solve attempts.
type SQLAttemptJournal struct {
	DB *sql.DB
}

func NewSQLAttemptJournal(db *sql.DB) *SQLAttemptJournal {
	return &SQLAttemptJournal{DB: db}
}

// Store one attempt. Re-recording the same attempt id updates the row.
func (s *SQLAttemptJournal) Record(ctx context.Context, a ports.Attempt) (err error) {
	defer obs.Time(ctx, "journal.Record")(&err)

	if s.DB == nil {
		return errors.New("attempt journal: db is nil")
	}

	if strings.TrimSpace(a.AttemptID) == "" {
		return errors.New("insert attempt journal: attempt id must not be empty")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO solve_attempts (attempt_id, session_id, city_count, outcome, error_message, duration_ms, started_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (attempt_id) DO UPDATE
	SET outcome = EXCLUDED.outcome,
		error_message = EXCLUDED.error_message,
		duration_ms = EXCLUDED.duration_ms;
	`,
		a.AttemptID,
		a.SessionID,
		a.CityCount,
		a.Outcome,
		a.ErrorMessage,
		a.Duration.Milliseconds(),
		a.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt journal attempt=%q: %w", a.AttemptID, err)
	}

	return nil
}

// Fetch the latest attempts, newest first.
func (s *SQLAttemptJournal) Recent(ctx context.Context, limit int) (_ []ports.Attempt, err error) {
	defer obs.Time(ctx, "journal.Recent")(&err)

	if s.DB == nil {
		return nil, errors.New("attempt journal: db is nil")
	}

	if limit <= 0 {
		return []ports.Attempt{}, nil
	}

	q := `
	SELECT attempt_id, session_id, city_count, outcome, error_message, duration_ms, started_at
    FROM solve_attempts
    ORDER BY started_at DESC, attempt_id
    LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempt journal: query solve_attempts table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.Attempt, 0, limit)
	for rows.Next() {
		var a ports.Attempt
		var durMs int64
		if err := rows.Scan(&a.AttemptID, &a.SessionID, &a.CityCount, &a.Outcome, &a.ErrorMessage, &durMs, &a.StartedAt); err != nil {
			return nil, fmt.Errorf("list attempt journal: scan rows: %w", err)
		}
		a.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempt journal: row iteration: %w", err)
	}

	return out, nil
}
