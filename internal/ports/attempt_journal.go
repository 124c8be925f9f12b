package ports

import (
	"context"
	"time"
)

// Attempt outcomes as written to the journal.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeStale     = "stale"
)

// A finished solve attempt, as recorded for operators.
type Attempt struct {
	AttemptID    string
	SessionID    string
	CityCount    int
	Outcome      string
	ErrorMessage string
	Duration     time.Duration
	StartedAt    time.Time
}

// Port: an append-only log of solve attempts. It is never read back into a
// session.
type AttemptJournal interface {
	Record(ctx context.Context, a Attempt) error
	Recent(ctx context.Context, limit int) ([]Attempt, error)
}
