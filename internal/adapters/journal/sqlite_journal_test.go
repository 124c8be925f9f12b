package journal

import (
	"context"
	"database/sql"
	"testing"
	"time"
	"tsp-canvas-service/internal/ports"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSqliteSchema(db))
	return db
}

func TestSqliteAttemptJournalRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	j := NewSqliteAttemptJournal(openMemoryDB(t))

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	attempts := []ports.Attempt{
		{AttemptID: "a1", SessionID: "s1", CityCount: 2, Outcome: ports.OutcomeSucceeded, Duration: 120 * time.Millisecond, StartedAt: base},
		{AttemptID: "a2", SessionID: "s1", CityCount: 3, Outcome: ports.OutcomeFailed, ErrorMessage: "Bad request", Duration: 40 * time.Millisecond, StartedAt: base.Add(time.Minute)},
		{AttemptID: "a3", SessionID: "s2", CityCount: 5, Outcome: ports.OutcomeStale, Duration: 900 * time.Millisecond, StartedAt: base.Add(2 * time.Minute)},
	}
	for _, a := range attempts {
		require.NoError(t, j.Record(ctx, a))
	}

	got, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, attempts[2], got[0])
	require.Equal(t, attempts[1], got[1])
}

func TestSqliteAttemptJournalReplacesSameAttempt(t *testing.T) {
	ctx := context.Background()
	j := NewSqliteAttemptJournal(openMemoryDB(t))

	started := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	a := ports.Attempt{AttemptID: "a1", SessionID: "s1", CityCount: 2, Outcome: ports.OutcomeFailed, StartedAt: started}
	require.NoError(t, j.Record(ctx, a))

	a.Outcome = ports.OutcomeSucceeded
	require.NoError(t, j.Record(ctx, a))

	got, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, ports.OutcomeSucceeded, got[0].Outcome)
}

func TestSqliteAttemptJournalValidation(t *testing.T) {
	ctx := context.Background()

	require.Error(t, NewSqliteAttemptJournal(nil).Record(ctx, ports.Attempt{AttemptID: "a"}))
	require.Error(t, NewSqliteAttemptJournal(openMemoryDB(t)).Record(ctx, ports.Attempt{AttemptID: " "}))

	got, err := NewSqliteAttemptJournal(openMemoryDB(t)).Recent(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, InitSqliteSchema(db))
	require.Error(t, InitSqliteSchema(nil))
}
