package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
	"tsp-canvas-service/internal/domain"
	"tsp-canvas-service/internal/platform/obs"
	"tsp-canvas-service/internal/ports"

	"github.com/google/uuid"
)

// FallbackErrorMessage is shown when a solve fails without a message from
// the solver (network failure, unreadable response, empty rejection body).
const FallbackErrorMessage = "Unknown error"

var errInvalidRoute = errors.New("solver route is not a permutation of the requested cities")

const journalWriteTimeout = 5 * time.Second

type SessionOptions struct {
	// Journal receives one record per finished attempt. Optional.
	Journal ports.AttemptJournal
	// SolveTimeout bounds a single solver call. Zero means no limit.
	SolveTimeout time.Duration
	// Context is the parent of every solve call. Defaults to Background.
	Context context.Context
}

// Session owns the state of one interactive canvas and coordinates it with
// the external solver.
//
// All transitions are applied under one mutex, so a session behaves like a
// single logical thread: clicks, resets and solver results are serialized.
// The solver call itself runs on its own goroutine without holding the lock,
// which keeps the session responsive to clicks while a solve is in flight.
type Session struct {
	id      string
	solver  ports.RouteSolver
	journal ports.AttemptJournal
	timeout time.Duration
	base    context.Context

	mu     sync.Mutex
	state  domain.State
	cancel context.CancelFunc
	subs   map[chan domain.State]struct{}
	closed bool
}

func NewSession(id string, solver ports.RouteSolver, opts SessionOptions) *Session {
	base := opts.Context
	if base == nil {
		base = context.Background()
	}

	return &Session{
		id:      id,
		solver:  solver,
		journal: opts.Journal,
		timeout: opts.SolveTimeout,
		base:    base,
		state:   domain.State{Cities: []domain.City{}},
		subs:    make(map[chan domain.State]struct{}),
	}
}

func (s *Session) ID() string { return s.id }

// Snapshot returns the current state. The returned value must be treated as
// read-only.
func (s *Session) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Click maps a screen-space click onto the surface and adds a city there.
// A zero-sized surface or a click that maps to no finite position leaves the
// state untouched and returns the domain error.
func (s *Session) Click(click domain.Point, surface domain.Rect) (domain.State, error) {
	p, err := domain.Normalize(click, surface)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.AddCity(p), nil
}

// AddCity appends a city at a percent position and invalidates any route or
// error. An in-flight solve keeps running; its result will be discarded.
// A closed session is left as it was.
func (s *Session) AddCity(p domain.Point) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state
	}
	s.commit(s.state.AddCity(p))
	return s.state
}

// Reset clears all state and abandons any in-flight solve.
func (s *Session) Reset() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.commit(s.state.Reset())
	return s.state
}

// Solve starts a solve attempt for the current cities.
//
// It is a no-op, reported by ok=false, when fewer than two cities exist or an
// attempt is already in flight. Otherwise exactly one solver call is made in
// the background; done is closed once its result has been applied or
// discarded.
func (s *Session) Solve() (done <-chan struct{}, ok bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, false
	}

	next, ticket, ok := s.state.BeginSolve()
	if !ok {
		s.mu.Unlock()
		return nil, false
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(s.base, s.timeout)
	} else {
		ctx, cancel = context.WithCancel(s.base)
	}
	ctx = obs.WithSession(ctx, s.id)

	s.cancel = cancel
	s.commit(next)
	s.mu.Unlock()

	ch := make(chan struct{})
	go s.run(ctx, cancel, ticket, ch)
	return ch, true
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, ticket domain.SolveTicket, done chan struct{}) {
	defer close(done)
	defer cancel()

	started := time.Now()
	route, err := s.solver.Optimize(ctx, ticket.Cities)
	if err == nil && !route.IsPermutationOf(ticket.Cities) {
		err = errInvalidRoute
	}
	dur := time.Since(started)

	var (
		msg string
		out domain.Outcome
	)

	s.mu.Lock()
	current := s.state.InFlight(ticket)
	next := s.state
	if err != nil {
		msg = failureMessage(err)
		next, out = s.state.Fail(ticket, msg)
	} else {
		next, out = s.state.Succeed(ticket, route)
	}
	if current {
		s.cancel = nil
		s.commit(next)
	}
	s.mu.Unlock()

	outcome := ports.OutcomeSucceeded
	switch {
	case out == domain.Stale:
		outcome = ports.OutcomeStale
	case err != nil:
		outcome = ports.OutcomeFailed
	}

	if err != nil {
		log.Printf("session=%s op=solve cities=%d outcome=%s dur=%dms err=%v", s.id, len(ticket.Cities), outcome, dur.Milliseconds(), err)
	} else {
		log.Printf("session=%s op=solve cities=%d outcome=%s dur=%dms", s.id, len(ticket.Cities), outcome, dur.Milliseconds())
	}

	s.record(ports.Attempt{
		AttemptID:    uuid.NewString(),
		SessionID:    s.id,
		CityCount:    len(ticket.Cities),
		Outcome:      outcome,
		ErrorMessage: msg,
		Duration:     dur,
		StartedAt:    started.UTC(),
	})
}

func (s *Session) record(a ports.Attempt) {
	if s.journal == nil {
		return
	}

	ctx, cancel := context.WithTimeout(obs.WithSession(context.Background(), s.id), journalWriteTimeout)
	defer cancel()

	if err := s.journal.Record(ctx, a); err != nil {
		log.Printf("attempt journal write failed: session=%s attempt=%s err=%v", s.id, a.AttemptID, err)
	}
}

// failureMessage picks the text shown for a failed solve: the solver's own
// message when it sent one, the fallback otherwise.
func failureMessage(err error) string {
	var rej *ports.RejectionError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return FallbackErrorMessage
}

// Subscribe returns a channel that yields the session state after every
// transition, starting with the current one. Slow readers only see the latest
// state. The returned func unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan domain.State, func()) {
	ch := make(chan domain.State, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(ch)
		return ch, func() {}
	}

	ch <- s.state
	s.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
}

// Close abandons any in-flight solve and ends all subscriptions.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

// busy reports whether the session is still in use beyond plain requests.
func (s *Session) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Loading || len(s.subs) > 0
}

// commit installs next and publishes it. Caller holds s.mu.
func (s *Session) commit(next domain.State) {
	s.state = next
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
