package domain

import "slices"

// Phase is the solve state of a session, derived from State.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInFlight:
		return "in_flight"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Outcome tells the caller whether a solve result was applied to the state.
type Outcome int

const (
	Applied Outcome = iota
	// Stale results belong to an attempt whose cities were mutated or reset
	// before the result arrived. They are dropped.
	Stale
)

func (o Outcome) String() string {
	if o == Stale {
		return "stale"
	}
	return "applied"
}

// MinCitiesToSolve is the smallest city count for which a solve may start.
const MinCitiesToSolve = 2

// State is the complete state of one interactive session: the placed cities,
// the current route (nil when none), the last solve error ("" when none) and
// whether a solve is in flight.
//
// State is a value. Every transition returns a new State and never mutates
// slices shared with earlier values, so snapshots can be handed out freely.
type State struct {
	Cities  []City
	Route   Route
	Err     string
	Loading bool

	// Revision is bumped by every mutation of the city collection.
	Revision uint64

	attempt     uint64
	lastAttempt uint64
}

// SolveTicket captures what a solve attempt was issued against.
type SolveTicket struct {
	Attempt  uint64
	Revision uint64
	Cities   []City
}

func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseInFlight
	case s.Route != nil:
		return PhaseSucceeded
	case s.Err != "":
		return PhaseFailed
	default:
		return PhaseIdle
	}
}

// CanSolve reports whether the solve trigger is enabled.
func (s State) CanSolve() bool {
	return len(s.Cities) >= MinCitiesToSolve && !s.Loading
}

// AddCity appends a city at the given percent position, named after its
// 1-based position in the collection. Any route and error are cleared.
func (s State) AddCity(p Point) State {
	c := City{Name: CityName(len(s.Cities) + 1), X: p.X, Y: p.Y}

	next := s
	next.Cities = append(slices.Clip(s.Cities), c)
	next.Route = nil
	next.Err = ""
	next.Revision++
	return next
}

// Reset clears cities, route, error and loading. An in-flight attempt is
// forgotten; its result will be reported as Stale.
func (s State) Reset() State {
	return State{
		Cities:      []City{},
		Revision:    s.Revision + 1,
		lastAttempt: s.lastAttempt,
	}
}

// SetRoute replaces the route wholesale. The caller guarantees that r is a
// permutation of the current cities.
func (s State) SetRoute(r Route) State {
	next := s
	next.Route = r
	return next
}

// ClearRoute drops the route and leaves the cities untouched.
func (s State) ClearRoute() State {
	next := s
	next.Route = nil
	return next
}

// BeginSolve starts a solve attempt. It is a no-op, reported by ok=false, when
// fewer than two cities exist or an attempt is already in flight.
func (s State) BeginSolve() (next State, ticket SolveTicket, ok bool) {
	if !s.CanSolve() {
		return s, SolveTicket{}, false
	}

	next = s
	next.lastAttempt++
	next.attempt = next.lastAttempt
	next.Loading = true
	next.Route = nil
	next.Err = ""

	ticket = SolveTicket{
		Attempt:  next.attempt,
		Revision: s.Revision,
		Cities:   slices.Clone(s.Cities),
	}
	return next, ticket, true
}

// Succeed applies a solver route for the attempt described by t.
func (s State) Succeed(t SolveTicket, r Route) (State, Outcome) {
	next, current := s.finish(t)
	if !current {
		return next, Stale
	}
	return next.SetRoute(r), Applied
}

// Fail records msg as the error of the attempt described by t.
func (s State) Fail(t SolveTicket, msg string) (State, Outcome) {
	next, current := s.finish(t)
	if !current {
		return next, Stale
	}
	next.Route = nil
	next.Err = msg
	return next, Applied
}

// InFlight reports whether t is the attempt currently in flight.
func (s State) InFlight(t SolveTicket) bool {
	return s.Loading && s.attempt == t.Attempt
}

// finish ends attempt t. It clears the loading flag only if t is still the
// in-flight attempt, and reports whether the result may be applied, i.e. the
// cities have not changed since t was issued.
func (s State) finish(t SolveTicket) (State, bool) {
	if !s.InFlight(t) {
		return s, false
	}

	next := s
	next.Loading = false
	next.attempt = 0
	return next, s.Revision == t.Revision
}
