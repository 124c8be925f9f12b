package domain

import (
	"testing"
)

func addCities(s State, pts ...Point) State {
	for _, p := range pts {
		s = s.AddCity(p)
	}
	return s
}

func TestStateAddCityNamesSequentially(t *testing.T) {
	s := addCities(State{}, Point{10, 20}, Point{30, 40}, Point{50, 60})

	if len(s.Cities) != 3 {
		t.Fatalf("expected 3 cities, got %d", len(s.Cities))
	}
	for i, c := range s.Cities {
		want := CityName(i + 1)
		if c.Name != want {
			t.Errorf("city %d name = %q, want %q", i, c.Name, want)
		}
		if c.X < 0 || c.X > 100 || c.Y < 0 || c.Y > 100 {
			t.Errorf("city %d out of range: (%v, %v)", i, c.X, c.Y)
		}
	}
	if s.Cities[1] != (City{Name: "City 2", X: 30, Y: 40}) {
		t.Fatalf("unexpected second city: %+v", s.Cities[1])
	}
}

func TestStateAddCityClearsRouteAndError(t *testing.T) {
	s := addCities(State{}, Point{1, 1}, Point{2, 2})
	s = s.SetRoute(Route{s.Cities[1], s.Cities[0]})
	s.Err = "boom"

	s = s.AddCity(Point{3, 3})

	if s.Route != nil {
		t.Fatalf("route should be cleared, got %v", s.Route)
	}
	if s.Err != "" {
		t.Fatalf("error should be cleared, got %q", s.Err)
	}
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", s.Phase())
	}
}

func TestStateAddCityDoesNotAliasSnapshots(t *testing.T) {
	base := addCities(State{}, Point{1, 1})
	a := base.AddCity(Point{2, 2})
	b := base.AddCity(Point{3, 3})

	if a.Cities[1].X != 2 || b.Cities[1].X != 3 {
		t.Fatalf("snapshots share backing storage: a=%v b=%v", a.Cities, b.Cities)
	}
	if len(base.Cities) != 1 {
		t.Fatalf("base mutated: %v", base.Cities)
	}
}

func TestStateResetFromAnyState(t *testing.T) {
	states := map[string]State{
		"empty": {},
		"with route": func() State {
			s := addCities(State{}, Point{1, 1}, Point{2, 2})
			return s.SetRoute(Route{s.Cities[0], s.Cities[1]})
		}(),
		"failed": func() State {
			s := addCities(State{}, Point{1, 1}, Point{2, 2})
			s, tk, _ := s.BeginSolve()
			s, _ = s.Fail(tk, "nope")
			return s
		}(),
		"in flight": func() State {
			s := addCities(State{}, Point{1, 1}, Point{2, 2})
			s, _, _ = s.BeginSolve()
			return s
		}(),
	}

	for name, s := range states {
		r := s.Reset()
		if len(r.Cities) != 0 || r.Route != nil || r.Err != "" || r.Loading {
			t.Errorf("%s: reset left state %+v", name, r)
		}
		if r.Revision <= s.Revision {
			t.Errorf("%s: reset did not bump revision", name)
		}
	}
}

func TestStateBeginSolveGuards(t *testing.T) {
	one := addCities(State{}, Point{5, 5})
	if _, _, ok := one.BeginSolve(); ok {
		t.Fatal("solve must not start with one city")
	}

	two := addCities(one, Point{6, 6})
	inFlight, tk, ok := two.BeginSolve()
	if !ok {
		t.Fatal("solve should start with two cities")
	}
	if !inFlight.Loading || inFlight.Phase() != PhaseInFlight {
		t.Fatalf("expected in-flight state, got %+v", inFlight)
	}
	if len(tk.Cities) != 2 || tk.Revision != two.Revision {
		t.Fatalf("unexpected ticket %+v", tk)
	}

	again, _, ok := inFlight.BeginSolve()
	if ok {
		t.Fatal("second solve while in flight must be a no-op")
	}
	if again.attempt != inFlight.attempt {
		t.Fatal("no-op solve changed the in-flight attempt")
	}
}

func TestStateBeginSolveClearsPriorResult(t *testing.T) {
	s := addCities(State{}, Point{1, 1}, Point{2, 2})
	s = s.SetRoute(Route{s.Cities[0], s.Cities[1]})
	s.Err = "old"

	s, _, _ = s.BeginSolve()
	if s.Route != nil || s.Err != "" {
		t.Fatalf("begin solve should clear route and error, got %+v", s)
	}
}

func TestStateSucceedKeepsSolverOrder(t *testing.T) {
	s := addCities(State{}, Point{10, 10}, Point{20, 20}, Point{30, 30})
	s, tk, _ := s.BeginSolve()

	route := Route{s.Cities[2], s.Cities[0], s.Cities[1]}
	s, out := s.Succeed(tk, route)
	if out != Applied {
		t.Fatalf("outcome = %v, want applied", out)
	}
	if s.Loading {
		t.Fatal("loading should be cleared")
	}
	for i := range route {
		if s.Route[i] != route[i] {
			t.Fatalf("route[%d] = %v, want %v", i, s.Route[i], route[i])
		}
	}
	if s.Phase() != PhaseSucceeded {
		t.Fatalf("phase = %v, want succeeded", s.Phase())
	}
}

func TestStateFailRecordsMessage(t *testing.T) {
	s := addCities(State{}, Point{10, 10}, Point{20, 20})
	s, tk, _ := s.BeginSolve()

	s, out := s.Fail(tk, "Bad request")
	if out != Applied {
		t.Fatalf("outcome = %v, want applied", out)
	}
	if s.Err != "Bad request" || s.Route != nil || s.Loading {
		t.Fatalf("unexpected state %+v", s)
	}
	if s.Phase() != PhaseFailed {
		t.Fatalf("phase = %v, want failed", s.Phase())
	}
}

func TestStateDiscardsResultAfterCityAdded(t *testing.T) {
	s := addCities(State{}, Point{10, 10}, Point{20, 20})
	s, tk, _ := s.BeginSolve()
	route := Route{s.Cities[1], s.Cities[0]}

	s = s.AddCity(Point{30, 30})
	if !s.Loading {
		t.Fatal("adding a city does not end the in-flight attempt")
	}

	s, out := s.Succeed(tk, route)
	if out != Stale {
		t.Fatalf("outcome = %v, want stale", out)
	}
	if s.Route != nil {
		t.Fatalf("stale route applied: %v", s.Route)
	}
	if s.Loading {
		t.Fatal("loading should be cleared once the stale attempt returns")
	}
	if len(s.Cities) != 3 {
		t.Fatalf("cities changed: %v", s.Cities)
	}
}

func TestStateDiscardsResultAfterReset(t *testing.T) {
	s := addCities(State{}, Point{10, 10}, Point{20, 20})
	s, oldTicket, _ := s.BeginSolve()

	s = s.Reset()
	s = addCities(s, Point{1, 1}, Point{2, 2})
	s, newTicket, ok := s.BeginSolve()
	if !ok {
		t.Fatal("solve after reset should start")
	}

	s, out := s.Fail(oldTicket, "late failure")
	if out != Stale {
		t.Fatalf("outcome = %v, want stale", out)
	}
	if !s.Loading || s.Err != "" {
		t.Fatalf("stale failure touched the new attempt: %+v", s)
	}

	s, out = s.Succeed(newTicket, Route{s.Cities[0], s.Cities[1]})
	if out != Applied || s.Loading {
		t.Fatalf("new attempt not applied: %v %+v", out, s)
	}
}

func TestStateClearRouteKeepsCities(t *testing.T) {
	s := addCities(State{}, Point{1, 1}, Point{2, 2})
	s = s.SetRoute(Route{s.Cities[0], s.Cities[1]}).ClearRoute()

	if s.Route != nil || len(s.Cities) != 2 {
		t.Fatalf("unexpected state %+v", s)
	}
}
