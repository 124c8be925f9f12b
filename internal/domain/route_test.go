package domain

import "testing"

func TestRouteSegmentsOpenPath(t *testing.T) {
	c1 := City{Name: "City 1", X: 10, Y: 20}
	c2 := City{Name: "City 2", X: 70, Y: 80}

	segs := Route{c2, c1}.Segments()
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].From != c2.Position() || segs[0].To != c1.Position() {
		t.Fatalf("segment = %+v, want city2 -> city1", segs[0])
	}
}

func TestRouteSegmentsNoClosingLine(t *testing.T) {
	r := Route{
		{Name: "City 1", X: 0, Y: 0},
		{Name: "City 2", X: 10, Y: 0},
		{Name: "City 3", X: 10, Y: 10},
		{Name: "City 4", X: 0, Y: 10},
	}

	segs := r.Segments()
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	last := segs[len(segs)-1]
	if last.To == r[0].Position() {
		t.Fatal("path must not close back to the start")
	}
}

func TestRouteSegmentsShortRoutes(t *testing.T) {
	if n := len(Route(nil).Segments()); n != 0 {
		t.Fatalf("nil route gave %d segments", n)
	}
	if n := len(Route{{Name: "City 1"}}.Segments()); n != 0 {
		t.Fatalf("single city gave %d segments", n)
	}
}

func TestRouteIsPermutationOf(t *testing.T) {
	cities := []City{
		{Name: "City 1", X: 1, Y: 2},
		{Name: "City 2", X: 3, Y: 4},
		{Name: "City 3", X: 5, Y: 6},
	}

	tests := []struct {
		name  string
		route Route
		want  bool
	}{
		{"reordered", Route{cities[2], cities[0], cities[1]}, true},
		{"identity", Route{cities[0], cities[1], cities[2]}, true},
		{"nil", nil, false},
		{"missing city", Route{cities[0], cities[1]}, false},
		{"duplicate", Route{cities[0], cities[0], cities[1]}, false},
		{"unknown city", Route{cities[0], cities[1], {Name: "City 9", X: 5, Y: 6}}, false},
		{"moved city", Route{cities[0], cities[1], {Name: "City 3", X: 50, Y: 6}}, false},
	}

	for _, tc := range tests {
		if got := tc.route.IsPermutationOf(cities); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCityLabel(t *testing.T) {
	c := City{Name: "City 3", X: 12.345, Y: 67.89}
	if got, want := c.Label(), "City 3 — (12.3, 67.9)"; got != want {
		t.Fatalf("label = %q, want %q", got, want)
	}
}
