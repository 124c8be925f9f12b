package domain

// Route is a visiting order over the current cities, as returned by the
// solver. A nil Route means "no route".
//
// The order is solver-determined and must never be re-sorted.
type Route []City

// Segment is a single drawn line between two consecutive route entries.
type Segment struct {
	From Point
	To   Point
}

// Segments returns the lines connecting consecutive cities in route order.
// The path is open: there is no closing segment back to the first city, so a
// route of n cities yields n-1 segments.
func (r Route) Segments() []Segment {
	if len(r) < 2 {
		return []Segment{}
	}

	out := make([]Segment, 0, len(r)-1)
	for i := 0; i < len(r)-1; i++ {
		out = append(out, Segment{From: r[i].Position(), To: r[i+1].Position()})
	}
	return out
}

// IsPermutationOf reports whether r visits every city in cities exactly once.
func (r Route) IsPermutationOf(cities []City) bool {
	if r == nil || len(r) != len(cities) {
		return false
	}

	byName := make(map[string]City, len(cities))
	for _, c := range cities {
		byName[c.Name] = c
	}

	seen := make(map[string]struct{}, len(r))
	for _, c := range r {
		want, ok := byName[c.Name]
		if !ok || !want.Same(c) {
			return false
		}
		if _, dup := seen[c.Name]; dup {
			return false
		}
		seen[c.Name] = struct{}{}
	}

	return true
}
