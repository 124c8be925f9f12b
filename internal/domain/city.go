package domain

import (
	"fmt"
	"math"
)

// Represents a user-placed point on the surface.
// X and Y are percentages (0-100) of the surface width and height, so
// placement is independent of the pixel size of the surface.
// A City is immutable once created.
type City struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// CityName returns the display name for the n-th city of a session (1-based).
func CityName(n int) string {
	return fmt.Sprintf("City %d", n)
}

// Position returns the city's percent position.
func (c City) Position() Point {
	return Point{X: c.X, Y: c.Y}
}

// Label formats the city the way the route list shows it.
func (c City) Label() string {
	return fmt.Sprintf("%s — (%.1f, %.1f)", c.Name, c.X, c.Y)
}

// coordEpsilon absorbs float noise from solvers that re-serialize coordinates.
const coordEpsilon = 1e-9

// Same reports whether c and o denote the same placed city.
func (c City) Same(o City) bool {
	return c.Name == o.Name &&
		math.Abs(c.X-o.X) <= coordEpsilon &&
		math.Abs(c.Y-o.Y) <= coordEpsilon
}
