package domain

import (
	"errors"
	"math"
)

// ErrSurfaceNotLaidOut is returned when the interactive surface has no area,
// e.g. it is hidden or has not been laid out yet.
var ErrSurfaceNotLaidOut = errors.New("surface has zero size")

// ErrClickOutOfRange is returned when a click does not map to a finite
// position, e.g. a near-zero surface size or an absurd client coordinate.
var ErrClickOutOfRange = errors.New("click does not map to a finite surface position")

// Point is a position in some 2-D space (screen pixels or surface percent).
type Point struct {
	X float64
	Y float64
}

// Rect is the bounding rectangle of the interactive surface in screen space
// at the moment of a click.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Left+r.Width &&
		p.Y >= r.Top && p.Y <= r.Top+r.Height
}

// Normalize maps a screen-space click onto the surface as percentages of its
// width and height.
//
// Clicks on or just past the edge may produce values of 0, 100 or slightly
// outside [0, 100] due to sub-pixel rounding. These are returned unclamped.
// Results that are not finite are rejected with ErrClickOutOfRange.
func Normalize(click Point, surface Rect) (Point, error) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return Point{}, ErrSurfaceNotLaidOut
	}

	p := Point{
		X: (click.X - surface.Left) / surface.Width * 100,
		Y: (click.Y - surface.Top) / surface.Height * 100,
	}
	if !finite(p.X) || !finite(p.Y) {
		return Point{}, ErrClickOutOfRange
	}
	return p, nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Denormalize is the inverse of Normalize: it places a percent position back
// onto a surface in screen space.
func Denormalize(p Point, surface Rect) Point {
	return Point{
		X: surface.Left + p.X/100*surface.Width,
		Y: surface.Top + p.Y/100*surface.Height,
	}
}
