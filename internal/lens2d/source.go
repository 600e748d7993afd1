package lens2d

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PointSource sits on the optical axis and fires a fan of rays toward -x,
// restricted to half-angle MaxAngle (radians).
type PointSource struct {
	Origin   Point2
	MaxAngle Real
}

// Angles returns n angles evenly spaced on [-MaxAngle, MaxAngle], both ends
// included. A single ray fires at -MaxAngle.
func (s PointSource) Angles(n int) []Real {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []Real{-s.MaxAngle}
	}
	return floats.Span(make([]Real, n), -s.MaxAngle, s.MaxAngle)
}

// RayAt is the ray leaving the source at angle theta above the axis,
// direction (-1, tan theta).
func (s PointSource) RayAt(theta Real) (Ray, error) {
	return NewRay(s.Origin, Vector2{-1, math.Tan(theta)})
}
