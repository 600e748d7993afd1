package lens2d

import (
	"fmt"
	"math"
)

// Circle is one spherical lens surface seen in cross-section.
type Circle struct {
	Center Point2
	Radius Real
}

// NewCircle rejects non-positive or non-finite radii with ErrConfig.
func NewCircle(center Point2, radius Real) (Circle, error) {
	if !(radius > 0) || !isFinite(radius) {
		return Circle{}, fmt.Errorf("%w: circle radius must be > 0, got %g", ErrConfig, radius)
	}
	return Circle{Center: center, Radius: radius}, nil
}

// IsPointOnCircle compares squared distances within Epsilon.
func (c Circle) IsPointOnCircle(p Point2) bool {
	d := p.Sub(c.Center)
	return math.Abs(d.Dot(d)-c.Radius*c.Radius) < Epsilon
}

// NormalAt returns the outward normal at p as a ray anchored on p.
// p must lie on the circle; anything else is a bug in the caller.
func (c Circle) NormalAt(p Point2) Ray {
	if !c.IsPointOnCircle(p) {
		panic(fmt.Sprintf("NormalAt: point (%g, %g) is not on circle %+v", p.X, p.Y, c))
	}
	n, err := NewRay(p, p.Sub(c.Center))
	if err != nil {
		panic(fmt.Sprintf("NormalAt: %v", err))
	}
	return n
}

// YAt returns both circle ordinates at x, upper first.
func (c Circle) YAt(x Real) (upper, lower Real, ok bool) {
	dx := x - c.Center.X
	rad := c.Radius*c.Radius - dx*dx
	if rad < 0 {
		return 0, 0, false
	}
	s := math.Sqrt(rad)
	return c.Center.Y + s, c.Center.Y - s, true
}

// XAt returns both circle abscissae at y, right first.
func (c Circle) XAt(y Real) (right, left Real, ok bool) {
	dy := y - c.Center.Y
	rad := c.Radius*c.Radius - dy*dy
	if rad < 0 {
		return 0, 0, false
	}
	s := math.Sqrt(rad)
	return c.Center.X + s, c.Center.X - s, true
}
