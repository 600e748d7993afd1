package lens2d

import (
	"fmt"
	"math"
)

// Intersection holds where a ray's line crosses a circle. First always has
// the larger x, Second the smaller; lens code relies on that order to tell
// the struck surface point from the far one.
type Intersection struct {
	First, Second Point2
	Tangent       bool
}

// Intersect solves the ray/circle crossing in the circle's own frame:
// y = m·x + b substituted into x² + y² = r² gives
// (1+m²)x² + 2mb·x + (b² - r²) = 0.
func Intersect(c Circle, ray Ray) (Intersection, error) {
	local := ray.Translate(-c.Center.X, -c.Center.Y)
	// TODO: a ray vertical in the circle frame could be solved as x = const;
	// decide once a lens geometry is found that produces one.
	if local.Direction.X == 0 {
		return Intersection{}, fmt.Errorf("intersect: %w", ErrVerticalRay)
	}
	m := local.Direction.Y / local.Direction.X
	b, err := local.ValueAtX(0)
	if err != nil {
		return Intersection{}, err
	}

	r := c.Radius
	a2 := 2 * (1 + m*m)
	D := 4*(m*b)*(m*b) - 4*(1+m*m)*(b*b-r*r)

	toWorld := func(x Real) (Point2, error) {
		y, err := local.ValueAtX(x)
		if err != nil {
			return Point2{}, err
		}
		return Point2{x + c.Center.X, y + c.Center.Y}, nil
	}

	switch {
	case D < 0:
		return Intersection{}, fmt.Errorf("%w: discriminant %g", ErrNoIntersection, D)
	case D == 0:
		DebugLog("Intersect: ray tangent to circle %+v", c)
		p, err := toWorld(-2 * m * b / a2)
		if err != nil {
			return Intersection{}, err
		}
		return Intersection{First: p, Second: p, Tangent: true}, nil
	}

	sq := math.Sqrt(D)
	p1, err := toWorld((-2*m*b + sq) / a2)
	if err != nil {
		return Intersection{}, err
	}
	p2, err := toWorld((-2*m*b - sq) / a2)
	if err != nil {
		return Intersection{}, err
	}
	return Intersection{First: p1, Second: p2}, nil
}
