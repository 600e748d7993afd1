package lens2d

import (
	"fmt"
	"math"
)

// Ray is a half-line in the cross-section plane. Direction is always unit
// length; every constructor and transform below keeps it that way.
type Ray struct {
	Origin    Point2
	Direction Vector2
}

// NewRay normalizes dir. A zero (or non-finite) direction has no
// normalization and is rejected.
func NewRay(origin Point2, dir Vector2) (Ray, error) {
	l := dir.Len()
	if l == 0 || !isFinite(l) {
		return Ray{}, fmt.Errorf("%w: (%g, %g)", ErrZeroDirection, dir.X, dir.Y)
	}
	return Ray{Origin: origin, Direction: Vector2{dir.X / l, dir.Y / l}}, nil
}

// ValueAtX returns y on the ray's line at the given x.
func (r Ray) ValueAtX(x Real) (Real, error) {
	if r.Direction.X == 0 {
		return 0, ErrVerticalRay
	}
	return (x-r.Origin.X)*(r.Direction.Y/r.Direction.X) + r.Origin.Y, nil
}

// ValueAtY returns x on the ray's line at the given y.
func (r Ray) ValueAtY(y Real) (Real, error) {
	if r.Direction.Y == 0 {
		return 0, ErrHorizontalRay
	}
	return (y-r.Origin.Y)*(r.Direction.X/r.Direction.Y) + r.Origin.X, nil
}

// Translate shifts the origin, the direction is unchanged.
func (r Ray) Translate(dx, dy Real) Ray {
	return Ray{Origin: Point2{r.Origin.X + dx, r.Origin.Y + dy}, Direction: r.Direction}
}

// Rotate turns the direction counter-clockwise by theta radians about the
// ray's own origin.
func (r Ray) Rotate(theta Real) Ray {
	return Ray{Origin: r.Origin, Direction: r.Direction.Rotate(theta).Norm()}
}

// Dot is the cosine of the angle between the two (unit) directions.
func (r Ray) Dot(other Ray) Real {
	return r.Direction.Dot(other.Direction)
}

// IntersectRay returns the point where the lines of both rays cross.
func (r Ray) IntersectRay(other Ray) (Point2, error) {
	if math.Abs(math.Abs(r.Dot(other))-1) < 1e-12 {
		return Point2{}, ErrParallelRays
	}
	if r.Direction.X == 0 || other.Direction.X == 0 {
		return Point2{}, ErrVerticalRay
	}
	m1 := r.Direction.Y / r.Direction.X
	m2 := other.Direction.Y / other.Direction.X
	x := ((r.Origin.Y - m1*r.Origin.X) - (other.Origin.Y - m2*other.Origin.X)) / (m2 - m1)
	y, err := r.ValueAtX(x)
	if err != nil {
		return Point2{}, err
	}
	return Point2{x, y}, nil
}
