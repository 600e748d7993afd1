package lens2d

import (
	"fmt"
	"math"
)

// snell returns the refracted angle for incidence angle theta going from
// index n1 into n2.
func snell(theta, n1, n2 Real) (Real, error) {
	arg := n1 * math.Sin(theta) / n2
	if arg > 1 || arg < -1 {
		return 0, fmt.Errorf("%w: sin(theta_r) = %g", ErrTotalInternalReflection, arg)
	}
	return math.Asin(arg), nil
}

// RefractVector bends ray across the boundary whose outward normal is given,
// going from index n1 into n2. The result is anchored at normal.Origin.
//
// Incidence is assumed acute, so only |cos| matters. The incident direction
// is rotated by ±(θi-θr) and the candidate that moves toward the normal (when
// bending into a denser medium) or away from it (otherwise) is kept.
func RefractVector(ray, normal Ray, n1, n2 Real) (Ray, error) {
	dot := math.Abs(ray.Dot(normal))
	if dot > 1 {
		dot = 1
	}
	if dot < Epsilon {
		return Ray{}, ErrOrthogonalIncidence
	}

	thetaIn := math.Acos(dot)
	thetaOut, err := snell(thetaIn, n1, n2)
	if err != nil {
		return Ray{}, err
	}
	delta := thetaIn - thetaOut

	base := Ray{Origin: normal.Origin, Direction: ray.Direction}
	plus := base.Rotate(delta)
	minus := base.Rotate(-delta)

	if delta > 0 {
		if math.Abs(plus.Dot(normal)) > dot {
			return plus, nil
		}
		return minus, nil
	}
	if math.Abs(plus.Dot(normal)) < dot {
		return plus, nil
	}
	return minus, nil
}
