package lens2d

import "errors"

// ErrConfig is wrapped by every configuration error. Configuration errors are
// reported before any ray is fired.
var ErrConfig = errors.New("invalid configuration")

// ErrDegenerateGeometry matches every error below with errors.Is. These abort
// the contribution of a single ray, never the whole run.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

var (
	ErrZeroDirection           error = geometryError("zero-length direction")
	ErrVerticalRay             error = geometryError("vertical ray")
	ErrHorizontalRay           error = geometryError("horizontal ray")
	ErrParallelRays            error = geometryError("parallel rays")
	ErrNoIntersection          error = geometryError("ray does not intersect circle")
	ErrOrthogonalIncidence     error = geometryError("incident ray is orthogonal to normal")
	ErrTotalInternalReflection error = geometryError("total internal reflection")
)

type geometryError string

func (e geometryError) Error() string { return string(e) }

func (e geometryError) Is(target error) bool { return target == ErrDegenerateGeometry }
