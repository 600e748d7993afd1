package lens2d

import (
	"fmt"
	"math"
)

// Lens is a biconvex lens centered on the optical axis at x = 0. Light
// travels right to left: Front faces the source, Back faces the sensor.
type Lens struct {
	Front, Back Circle
	Aperture    Real // clear aperture (OD)
	Thickness   Real // center thickness (T)
	NAir        Real
	NGlass      Real
}

// Path is the full trip of one ray through the lens.
type Path struct {
	In    Ray
	Entry Point2 // where In strikes Front
	Inner Ray    // ray inside the glass, anchored at Entry
	Exit  Ray    // ray leaving Back, anchored at the exit point
}

// NewLens builds the two surfaces so that the front vertex sits at x = t/2
// and the back vertex at x = -t/2.
func NewLens(r1, r2, t, od Real) (*Lens, error) {
	if !(t > 0) || !isFinite(t) {
		return nil, fmt.Errorf("%w: lens thickness must be > 0, got %g", ErrConfig, t)
	}
	if !(od > 0) || !isFinite(od) {
		return nil, fmt.Errorf("%w: lens aperture must be > 0, got %g", ErrConfig, od)
	}
	front, err := NewCircle(Point2{-r1 + t/2, 0}, r1)
	if err != nil {
		return nil, fmt.Errorf("front surface: %w", err)
	}
	back, err := NewCircle(Point2{r2 - t/2, 0}, r2)
	if err != nil {
		return nil, fmt.Errorf("back surface: %w", err)
	}
	if t > 2*math.Min(r1, r2) {
		return nil, fmt.Errorf("%w: surfaces R1=%g R2=%g never meet for thickness %g", ErrConfig, r1, r2, t)
	}
	l := &Lens{
		Front:     front,
		Back:      back,
		Aperture:  od,
		Thickness: t,
		NAir:      NAir,
		NGlass:    NGlass,
	}
	if edge := l.EdgeHalfHeight(); od/2 > edge {
		DebugLog("Lens aperture %g exceeds the lens edge, half-height %g", od, edge)
	}
	DebugLog("Created lens front=%+v back=%+v aperture=%g", front, back, od)
	return l, nil
}

// EdgeHalfHeight is the height above the axis where both surfaces meet.
func (l *Lens) EdgeHalfHeight() Real {
	// Circles centered on the axis at a and b with radii r1, r2.
	a, r1 := l.Front.Center.X, l.Front.Radius
	b, r2 := l.Back.Center.X, l.Back.Radius
	d := b - a
	if d <= 0 {
		return 0
	}
	x := (d*d + r1*r1 - r2*r2) / (2 * d)
	up, _, ok := l.Front.YAt(a + x)
	if !ok {
		return 0
	}
	return up
}

// Trace follows in through both surfaces. The front strike is the larger-x
// crossing of Front, the exit the smaller-x crossing of Back.
func (l *Lens) Trace(in Ray) (Path, error) {
	hit1, err := Intersect(l.Front, in)
	if err != nil {
		return Path{}, fmt.Errorf("front surface: %w", err)
	}
	inner, err := RefractVector(in, l.Front.NormalAt(hit1.First), l.NAir, l.NGlass)
	if err != nil {
		return Path{}, fmt.Errorf("front surface: %w", err)
	}

	hit2, err := Intersect(l.Back, inner)
	if err != nil {
		return Path{}, fmt.Errorf("back surface: %w", err)
	}
	exit, err := RefractVector(inner, l.Back.NormalAt(hit2.Second), l.NGlass, l.NAir)
	if err != nil {
		return Path{}, fmt.Errorf("back surface: %w", err)
	}
	return Path{In: in, Entry: hit1.First, Inner: inner, Exit: exit}, nil
}

// Refract returns the ray leaving the lens. No aperture clipping happens
// here; the caller decides which rays to fire.
func (l *Lens) Refract(in Ray) (Ray, error) {
	p, err := l.Trace(in)
	if err != nil {
		return Ray{}, err
	}
	return p.Exit, nil
}
