package lens2d

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
)

// CameraModel places a point source, the lens and the sensor along the
// optical axis (x), lens centered at x = 0, and sweeps a fan of rays from
// the source onto the sensor.
type CameraModel struct {
	Lens           *Lens
	Sensor         *Sensor
	Source         PointSource
	SourcePosition Real // x of the point source, t/2 + D
	SensorPosition Real // x of the sensor plane, -t/2 - D2
	Workers        int  // sampling goroutines, 0 falls back to the package Workers

	counts [numCategories]int64
}

// Stats summarizes how the sampled rays ended.
type Stats struct {
	Rays       int64
	Hits       int64
	Misses     int64 // lens and sensor misses
	Failed     int64 // rays skipped on degenerate geometry
	ByCategory map[Category]int64
}

// NewCameraModel takes the configuration scalars in the order of the
// command line: radii R1 and R2, thickness T, aperture OD, lens-to-sensor
// distance D2, sensor height h, pixels per side M and source-to-lens
// distance D.
func NewCameraModel(r1, r2, t, od, d2, h Real, m int, d Real) (*CameraModel, error) {
	if !(d > 0) || !isFinite(d) {
		return nil, fmt.Errorf("%w: source distance D must be > 0, got %g", ErrConfig, d)
	}
	if !(d2 > 0) || !isFinite(d2) {
		return nil, fmt.Errorf("%w: sensor distance D2 must be > 0, got %g", ErrConfig, d2)
	}
	lens, err := NewLens(r1, r2, t, od)
	if err != nil {
		return nil, err
	}
	sensor, err := NewSensor(h, m)
	if err != nil {
		return nil, err
	}
	c := &CameraModel{
		Lens:           lens,
		Sensor:         sensor,
		SourcePosition: t/2 + d,
		SensorPosition: -t/2 - d2,
	}
	c.Source = PointSource{
		Origin: Point2{c.SourcePosition, 0},
		// Heuristic bound on rays that could clear the aperture.
		MaxAngle: math.Atan(lens.Aperture / (c.SourcePosition + lens.Thickness)),
	}
	DebugLog("Created camera source=%g sensor=%g max angle=%g rad", c.SourcePosition, c.SensorPosition, c.Source.MaxAngle)
	return c, nil
}

// trace follows the ray at angle theta up to the sensor plane without
// touching the sensor. Hit here only means the ray is within the sensor
// range; Write still decides whether it lands on a pixel.
func (c *CameraModel) trace(theta Real) (Category, RayLog) {
	entry := RayLog{Theta: theta, Origin: c.Source.Origin}

	in, err := c.Source.RayAt(theta)
	if err != nil {
		entry.Err = err
		return Degenerate, entry
	}
	out, err := c.Lens.Refract(in)
	if err != nil {
		entry.Err = err
		return categoryOf(err), entry
	}
	entry.Exit = out

	y, err := out.ValueAtX(c.SensorPosition)
	if err == nil && !isFinite(y) {
		err = fmt.Errorf("%w: non-finite sensor height", ErrDegenerateGeometry)
	}
	if err != nil {
		entry.Err = err
		return Degenerate, entry
	}
	entry.SensorY = y

	if math.Abs(y) > c.Sensor.Height {
		return LensMiss, entry
	}
	return Hit, entry
}

// SampleRay fires one ray at angle theta and records where it lands.
// Degenerate geometry skips the ray; it never stops the run.
func (c *CameraModel) SampleRay(theta Real) Category {
	return c.sample(theta, nil)
}

// sample is SampleRay writing into p instead of the shared grid when p is
// not nil.
func (c *CameraModel) sample(theta Real, p *partial) Category {
	cat, entry := c.trace(theta)
	if cat == Hit {
		var landed bool
		if p != nil {
			landed = c.Sensor.writePartial(p, entry.SensorY)
		} else {
			landed = c.Sensor.Write(entry.SensorY)
		}
		if !landed {
			cat = SensorMiss
		}
	}
	return c.record(cat, entry)
}

func (c *CameraModel) workers(n int) int {
	w := c.Workers
	if w < 1 {
		w = Workers
	}
	if w < 1 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	return w
}

func (c *CameraModel) record(cat Category, entry RayLog) Category {
	atomic.AddInt64(&c.counts[cat], 1)
	if Debug {
		entry.Name = cat.String()
		entry.Category = cat
		logRay(entry)
	}
	return cat
}

// SamplePointSource fires n rays evenly spread over the source's fan and
// then reconstructs the sensor image.
func (c *CameraModel) SamplePointSource(n int) error {
	return c.SamplePointSourceContext(context.Background(), n)
}

// SamplePointSourceContext is SamplePointSource with cooperative
// cancellation. A canceled run returns ctx.Err() and leaves the sensor
// unrotated.
func (c *CameraModel) SamplePointSourceContext(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: ray count N must be > 0, got %d", ErrConfig, n)
	}
	thetas := c.Source.Angles(n)

	workers := c.workers(n)
	per, rem := n/workers, n%workers

	// Without locks every worker fills its own grid, summed after the pool.
	var parts []*partial
	if !UseLocks {
		parts = make([]*partial, workers)
		for w := range parts {
			parts[w] = c.Sensor.newPartial()
		}
	}

	var fired int64
	nextPrint := int64(1)
	if n >= 100 {
		nextPrint = int64(n / 100) // ~1%
	}

	var wg sync.WaitGroup
	lo := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		hi := lo + cnt
		var part *partial
		if parts != nil {
			part = parts[w]
		}
		wg.Add(1)
		go func(lo, hi int, part *partial) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				c.sample(thetas[i], part)
				f := atomic.AddInt64(&fired, 1)
				if Debug && f%nextPrint == 0 {
					fmt.Printf("[PROGRESS] %.2f%%\n", Real(f)*100/Real(n))
				}
			}
		}(lo, hi, part)
		lo = hi
	}
	wg.Wait()
	for _, p := range parts {
		c.Sensor.merge(p)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	// Every write is done; the reconstruction reads the center column while
	// writing the rest, so it must run alone and only once.
	c.Sensor.Rotate()
	return nil
}

// MissCount is the number of rays that reached neither the lens image area
// nor a sensor pixel.
func (c *CameraModel) MissCount() int64 {
	return atomic.LoadInt64(&c.counts[LensMiss]) + atomic.LoadInt64(&c.counts[SensorMiss])
}

// Failed is the number of rays skipped because of degenerate geometry.
func (c *CameraModel) Failed() int64 {
	var n int64
	for cat := Category(0); cat < numCategories; cat++ {
		if cat.Failed() {
			n += atomic.LoadInt64(&c.counts[cat])
		}
	}
	return n
}

// Stats returns the per-category outcome counts of every ray fired so far.
func (c *CameraModel) Stats() Stats {
	st := Stats{ByCategory: make(map[Category]int64)}
	for cat := Category(0); cat < numCategories; cat++ {
		v := atomic.LoadInt64(&c.counts[cat])
		st.Rays += v
		if v > 0 {
			st.ByCategory[cat] = v
		}
	}
	st.Hits = st.ByCategory[Hit]
	st.Misses = c.MissCount()
	st.Failed = c.Failed()
	return st
}

// ParaxialFocus estimates where a near-axis ray from the source crosses the
// optical axis after the lens.
func (c *CameraModel) ParaxialFocus() (Real, error) {
	in, err := c.Source.RayAt(paraxialTilt)
	if err != nil {
		return 0, err
	}
	out, err := c.Lens.Refract(in)
	if err != nil {
		return 0, err
	}
	axis := Ray{Origin: Point2{}, Direction: Vector2{1, 0}}
	p, err := out.IntersectRay(axis)
	if err != nil {
		return 0, err
	}
	return p.X, nil
}
