package lens2d

import (
	"fmt"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Sensor is a square h×h millimeter sensor with Pixels×Pixels pixels.
// Physical samples only land on the center column (x = 0); Rotate fills the
// rest of the grid from that column by the system's rotational symmetry.
type Sensor struct {
	Height    Real
	Pixels    int
	PixelSize Real
	grid      *mat.Dense // row index grows downward, physical y upward
	hits      int64
	locks     *pixelLocks
}

// NewSensor allocates a zero grid. Pixels must be odd so a center row and
// column exist.
func NewSensor(height Real, pixels int) (*Sensor, error) {
	if !(height > 0) || !isFinite(height) {
		return nil, fmt.Errorf("%w: sensor height must be > 0, got %g", ErrConfig, height)
	}
	if pixels <= 0 || pixels%2 == 0 {
		return nil, fmt.Errorf("%w: sensor pixel count must be odd and positive, got %d", ErrConfig, pixels)
	}
	s := &Sensor{
		Height:    height,
		Pixels:    pixels,
		PixelSize: height / Real(pixels),
		grid:      mat.NewDense(pixels, pixels, nil),
		locks:     newPixelLocks(pixels),
	}
	DebugLog("Created sensor h=%g, pixels=%d, pixel size=%g", height, pixels, s.PixelSize)
	return s, nil
}

// PixelAt maps a millimeter point to (column, row). ok is false when the
// point is off the sensor. A point exactly on the right or bottom edge maps
// to index Pixels.
func (s *Sensor) PixelAt(x, y Real) (px, py int, ok bool) {
	half := s.Height / 2
	if math.Abs(x) > half || math.Abs(y) > half {
		return 0, 0, false
	}
	px = int(floorDiv(x+half, s.PixelSize))
	py = int(floorDiv(half-y, s.PixelSize))
	return px, py, true
}

// pixel maps a center-column strike at height y to its grid cell. A strike
// exactly on the far edge lands in the last row.
func (s *Sensor) pixel(y Real) (row, col int, ok bool) {
	px, py, ok := s.PixelAt(0, y)
	if !ok {
		DebugLogOnce("Sensor.Write: first ray off the sensor at y=%g", y)
		return 0, 0, false
	}
	if px == s.Pixels {
		px = s.Pixels - 1
	}
	if py == s.Pixels {
		py = s.Pixels - 1
	}
	return py, px, true
}

// Write records one ray striking the center column at height y. It returns
// false when the ray misses the sensor. Concurrent writers need UseLocks;
// without it they must go through per-worker partial grids.
func (s *Sensor) Write(y Real) bool {
	row, col, ok := s.pixel(y)
	if !ok {
		return false
	}
	if UseLocks {
		s.locks.add(s.grid, row, col, 1)
	} else {
		s.grid.Set(row, col, s.grid.At(row, col)+1)
	}
	atomic.AddInt64(&s.hits, 1)
	return true
}

// partial is one worker's private hit grid, summed into the sensor by merge.
type partial struct {
	grid *mat.Dense
	hits int64
}

func (s *Sensor) newPartial() *partial {
	return &partial{grid: mat.NewDense(s.Pixels, s.Pixels, nil)}
}

// writePartial is Write into a grid owned by a single goroutine.
func (s *Sensor) writePartial(p *partial, y Real) bool {
	row, col, ok := s.pixel(y)
	if !ok {
		return false
	}
	p.grid.Set(row, col, p.grid.At(row, col)+1)
	p.hits++
	return true
}

// merge adds p into the sensor. The goroutine that filled p must be done.
func (s *Sensor) merge(p *partial) {
	s.grid.Add(s.grid, p.grid)
	atomic.AddInt64(&s.hits, p.hits)
}

// Rotate rebuilds the full image from the center column. Each off-center
// pixel within Pixels/2 of the center gets the center column value at the
// same (floored) radius added to it: above center for the left half, below
// center for the right half. Corner pixels beyond that radius stay as they
// are.
//
// Rotate is not idempotent. Call it once, after all writes.
func (s *Sensor) Rotate() {
	mid := s.Pixels / 2
	for px := 0; px < s.Pixels; px++ {
		if px == mid {
			continue
		}
		xc := px - mid
		for py := 0; py < s.Pixels; py++ {
			yc := mid - py
			mag := math.Sqrt(Real(xc*xc + yc*yc))
			if mag > Real(mid) {
				continue
			}
			r := int(mag)
			src := mid + r
			if xc < 0 {
				src = mid - r
			}
			s.grid.Set(py, px, s.grid.At(py, px)+s.grid.At(src, mid))
		}
	}
}

// Grid returns a copy of the hit counts.
func (s *Sensor) Grid() *mat.Dense { return mat.DenseCopyOf(s.grid) }

// At returns the hit count at (row, col).
func (s *Sensor) At(row, col int) Real { return s.grid.At(row, col) }

// Hits is the number of successful writes.
func (s *Sensor) Hits() int64 { return atomic.LoadInt64(&s.hits) }

// CenterColumnSum adds up the column Rotate reads from; it equals Hits.
func (s *Sensor) CenterColumnSum() Real {
	return floats.Sum(mat.Col(nil, s.Pixels/2, s.grid))
}

// Max is the brightest pixel value.
func (s *Sensor) Max() Real { return mat.Max(s.grid) }
