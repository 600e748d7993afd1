package lens2d

import (
	"math"

	"github.com/fogleman/gg"
)

// viewport maps millimeter coordinates onto a size×size canvas. The axial
// and vertical scales differ since the source is usually far from the lens.
type viewport struct {
	minX, maxX Real
	minY, maxY Real
	size       Real
}

func (v viewport) pt(x, y Real) (Real, Real) {
	px := (x - v.minX) / (v.maxX - v.minX) * v.size
	py := v.size - (y-v.minY)/(v.maxY-v.minY)*v.size
	return px, py
}

func (v viewport) line(dc *gg.Context, a, b Point2) {
	x1, y1 := v.pt(a.X, a.Y)
	x2, y2 := v.pt(b.X, b.Y)
	dc.DrawLine(x1, y1, x2, y2)
}

// SaveDiagram draws the lens profile, optical axis, sensor and the paths of
// rays fanned evenly over the source's acceptance angle.
func SaveDiagram(c *CameraModel, rays int, path string, size int) error {
	edge := c.Lens.EdgeHalfHeight()
	halfH := math.Max(math.Max(edge, c.Sensor.Height), c.Lens.Aperture) * 1.2
	span := c.SourcePosition - c.SensorPosition
	v := viewport{
		minX: c.SensorPosition - 0.05*span,
		maxX: c.SourcePosition + 0.05*span,
		minY: -halfH,
		maxY: halfH,
		size: Real(size),
	}

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// optical axis
	dc.SetRGB(0.7, 0.7, 0.7)
	dc.SetLineWidth(1)
	v.line(dc, Point2{v.minX, 0}, Point2{v.maxX, 0})
	dc.Stroke()

	// lens profile: front surface is the right arc, back surface the left one
	dc.SetRGB(0.1, 0.3, 0.9)
	dc.SetLineWidth(2)
	const steps = 64
	for i := 0; i < steps; i++ {
		y0 := -edge + 2*edge*Real(i)/steps
		y1 := -edge + 2*edge*Real(i+1)/steps
		if r0, _, ok0 := c.Lens.Front.XAt(y0); ok0 {
			if r1, _, ok1 := c.Lens.Front.XAt(y1); ok1 {
				v.line(dc, Point2{r0, y0}, Point2{r1, y1})
			}
		}
		if _, l0, ok0 := c.Lens.Back.XAt(y0); ok0 {
			if _, l1, ok1 := c.Lens.Back.XAt(y1); ok1 {
				v.line(dc, Point2{l0, y0}, Point2{l1, y1})
			}
		}
	}
	dc.Stroke()

	// sensor
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(4)
	v.line(dc, Point2{c.SensorPosition, -c.Sensor.Height / 2}, Point2{c.SensorPosition, c.Sensor.Height / 2})
	dc.Stroke()

	// rays
	dc.SetRGBA(0.9, 0.1, 0.1, 0.8)
	dc.SetLineWidth(1)
	for _, theta := range c.Source.Angles(rays) {
		in, err := c.Source.RayAt(theta)
		if err != nil {
			continue
		}
		p, err := c.Lens.Trace(in)
		if err != nil {
			DebugLog("SaveDiagram: skipping ray at %g: %v", theta, err)
			continue
		}
		y, err := p.Exit.ValueAtX(c.SensorPosition)
		if err != nil || !isFinite(y) {
			continue
		}
		v.line(dc, c.Source.Origin, p.Entry)
		v.line(dc, p.Entry, p.Exit.Origin)
		// ValueAtX succeeded, so the exit ray is not vertical.
		strike := p.Exit.Origin.Add(p.Exit.Direction.Mul((c.SensorPosition - p.Exit.Origin.X) / p.Exit.Direction.X))
		v.line(dc, p.Exit.Origin, strike)
	}
	dc.Stroke()

	// point source and paraxial focus
	dc.SetRGB(0.9, 0.6, 0)
	sx, sy := v.pt(c.Source.Origin.X, c.Source.Origin.Y)
	dc.DrawCircle(sx, sy, 5)
	if f, err := c.ParaxialFocus(); err == nil && f > v.minX && f < v.maxX {
		fx, fy := v.pt(f, 0)
		dc.DrawCircle(fx, fy, 4)
	}
	dc.Fill()

	return dc.SavePNG(path)
}
