package lens2d

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// sensorGrid adapts a hit-count matrix to plotter.GridXYZ in sensor
// millimeters. Plot rows grow upward, grid rows downward.
type sensorGrid struct {
	g      mat.Matrix
	height Real
}

func (s sensorGrid) Dims() (c, r int) {
	r, c = s.g.Dims()
	return c, r
}

func (s sensorGrid) Z(c, r int) float64 {
	rows, _ := s.g.Dims()
	return s.g.At(rows-1-r, c)
}

func (s sensorGrid) X(c int) float64 {
	_, cols := s.g.Dims()
	return -s.height/2 + (Real(c)+0.5)*s.height/Real(cols)
}

func (s sensorGrid) Y(r int) float64 {
	rows, _ := s.g.Dims()
	return -s.height/2 + (Real(r)+0.5)*s.height/Real(rows)
}

type grayScale []color.Color

func (g grayScale) Colors() []color.Color { return g }

// SaveHeatmapPlot renders the grid as a grayscale heat map with the
// configuration as title, axes hidden.
func SaveHeatmapPlot(g mat.Matrix, height Real, title, path string) error {
	pal := grayScale(grayPalette())
	hm := plotter.NewHeatMap(sensorGrid{g: g, height: height}, pal)
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1 // flat grid, keep the color scale finite
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Color = color.RGBA{R: 0xcc, A: 0xff}
	p.Add(hm)
	p.HideAxes()
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
