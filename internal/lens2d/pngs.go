package lens2d

import (
	"image"
	"image/png"
	"math"
	"os"

	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/mat"
)

// gridImage maps hit counts to a 16-bit grayscale image, normalized by the
// brightest pixel and shaped by gamma. Row 0 of the grid is the top row.
func gridImage(g mat.Matrix, gamma Real) *image.Gray16 {
	rows, cols := g.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))

	peak := mat.Max(g)
	if peak <= 0 {
		return img // nothing landed; all black
	}
	scale := 1.0 / peak

	toU16 := func(v Real) uint16 {
		if v <= 0 {
			return 0
		}
		n := v * scale
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint16(math.Round(n * 65535.0))
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := toU16(g.At(r, c))
			p := img.PixOffset(c, r)
			// Gray16 stores big-endian uint16.
			img.Pix[p+0] = uint8(v >> 8)
			img.Pix[p+1] = uint8(v)
		}
	}
	return img
}

// upscale enlarges a small sensor image so single pixels stay visible.
func upscale(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*scale), uint(b.Dy()*scale), img, resize.NearestNeighbor)
}

// SaveSensorPNG16 writes the sensor grid as a lossless 16-bit grayscale PNG,
// each sensor pixel drawn as a scale×scale block.
func SaveSensorPNG16(g mat.Matrix, path string, gamma Real, scale int) error {
	img := upscale(gridImage(g, gamma), scale)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
