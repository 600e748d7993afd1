package lens2d

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"

	"gonum.org/v1/gonum/mat"
)

// grayPalette is 256 evenly spaced gray levels.
func grayPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}

// SaveAnimatedGIF writes one frame per grid. delay is in 100ths of a second.
// Each frame is normalized on its own.
func SaveAnimatedGIF(frames []mat.Matrix, path string, delay int, gamma Real, scale int) error {
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	pal := grayPalette()
	for k, g := range frames {
		if Debug && k%imax(1, len(frames)/10) == 0 {
			DebugLog("[GIF] frame %d/%d", k+1, len(frames))
		}
		src := upscale(gridImage(g, gamma), scale)
		pimg := image.NewPaletted(src.Bounds(), pal)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), src, src.Bounds().Min)

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
