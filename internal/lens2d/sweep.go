package lens2d

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Frame is one step of a focus sweep.
type Frame struct {
	D2    Real
	Grid  *mat.Dense
	Stats Stats
}

// Sweep runs one full simulation per sensor distance on [sw.From, sw.To],
// everything else taken from cfg.
func Sweep(ctx context.Context, cfg *Config, sw SweepCfg) ([]Frame, error) {
	if sw.Frames <= 0 {
		return nil, fmt.Errorf("%w: sweep needs at least one frame", ErrConfig)
	}
	distances := []Real{sw.From}
	if sw.Frames > 1 {
		distances = floats.Span(make([]Real, sw.Frames), sw.From, sw.To)
	}

	frames := make([]Frame, 0, len(distances))
	for i, d2 := range distances {
		step := *cfg
		step.D2 = d2
		cam, err := step.NewCamera()
		if err != nil {
			return nil, fmt.Errorf("sweep frame %d (D2=%g): %w", i, d2, err)
		}
		if err := cam.SamplePointSourceContext(ctx, step.N); err != nil {
			return nil, err
		}
		frames = append(frames, Frame{D2: d2, Grid: cam.Sensor.Grid(), Stats: cam.Stats()})
		DebugLog("Sweep frame %d/%d: D2=%g hits=%d", i+1, len(distances), d2, cam.Stats().Hits)
	}
	return frames, nil
}

// SaveSweepGIF writes the frames of a sweep as an animated GIF.
func SaveSweepGIF(frames []Frame, path string, delay int, gamma Real, scale int) error {
	grids := make([]mat.Matrix, len(frames))
	for i, f := range frames {
		grids[i] = f.Grid
	}
	return SaveAnimatedGIF(grids, path, delay, gamma, scale)
}
