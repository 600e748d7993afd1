package lens2d

import (
	"encoding/json"
	"fmt"
	"os"
)

// SweepCfg describes a focus sweep: one simulation per sensor distance D2,
// evenly spaced on [From, To], written as an animated GIF.
type SweepCfg struct {
	From   Real   `json:"from"`
	To     Real   `json:"to"`
	Frames int    `json:"frames,omitempty"`
	GIFOut string `json:"gifOut,omitempty"`
	Delay  int    `json:"delay,omitempty"`
}

type Config struct {
	// Required, no defaults. Millimeters unless noted.
	R1 Real `json:"R1"` // front (source side) radius
	R2 Real `json:"R2"` // back (sensor side) radius
	T  Real `json:"T"`  // center thickness
	OD Real `json:"OD"` // aperture
	D2 Real `json:"D2"` // lens to sensor
	D  Real `json:"D"`  // source to lens
	H  Real `json:"h"`  // sensor height
	M  int  `json:"M"`  // pixels per side, odd
	N  int  `json:"N"`  // rays to trace

	Workers     int       `json:"workers,omitempty"`
	Gamma       Real      `json:"gamma,omitempty"`
	PNGOut      string    `json:"pngOut,omitempty"`
	PNGScale    int       `json:"pngScale,omitempty"`
	PlotOut     string    `json:"plotOut,omitempty"`
	DiagramOut  string    `json:"diagramOut,omitempty"`
	DiagramRays int       `json:"diagramRays,omitempty"`
	RawOut      string    `json:"rawOut,omitempty"`
	ProbeRays   int       `json:"probeRays,omitempty"`
	Sweep       *SweepCfg `json:"sweep,omitempty"`
}

// Validate checks the required scalars. It runs before any ray is fired.
func (c *Config) Validate() error {
	pos := []struct {
		name string
		v    Real
	}{
		{"R1", c.R1}, {"R2", c.R2}, {"T", c.T}, {"OD", c.OD},
		{"D2", c.D2}, {"D", c.D}, {"h", c.H},
	}
	for _, p := range pos {
		if !(p.v > 0) || !isFinite(p.v) {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrConfig, p.name, p.v)
		}
	}
	if c.M <= 0 || c.M%2 == 0 {
		return fmt.Errorf("%w: M must be odd and positive, got %d", ErrConfig, c.M)
	}
	if c.N <= 0 {
		return fmt.Errorf("%w: N must be > 0, got %d", ErrConfig, c.N)
	}
	if s := c.Sweep; s != nil {
		if !(s.From > 0) || !(s.To > 0) {
			return fmt.Errorf("%w: sweep range must be > 0, got [%g, %g]", ErrConfig, s.From, s.To)
		}
	}
	return nil
}

// ApplyDefaults fills the optional output settings.
func (c *Config) ApplyDefaults() {
	if c.Gamma <= 0 {
		c.Gamma = Gamma
	}
	if c.PNGScale <= 0 {
		c.PNGScale = PNGScale
	}
	if c.DiagramRays <= 0 {
		c.DiagramRays = DiagramRays
	}
	if c.ProbeRays <= 0 {
		c.ProbeRays = ProbeRays
	}
	if s := c.Sweep; s != nil {
		if s.Frames <= 0 {
			s.Frames = SweepFrames
		}
		if s.GIFOut == "" {
			s.GIFOut = GIFOut
		}
		if s.Delay <= 0 {
			s.Delay = GIFDelay
		}
	}
}

// NewCamera builds the camera model described by the config.
func (c *Config) NewCamera() (*CameraModel, error) {
	cam, err := NewCameraModel(c.R1, c.R2, c.T, c.OD, c.D2, c.H, c.M, c.D)
	if err != nil {
		return nil, err
	}
	cam.Workers = c.Workers
	return cam, nil
}

// Summary is the one-line parameter annotation used on plots.
func (c *Config) Summary() string {
	return fmt.Sprintf("R1:%g, R2:%g, T:%g, OD:%g, D2:%g, D:%g, h:%g, M:%d, N:%d",
		c.R1, c.R2, c.T, c.OD, c.D2, c.D, c.H, c.M, c.N)
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	DebugLog("Loaded config from %s: %s", path, cfg.Summary())
	return &cfg, nil
}
