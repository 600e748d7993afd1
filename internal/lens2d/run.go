package lens2d

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result is what a finished simulation leaves behind.
type Result struct {
	RunID   string
	Camera  *CameraModel
	Stats   Stats
	Outputs []string // files written
}

// Run loads the JSON config at cfgPath, simulates it, writes the configured
// outputs and publishes them when S3 is configured in the environment.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	return RunConfig(context.Background(), cfg, S3CfgFromEnv())
}

// RunConfig is Run for an already loaded config.
func RunConfig(ctx context.Context, cfg *Config, pub S3Cfg) error {
	res, err := Simulate(ctx, cfg)
	if err != nil {
		return err
	}
	if !pub.Enabled() || len(res.Outputs) == 0 {
		return nil
	}
	client, err := newS3Client(pub)
	if err != nil {
		return err
	}
	keys, err := uploadFiles(ctx, client, pub, res.RunID, res.Outputs)
	if err != nil {
		return err
	}
	fmt.Printf("[%s] published %d files to s3://%s\n", res.RunID, len(keys), pub.Bucket)
	return nil
}

// Simulate validates cfg, fires cfg.N rays, reconstructs the sensor image
// and writes every output named in cfg.
func Simulate(ctx context.Context, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	cam, err := cfg.NewCamera()
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: uuid.NewString(), Camera: cam}
	DebugLog("Run %s: %s", res.RunID, cfg.Summary())

	if Debug {
		resetRayLog()
		p := estimateHitFraction(cam, cfg.ProbeRays)
		DebugLog("Estimated sensor hit fraction: %.4f (%d probe rays)", p, cfg.ProbeRays)
		if f, err := cam.ParaxialFocus(); err == nil {
			DebugLog("Paraxial image plane at x=%.4f, sensor at x=%.4f", f, cam.SensorPosition)
		}
	}

	start := time.Now()
	if err := cam.SamplePointSourceContext(ctx, cfg.N); err != nil {
		return nil, err
	}
	res.Stats = cam.Stats()
	fmt.Printf("[%s] rays: %d, hits: %d, misses: %d, failed: %d, time: %s\n",
		res.RunID, res.Stats.Rays, res.Stats.Hits, res.Stats.Misses, res.Stats.Failed, time.Since(start))
	if res.Stats.Failed == int64(cfg.N) {
		fmt.Printf("[%s] warning: every ray hit degenerate geometry, check the lens configuration\n", res.RunID)
	}
	if Debug {
		raysStats()
	}

	if err := writeOutputs(ctx, cfg, res); err != nil {
		return res, err
	}
	return res, nil
}

func writeOutputs(ctx context.Context, cfg *Config, res *Result) error {
	cam := res.Camera
	grid := cam.Sensor.Grid()

	if cfg.PNGOut != "" {
		if err := SaveSensorPNG16(grid, cfg.PNGOut, cfg.Gamma, cfg.PNGScale); err != nil {
			return err
		}
		res.Outputs = append(res.Outputs, cfg.PNGOut)
	}
	if cfg.PlotOut != "" {
		if err := SaveHeatmapPlot(grid, cam.Sensor.Height, cfg.Summary(), cfg.PlotOut); err != nil {
			return err
		}
		res.Outputs = append(res.Outputs, cfg.PlotOut)
	}
	if cfg.DiagramOut != "" {
		if err := SaveDiagram(cam, cfg.DiagramRays, cfg.DiagramOut, DiagramSize); err != nil {
			return err
		}
		res.Outputs = append(res.Outputs, cfg.DiagramOut)
	}
	if cfg.RawOut != "" {
		if err := SaveRawGrid(grid, cfg.RawOut); err != nil {
			return err
		}
		res.Outputs = append(res.Outputs, cfg.RawOut)
	}
	if sw := cfg.Sweep; sw != nil {
		frames, err := Sweep(ctx, cfg, *sw)
		if err != nil {
			return err
		}
		if err := SaveSweepGIF(frames, sw.GIFOut, sw.Delay, cfg.Gamma, cfg.PNGScale); err != nil {
			return err
		}
		res.Outputs = append(res.Outputs, sw.GIFOut)
		DebugLog("Saved focus sweep GIF: %s (%d frames)", sw.GIFOut, len(frames))
	}
	for _, o := range res.Outputs {
		DebugLog("Wrote %s", o)
	}
	return nil
}
