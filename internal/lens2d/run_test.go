package lens2d

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestSimulate(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		R1: 10, R2: 10, T: 5, OD: 5, D2: 10, D: 50, H: 5, M: 11, N: 200,
		PNGOut:     filepath.Join(dir, "sensor.png"),
		PlotOut:    filepath.Join(dir, "plot.png"),
		DiagramOut: filepath.Join(dir, "diagram.png"),
		RawOut:     filepath.Join(dir, "grid.raw"),
		Sweep:      &SweepCfg{From: 9, To: 11, Frames: 2, GIFOut: filepath.Join(dir, "sweep.gif")},
	}
	res, err := Simulate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Fatalf("run id %q: %v", res.RunID, err)
	}
	if res.Stats.Rays != 200 || res.Stats.Hits+res.Stats.Misses+res.Stats.Failed != 200 {
		t.Fatalf("stats %+v", res.Stats)
	}
	if len(res.Outputs) != 5 {
		t.Fatalf("outputs %v", res.Outputs)
	}
	for _, o := range res.Outputs {
		if st, err := os.Stat(o); err != nil || st.Size() == 0 {
			t.Fatalf("output %s missing (%v)", o, err)
		}
	}

	grid, err := LoadRawGrid(cfg.RawOut)
	if err != nil {
		t.Fatal(err)
	}
	if grid.At(5, 5) != res.Camera.Sensor.At(5, 5) {
		t.Fatal("raw dump differs from the sensor")
	}
}

func TestSimulateRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.M = 4
	if _, err := Simulate(context.Background(), cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRun(t *testing.T) {
	t.Setenv("S3_BUCKET", "")
	dir := t.TempDir()
	out := filepath.Join(dir, "sensor.png")
	body := fmt.Sprintf(`{"R1": 10, "R2": 12, "T": 4, "OD": 6, "D2": 12, "D": 40, "h": 4, "M": 9, "N": 50, "pngOut": %q}`, out)
	if err := Run(writeConfig(t, body)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
	if err := Run(filepath.Join(dir, "nope.json")); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestRunConfigWithoutPublishing(t *testing.T) {
	if err := RunConfig(context.Background(), testConfig(), S3Cfg{}); err != nil {
		t.Fatal(err)
	}
}

func TestSimulateKeepsPackageWorkers(t *testing.T) {
	withWorkers(t, 0)
	cfg := testConfig()
	cfg.Workers = 3
	res, err := Simulate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if Workers != 0 {
		t.Fatalf("package Workers changed to %d", Workers)
	}
	if res.Camera.Workers != 3 {
		t.Fatalf("camera workers %d", res.Camera.Workers)
	}
}
