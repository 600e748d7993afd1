package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/joho/godotenv"

	"github.com/lukaszgryglicki/lens2d/internal/lens2d"
)

const defaultConfig = "scenes/config.json"

var lensFlags = map[string]bool{
	"R1": true, "R2": true, "T": true, "OD": true, "D2": true,
	"D": true, "h": true, "M": true, "N": true,
}

// lensFlagsSet reports whether any lens scalar was given on the command line.
func lensFlagsSet() bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if lensFlags[f.Name] {
			set = true
		}
	})
	return set
}

// configPath picks the JSON config to load: -config, then the first
// argument, then the bundled scene unless the lens was given as flags.
// An empty result means run from the flags.
func configPath(flagPath string, args []string, lensSet bool) string {
	switch {
	case flagPath != "":
		return flagPath
	case len(args) > 0:
		return args[0]
	case lensSet:
		return ""
	}
	return defaultConfig
}

func main() {
	_ = godotenv.Load() // optional .env next to the binary's working dir

	lens2d.Debug = os.Getenv("DEBUG") != ""
	lens2d.UseLocks = os.Getenv("SKIP_LOCKS") == ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var cfg lens2d.Config
	cfgPath := flag.String("config", "", "JSON config file (overrides the lens flags)")
	flag.Float64Var(&cfg.R1, "R1", 0, "Radius of lens on subject side in mm.")
	flag.Float64Var(&cfg.R2, "R2", 0, "Radius of lens on sensor side in mm.")
	flag.Float64Var(&cfg.T, "T", 0, "Thickness of the lens at the center in mm.")
	flag.Float64Var(&cfg.OD, "OD", 0, "Aperture size of the lens in mm.")
	flag.Float64Var(&cfg.D2, "D2", 0, "Distance from back of lens to sensor in mm.")
	flag.Float64Var(&cfg.D, "D", 0, "Distance from front of lens to object in mm.")
	flag.Float64Var(&cfg.H, "h", 0, "Height of sensor in mm.")
	flag.IntVar(&cfg.M, "M", 0, "Number of pixels in a row on sensor (odd).")
	flag.IntVar(&cfg.N, "N", 0, "Number of rays to shoot from point source.")
	flag.IntVar(&cfg.Workers, "workers", 0, "Sampling goroutines, 0 for one per CPU.")
	flag.StringVar(&cfg.PNGOut, "png", "sensor.png", "16-bit grayscale sensor image, empty to skip.")
	flag.StringVar(&cfg.PlotOut, "plot", "", "Annotated heat map plot (png/svg/pdf), empty to skip.")
	flag.StringVar(&cfg.DiagramOut, "diagram", "", "Ray diagram PNG, empty to skip.")
	flag.StringVar(&cfg.RawOut, "raw", "", "Raw float64 grid dump, empty to skip.")
	flag.Parse()

	var err error
	if path := configPath(*cfgPath, flag.Args(), lensFlagsSet()); path != "" {
		err = lens2d.Run(path)
	} else {
		err = lens2d.RunConfig(context.Background(), &cfg, lens2d.S3CfgFromEnv())
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
