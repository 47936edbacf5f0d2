package config

import (
	"flag"
)

// Flags holds command-line overrides. Only flags given on the command line
// are applied, so explicit zero or invalid values reach Validate.
type Flags struct {
	Config      string
	Debug       bool
	Seed        int64
	Width       int
	Height      int
	Fill        float64
	Iterations  int
	CellSize    float64
	WallHeight  float64
	DoubleSided bool
	NoMarkers   bool
	OutDir      string

	set map[string]bool
}

// NewFlagSet registers the generator flags on a new FlagSet named name.
func NewFlagSet(name string, f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Int64Var(&f.Seed, "seed", 0, "Random seed")
	fs.IntVar(&f.Width, "width", 0, "Grid width in cells")
	fs.IntVar(&f.Height, "height", 0, "Grid height in cells")
	fs.Float64Var(&f.Fill, "fill", 0, "Probability of an interior cell starting open")
	fs.IntVar(&f.Iterations, "iterations", 0, "Smoothing iterations")
	fs.Float64Var(&f.CellSize, "cell-size", 0, "World size of one grid cell")
	fs.Float64Var(&f.WallHeight, "wall-height", 0, "Wall extrusion height")
	fs.BoolVar(&f.DoubleSided, "double-sided", false, "Emit back faces for walls")
	fs.BoolVar(&f.NoMarkers, "no-markers", false, "Disable marker scattering")
	fs.StringVar(&f.OutDir, "out", "", "Output directory")
	return fs
}

// parseFlags parses args and records which flags were given.
func parseFlags(name string, args []string) (*Flags, []string, error) {
	f := &Flags{set: make(map[string]bool)}
	fs := NewFlagSet(name, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	return f, fs.Args(), nil
}

// apply copies every flag given on the command line into cfg.
func (f *Flags) apply(cfg *Config) {
	if f.set["debug"] && f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.set["seed"] {
		cfg.Cave.Seed = f.Seed
	}
	if f.set["width"] {
		cfg.Cave.Width = f.Width
	}
	if f.set["height"] {
		cfg.Cave.Height = f.Height
	}
	if f.set["fill"] {
		cfg.Cave.FillProbability = f.Fill
	}
	if f.set["iterations"] {
		cfg.Cave.SmoothIterations = f.Iterations
	}
	if f.set["cell-size"] {
		cfg.Mesh.CellSize = float32(f.CellSize)
	}
	if f.set["wall-height"] {
		cfg.Mesh.WallHeight = float32(f.WallHeight)
	}
	if f.set["double-sided"] {
		cfg.Mesh.DoubleSidedWalls = f.DoubleSided
	}
	if f.set["no-markers"] && f.NoMarkers {
		cfg.Markers.Enabled = false
	}
	if f.set["out"] {
		cfg.Output.Dir = f.OutDir
	}
}
