// Package config handles generator configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-cavegen/internal/preview"
	"github.com/Faultbox/midgard-cavegen/pkg/cave"
	"github.com/Faultbox/midgard-cavegen/pkg/marching"
)

// Config holds all generator settings.
type Config struct {
	Cave    CaveConfig    `yaml:"cave"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Markers MarkerConfig  `yaml:"markers"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// CaveConfig holds grid synthesis and validation settings.
type CaveConfig struct {
	Seed              int64   `yaml:"seed"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	FillProbability   float64 `yaml:"fill_probability"`
	SmoothIterations  int     `yaml:"smooth_iterations"`
	MinRegionFraction float64 `yaml:"min_region_fraction"`
	MaxRepairAttempts int     `yaml:"max_repair_attempts"`
	MaxGenerations    int     `yaml:"max_generations"`
}

// MeshConfig holds triangulation and wall settings.
type MeshConfig struct {
	CellSize         float32 `yaml:"cell_size"`
	BaseElevation    float32 `yaml:"base_elevation"`
	WallHeight       float32 `yaml:"wall_height"`
	DoubleSidedWalls bool    `yaml:"double_sided_walls"`
}

// MarkerConfig holds point-of-interest scatter settings.
type MarkerConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Chance             float64 `yaml:"chance"`
	MaxSolidNeighbours int     `yaml:"max_solid_neighbours"`
	Elevation          float32 `yaml:"elevation"`
}

// OutputConfig holds output file settings. Empty file names skip that output.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	MeshFile     string `yaml:"mesh_file"`
	GridFile     string `yaml:"grid_file"`
	PreviewFile  string `yaml:"preview_file"`
	PreviewScale int    `yaml:"preview_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	params := cave.DefaultParams()
	mesh := marching.DefaultOptions()
	markers := cave.DefaultMarkerOptions()

	return &Config{
		Cave: CaveConfig{
			Seed:              1234,
			Width:             params.Width,
			Height:            params.Height,
			FillProbability:   params.FillProbability,
			SmoothIterations:  params.SmoothIterations,
			MinRegionFraction: params.MinRegionFraction,
			MaxRepairAttempts: params.MaxRepairAttempts,
			MaxGenerations:    params.MaxGenerations,
		},
		Mesh: MeshConfig{
			CellSize:         mesh.CellSize,
			BaseElevation:    mesh.BaseElevation,
			WallHeight:       mesh.WallHeight,
			DoubleSidedWalls: false,
		},
		Markers: MarkerConfig{
			Enabled:            true,
			Chance:             markers.Chance,
			MaxSolidNeighbours: markers.MaxSolidNeighbours,
			Elevation:          0.17,
		},
		Output: OutputConfig{
			Dir:          ".",
			MeshFile:     "cave.obj",
			GridFile:     "cave.gat",
			PreviewFile:  "cave.png",
			PreviewScale: 8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// CaveParams returns the grid generation parameters.
func (c *Config) CaveParams() cave.Params {
	return cave.Params{
		Width:             c.Cave.Width,
		Height:            c.Cave.Height,
		FillProbability:   c.Cave.FillProbability,
		SmoothIterations:  c.Cave.SmoothIterations,
		MinRegionFraction: c.Cave.MinRegionFraction,
		MaxRepairAttempts: c.Cave.MaxRepairAttempts,
		MaxGenerations:    c.Cave.MaxGenerations,
	}
}

// MeshOptions returns the mesh generation options.
func (c *Config) MeshOptions() marching.Options {
	return marching.Options{
		CellSize:         c.Mesh.CellSize,
		BaseElevation:    c.Mesh.BaseElevation,
		WallHeight:       c.Mesh.WallHeight,
		DoubleSidedWalls: c.Mesh.DoubleSidedWalls,
	}
}

// MarkerOptions returns the marker scatter options.
func (c *Config) MarkerOptions() cave.MarkerOptions {
	return cave.MarkerOptions{
		Chance:             c.Markers.Chance,
		MaxSolidNeighbours: c.Markers.MaxSolidNeighbours,
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	err = multierr.Append(err, c.CaveParams().Validate())
	err = multierr.Append(err, c.MeshOptions().Validate())
	if !(c.Markers.Chance >= 0 && c.Markers.Chance <= 1) {
		err = multierr.Append(err, fmt.Errorf("markers: chance %v outside [0,1]", c.Markers.Chance))
	}
	if c.Markers.MaxSolidNeighbours < 0 || c.Markers.MaxSolidNeighbours > 4 {
		err = multierr.Append(err, fmt.Errorf("markers: max solid neighbours %d outside [0,4]", c.Markers.MaxSolidNeighbours))
	}
	if c.Output.PreviewFile != "" && !preview.IsSupported(c.Output.PreviewFile) {
		err = multierr.Append(err, fmt.Errorf("output: preview file %q must end in .png or .bmp", c.Output.PreviewFile))
	}
	if c.Output.PreviewScale < 1 {
		err = multierr.Append(err, fmt.Errorf("output: preview scale %d must be at least 1", c.Output.PreviewScale))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return err
}
