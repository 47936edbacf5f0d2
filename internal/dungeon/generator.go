// Package dungeon drives a full cave generation run: grid synthesis with
// retries, meshing and marker placement.
package dungeon

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-cavegen/internal/config"
	"github.com/Faultbox/midgard-cavegen/internal/logger"
	"github.com/Faultbox/midgard-cavegen/pkg/cave"
	"github.com/Faultbox/midgard-cavegen/pkg/marching"
	"github.com/Faultbox/midgard-cavegen/pkg/math"
)

// Marker is a point of interest placed on an open cell.
type Marker struct {
	Cell     cave.Point
	Position math.Vec3
	// Distance is the number of steps from the spawn cell.
	Distance int
}

// Dungeon is the output of one generation run.
type Dungeon struct {
	Seed     int64
	Grid     *cave.Grid
	Spawn    cave.Point
	Mesh     *marching.Mesh
	Markers  []Marker
	Attempts int
}

// Generator turns a configuration into dungeons.
type Generator struct {
	cfg *config.Config
	log *zap.Logger
}

// NewGenerator creates a generator. The configuration is validated up front.
func NewGenerator(cfg *config.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Generator{
		cfg: cfg,
		log: logger.Named("dungeon"),
	}, nil
}

// Generate runs the whole pipeline with the configured seed.
func (g *Generator) Generate() (*Dungeon, error) {
	return g.GenerateSeed(g.cfg.Cave.Seed)
}

// GenerateSeed runs the whole pipeline with an explicit seed. The same seed
// and configuration always produce the same dungeon.
func (g *Generator) GenerateSeed(seed int64) (*Dungeon, error) {
	start := time.Now()
	rng := cave.NewRandomSource(seed)
	params := g.cfg.CaveParams()

	g.log.Debug("generating cave",
		zap.Int64("seed", seed),
		zap.Int("width", params.Width),
		zap.Int("height", params.Height),
		zap.Float64("fill", params.FillProbability))

	res, err := cave.Generate(params, rng, func(attempt int, err error) {
		g.log.Debug("grid rejected", zap.Int("attempt", attempt), zap.Error(err))
	})
	if err != nil {
		g.log.Warn("cave generation failed", zap.Int64("seed", seed), zap.Error(err))
		return nil, fmt.Errorf("generating grid: %w", err)
	}

	open, solid := res.Grid.CountByState()
	g.log.Info("grid accepted",
		zap.Int("attempts", res.Attempts),
		zap.Int("open", open),
		zap.Int("solid", solid),
		zap.Int("region", res.Region.Size()))

	mesh, err := marching.Build(res.Grid, g.cfg.MeshOptions())
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}

	d := &Dungeon{
		Seed:     seed,
		Grid:     res.Grid,
		Spawn:    res.Region.Seed,
		Mesh:     mesh,
		Attempts: res.Attempts,
	}

	if g.cfg.Markers.Enabled {
		d.Markers = g.placeMarkers(d, rng)
	}

	g.log.Info("dungeon generated",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("markers", len(d.Markers)),
		zap.Duration("elapsed", time.Since(start)))

	return d, nil
}

// placeMarkers scatters markers and keeps those reachable from the spawn.
func (g *Generator) placeMarkers(d *Dungeon, rng cave.RandomSource) []Marker {
	cells := cave.ScatterMarkers(d.Grid, rng, g.cfg.MarkerOptions())

	markers := make([]Marker, 0, len(cells))
	for _, c := range cells {
		path := cave.FindPath(d.Grid, d.Spawn, c)
		if path == nil {
			g.log.Debug("dropping unreachable marker", zap.Int("x", c.X), zap.Int("y", c.Y))
			continue
		}
		markers = append(markers, Marker{
			Cell: c,
			Position: cave.MarkerPosition(c, d.Grid.Width, d.Grid.Height,
				g.cfg.Mesh.CellSize, g.cfg.Markers.Elevation),
			Distance: len(path) - 1,
		})
	}
	return markers
}
