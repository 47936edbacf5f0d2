package cave

import (
	"github.com/Faultbox/midgard-cavegen/pkg/math"
)

// MarkerOptions controls point-of-interest scattering.
type MarkerOptions struct {
	// Chance is the per-candidate probability of placing a marker.
	Chance float64
	// MaxSolidNeighbours excludes open cells with more orthogonal walls
	// than this, which keeps markers out of dead-end pockets.
	MaxSolidNeighbours int
}

// DefaultMarkerOptions returns the default scatter settings.
func DefaultMarkerOptions() MarkerOptions {
	return MarkerOptions{
		Chance:             0.02,
		MaxSolidNeighbours: 3,
	}
}

// ScatterMarkers picks interior open cells for point-of-interest markers.
// Candidates are visited x-major and one uniform draw is consumed per
// candidate, so results are reproducible for a given source.
func ScatterMarkers(g *Grid, rng RandomSource, opts MarkerOptions) []Point {
	var markers []Point
	for x := 1; x < g.Width-1; x++ {
		for y := 1; y < g.Height-1; y++ {
			if g.At(x, y) != Open {
				continue
			}
			if g.OrthogonalSolidNeighbours(x, y) > opts.MaxSolidNeighbours {
				continue
			}
			if rng.Float64() < opts.Chance {
				markers = append(markers, Point{x, y})
			}
		}
	}
	return markers
}

// MarkerPosition converts a cell coordinate to a world position on a mesh
// centred at the origin, clamped half a cell inside the map edge.
func MarkerPosition(p Point, width, height int, cellSize, elevation float32) math.Vec3 {
	halfW := float32(width) * 0.5 * cellSize
	halfH := float32(height) * 0.5 * cellSize

	x := (float32(p.X) - float32(width)/2) * cellSize
	z := (float32(p.Y) - float32(height)/2) * cellSize

	return math.Vec3{
		X: clamp(x, -halfW+0.5*cellSize, halfW-0.5*cellSize),
		Y: elevation,
		Z: clamp(z, -halfH+0.5*cellSize, halfH-0.5*cellSize),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
