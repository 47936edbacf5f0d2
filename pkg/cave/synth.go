package cave

import "fmt"

// DefaultSmoothIterations is the number of automaton passes used by DefaultParams.
const DefaultSmoothIterations = 6

// Automaton thresholds: a wall survives with 4 solid neighbours, a floor
// closes over with 5.
const (
	wallSurviveThreshold = 4
	floorCloseThreshold  = 5
)

// Synthesize builds a noisy grid. Border cells are always Solid; each interior
// cell is Solid when a uniform draw exceeds fillProbability.
func Synthesize(width, height int, fillProbability float64, rng RandomSource) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, width, height)
	}
	if !(fillProbability >= 0 && fillProbability <= 1) {
		return nil, fmt.Errorf("%w: fill probability %v outside [0,1]", ErrInvalidConfig, fillProbability)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	g := NewGrid(width, height, Open)

	// Draw order is x-major so a given seed always produces the same grid.
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if g.IsBorder(x, y) {
				g.Set(x, y, Solid)
				continue
			}
			if rng.Float64() > fillProbability {
				g.Set(x, y, Solid)
			}
		}
	}

	return g, nil
}

// Smooth runs iterations automaton passes and returns the final grid.
// The input grid is not modified.
func Smooth(g *Grid, iterations int) *Grid {
	current := g.Clone()
	for i := 0; i < iterations; i++ {
		current = smoothPass(current)
	}
	return current
}

// smoothPass reads every cell from src and writes the next generation into a
// fresh grid.
func smoothPass(src *Grid) *Grid {
	dst := NewGrid(src.Width, src.Height, Open)
	for x := 0; x < src.Width; x++ {
		for y := 0; y < src.Height; y++ {
			walls := src.SolidNeighbours(x, y)

			threshold := floorCloseThreshold
			if src.At(x, y) == Solid {
				threshold = wallSurviveThreshold
			}
			if walls >= threshold {
				dst.Set(x, y, Solid)
			}
		}
	}
	return dst
}
