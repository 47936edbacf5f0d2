package cave

import "fmt"

// Validation defaults.
const (
	DefaultMinRegionFraction = 0.45
	DefaultMaxRepairAttempts = 10
)

// Region is a set of 4-connected open cells discovered by a flood fill.
type Region struct {
	Seed  Point
	Cells []Point

	width   int
	visited []bool
}

// Size returns the number of cells in the region.
func (r Region) Size() int {
	return len(r.Cells)
}

// Contains reports whether (x, y) belongs to the region.
func (r Region) Contains(x, y int) bool {
	if r.visited == nil || x < 0 || y < 0 || x >= r.width {
		return false
	}
	i := y*r.width + x
	return i < len(r.visited) && r.visited[i]
}

// FloodFill collects the open region containing start with a breadth-first,
// 4-connected traversal. A solid or out-of-bounds start yields an empty region.
func FloodFill(g *Grid, start Point) Region {
	region := Region{
		Seed:    start,
		width:   g.Width,
		visited: make([]bool, len(g.Cells)),
	}
	if !g.IsOpen(start.X, start.Y) {
		return region
	}

	queue := []Point{start}
	region.visited[start.Y*g.Width+start.X] = true

	for qi := 0; qi < len(queue); qi++ {
		current := queue[qi]
		region.Cells = append(region.Cells, current)

		for _, d := range orthogonal {
			nx, ny := current.X+d.X, current.Y+d.Y
			if !g.IsOpen(nx, ny) {
				continue
			}
			ni := ny*g.Width + nx
			if !region.visited[ni] {
				region.visited[ni] = true
				queue = append(queue, Point{nx, ny})
			}
		}
	}

	return region
}

// ValidateOptions controls the connectivity check.
type ValidateOptions struct {
	// MinRegionFraction is the share of all cells the seeded region must
	// strictly exceed to be accepted.
	MinRegionFraction float64
	// MaxAttempts is the number of random seeds tried before rejecting.
	MaxAttempts int
}

// DefaultValidateOptions returns the default connectivity settings.
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{
		MinRegionFraction: DefaultMinRegionFraction,
		MaxAttempts:       DefaultMaxRepairAttempts,
	}
}

// Validate checks the options are usable.
func (o ValidateOptions) Validate() error {
	if !(o.MinRegionFraction >= 0 && o.MinRegionFraction <= 1) {
		return fmt.Errorf("%w: min region fraction %v outside [0,1]", ErrInvalidConfig, o.MinRegionFraction)
	}
	if o.MaxAttempts < 1 {
		return fmt.Errorf("%w: max repair attempts %d", ErrInvalidConfig, o.MaxAttempts)
	}
	return nil
}

// ValidateAndRepair looks for a dominant open region by flood filling from
// random open cells. On success it returns a copy of g in which every open
// cell outside that region has been filled in as Solid, along with the region.
// It returns ErrRejected when the grid has no open cells or no attempt reaches
// the size threshold. g itself is never modified.
func ValidateAndRepair(g *Grid, rng RandomSource, opts ValidateOptions) (*Grid, Region, error) {
	if err := opts.Validate(); err != nil {
		return nil, Region{}, err
	}
	if rng == nil {
		return nil, Region{}, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	open := g.OpenCells()
	if len(open) == 0 {
		return nil, Region{}, fmt.Errorf("%w: no open cells", ErrRejected)
	}

	threshold := float64(g.Width*g.Height) * opts.MinRegionFraction
	best := 0

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		start := open[rng.IntN(len(open))]
		region := FloodFill(g, start)
		if float64(region.Size()) > threshold {
			return prune(g, region), region, nil
		}
		best = max(best, region.Size())
	}

	return nil, Region{}, fmt.Errorf("%w: largest region %d of %d cells after %d attempts (need > %.0f)",
		ErrRejected, best, g.Width*g.Height, opts.MaxAttempts, threshold)
}

// prune returns a copy of g with every open cell outside region made Solid.
func prune(g *Grid, region Region) *Grid {
	out := g.Clone()
	for i, c := range out.Cells {
		if c == Open && !region.visited[i] {
			out.Cells[i] = Solid
		}
	}
	return out
}
