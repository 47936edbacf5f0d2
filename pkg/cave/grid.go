// Package cave synthesizes cave occupancy grids and validates their connectivity.
//
// A grid starts as seeded noise, is refined by a cellular automaton and is then
// checked for a single dominant open region. Grids that fail the check are
// rejected with ErrRejected and should be regenerated with fresh randomness.
package cave

import (
	"errors"
	"fmt"
)

// Grid errors.
var (
	ErrInvalidConfig = errors.New("invalid cave configuration")
	ErrRejected      = errors.New("cave grid rejected")
)

// Cell is the occupancy state of a single grid cell.
type Cell uint8

// Cell states.
const (
	Open  Cell = 0 // Traversable floor
	Solid Cell = 1 // Impassable wall
)

// String returns a human-readable cell state.
func (c Cell) String() string {
	switch c {
	case Open:
		return "Open"
	case Solid:
		return "Solid"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Grid is a fixed-size binary occupancy grid stored row-major.
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid creates a grid with every cell set to fill.
func NewGrid(width, height int, fill Cell) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	if fill != Open {
		for i := range g.Cells {
			g.Cells[i] = fill
		}
	}
	return g
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the cell at (x, y). Out-of-bounds coordinates read as Solid.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Solid
	}
	return g.Cells[y*g.Width+x]
}

// Set stores c at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.Cells[y*g.Width+x] = c
}

// IsOpen reports whether (x, y) is an in-bounds open cell.
func (g *Grid) IsOpen(x, y int) bool {
	return g.InBounds(x, y) && g.Cells[y*g.Width+x] == Open
}

// IsBorder reports whether (x, y) lies on the outer ring of the grid.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// SolidNeighbours counts Solid cells in the Moore neighbourhood of (x, y).
// Neighbours outside the grid count as Solid.
func (g *Grid) SolidNeighbours(x, y int) int {
	count := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			if g.At(nx, ny) == Solid {
				count++
			}
		}
	}
	return count
}

// OrthogonalSolidNeighbours counts Solid cells among the four orthogonal
// neighbours of (x, y).
func (g *Grid) OrthogonalSolidNeighbours(x, y int) int {
	count := 0
	for _, d := range orthogonal {
		if g.At(x+d.X, y+d.Y) == Solid {
			count++
		}
	}
	return count
}

// OpenCells returns every open cell coordinate, x-major.
func (g *Grid) OpenCells() []Point {
	var cells []Point
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Cells[y*g.Width+x] == Open {
				cells = append(cells, Point{x, y})
			}
		}
	}
	return cells
}

// CountByState returns the number of open and solid cells.
func (g *Grid) CountByState() (open, solid int) {
	for _, c := range g.Cells {
		if c == Open {
			open++
		} else {
			solid++
		}
	}
	return open, solid
}

// orthogonal lists the 4-connected neighbour offsets.
var orthogonal = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
