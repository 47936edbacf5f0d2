package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/midgard-cavegen/pkg/cave"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
)

const gatMagic = "GRAT"

// gatHeaderSize is magic + version + width + height.
const gatHeaderSize = 14

// maxGATDimension bounds the width and height accepted by ParseGAT.
const maxGATDimension = 4096

// GATVersion represents the GAT file version.
type GATVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GATVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// DefaultGATVersion is the version written by Encode.
var DefaultGATVersion = GATVersion{Major: 1, Minor: 2}

// GATCellType is the walkability flag stored with each cell.
type GATCellType uint32

// Cell types written for cave grids. Other values are preserved on read and
// treated as blocked.
const (
	GATWalkable GATCellType = 0
	GATBlocked  GATCellType = 1
)

// String returns a human-readable cell type name.
func (t GATCellType) String() string {
	switch t {
	case GATWalkable:
		return "Walkable"
	case GATBlocked:
		return "Blocked"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWalkable reports whether the cell type maps to an open cave cell.
func (t GATCellType) IsWalkable() bool {
	return t == GATWalkable
}

// GATCell represents a single cell in the GAT grid.
type GATCell struct {
	// Heights contains the altitude of each corner:
	// [0] = bottom-left, [1] = bottom-right, [2] = top-left, [3] = top-right
	Heights [4]float32
	Type    GATCellType
}

// GAT represents a Ground Altitude Table.
type GAT struct {
	Version GATVersion
	Width   uint32
	Height  uint32
	Cells   []GATCell
}

// GetCell returns the cell at the given coordinates.
// Returns nil if coordinates are out of bounds.
func (g *GAT) GetCell(x, y int) *GATCell {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return nil
	}
	return &g.Cells[y*int(g.Width)+x]
}

// IsWalkable checks if the cell at (x, y) is walkable.
func (g *GAT) IsWalkable(x, y int) bool {
	cell := g.GetCell(x, y)
	if cell == nil {
		return false
	}
	return cell.Type.IsWalkable()
}

// CountByType returns the count of cells for each type.
func (g *GAT) CountByType() map[GATCellType]int {
	counts := make(map[GATCellType]int)
	for _, cell := range g.Cells {
		counts[cell.Type]++
	}
	return counts
}

// NewGATFromGrid converts a cave grid to a GAT. Open cells become walkable,
// Solid cells blocked. Every corner altitude is set to elevation.
func NewGATFromGrid(grid *cave.Grid, elevation float32) *GAT {
	gat := &GAT{
		Version: DefaultGATVersion,
		Width:   uint32(grid.Width),
		Height:  uint32(grid.Height),
		Cells:   make([]GATCell, len(grid.Cells)),
	}
	for i, c := range grid.Cells {
		cell := GATCell{Type: GATWalkable}
		if c == cave.Solid {
			cell.Type = GATBlocked
		}
		for j := range cell.Heights {
			cell.Heights[j] = elevation
		}
		gat.Cells[i] = cell
	}
	return gat
}

// Grid converts the GAT back to a cave grid. Walkable cell types become Open,
// everything else Solid.
func (g *GAT) Grid() *cave.Grid {
	grid := cave.NewGrid(int(g.Width), int(g.Height), cave.Solid)
	for i, cell := range g.Cells {
		if cell.Type.IsWalkable() {
			grid.Cells[i] = cave.Open
		}
	}
	return grid
}

// ParseGAT parses a GAT file from raw bytes.
func ParseGAT(data []byte) (*GAT, error) {
	return DecodeGAT(bytes.NewReader(data))
}

// ParseGATFile parses a GAT file from disk.
func ParseGATFile(path string) (*GAT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	defer f.Close()
	return DecodeGAT(bufio.NewReader(f))
}

// DecodeGAT reads a GAT from r.
func DecodeGAT(r io.Reader) (*GAT, error) {
	var header [gatHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTruncatedGATData, err)
	}

	if string(header[0:4]) != gatMagic {
		return nil, ErrInvalidGATMagic
	}

	// Stored as [minor, major].
	version := GATVersion{Major: header[5], Minor: header[4]}
	if version.Major < 1 || version.Major > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGATVersion, version)
	}

	width := binary.LittleEndian.Uint32(header[6:10])
	height := binary.LittleEndian.Uint32(header[10:14])
	if width == 0 || height == 0 || width > maxGATDimension || height > maxGATDimension {
		return nil, fmt.Errorf("invalid GAT dimensions: %dx%d", width, height)
	}

	gat := &GAT{
		Version: version,
		Width:   width,
		Height:  height,
		Cells:   make([]GATCell, int(width*height)),
	}
	if err := binary.Read(r, binary.LittleEndian, gat.Cells); err != nil {
		return nil, fmt.Errorf("%w: %d cells: %v", ErrTruncatedGATData, len(gat.Cells), err)
	}

	return gat, nil
}

// Encode writes the GAT in its binary layout.
func (g *GAT) Encode(w io.Writer) error {
	if len(g.Cells) != int(g.Width*g.Height) {
		return fmt.Errorf("GAT has %d cells, want %dx%d", len(g.Cells), g.Width, g.Height)
	}

	buf := new(bytes.Buffer)
	buf.Grow(gatHeaderSize + len(g.Cells)*20)

	buf.WriteString(gatMagic)
	buf.WriteByte(g.Version.Minor)
	buf.WriteByte(g.Version.Major)

	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, g.Width)
	_ = binary.Write(buf, binary.LittleEndian, g.Height)
	_ = binary.Write(buf, binary.LittleEndian, g.Cells)

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteGATFile encodes the GAT to path.
func (g *GAT) WriteGATFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating GAT file: %w", err)
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing GAT file: %w", err)
	}
	return f.Close()
}
