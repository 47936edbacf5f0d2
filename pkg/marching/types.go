// Package marching turns a cave grid into a floor mesh with marching squares
// and extrudes vertical walls along the floor outline.
package marching

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/midgard-cavegen/pkg/math"
)

// ErrInvalidOptions is returned for unusable mesh options.
var ErrInvalidOptions = errors.New("invalid mesh options")

// Options controls mesh generation.
type Options struct {
	CellSize         float32 // World-unit edge length of one grid cell
	BaseElevation    float32 // Y of the floor plane
	WallHeight       float32 // Extrusion height of silhouette edges
	DoubleSidedWalls bool    // Also emit back faces for every wall panel
}

// DefaultOptions returns the default mesh settings.
func DefaultOptions() Options {
	return Options{
		CellSize:      1,
		BaseElevation: 0.2,
		WallHeight:    3,
	}
}

// Validate checks the options are usable.
func (o Options) Validate() error {
	if !(o.CellSize > 0) {
		return fmt.Errorf("%w: cell size %v must be positive", ErrInvalidOptions, o.CellSize)
	}
	if stdmath.IsNaN(float64(o.BaseElevation)) || stdmath.IsInf(float64(o.BaseElevation), 0) {
		return fmt.Errorf("%w: base elevation %v must be finite", ErrInvalidOptions, o.BaseElevation)
	}
	if !(o.WallHeight >= 0) {
		return fmt.Errorf("%w: wall height %v must be non-negative", ErrInvalidOptions, o.WallHeight)
	}
	return nil
}

// Mesh is an indexed triangle mesh. Triangles holds three vertex indices per
// face. Normals is empty until RecomputeNormals runs and then has one entry
// per vertex.
type Mesh struct {
	Vertices  []math.Vec3
	Triangles []uint32
	Normals   []math.Vec3
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Face returns the three vertex positions of face i.
func (m *Mesh) Face(i int) (a, b, c math.Vec3) {
	return m.Vertices[m.Triangles[3*i]], m.Vertices[m.Triangles[3*i+1]], m.Vertices[m.Triangles[3*i+2]]
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Bounds returns the bounding box of all vertices. An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Min.Z = min(b.Min.Z, v.Z)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
		b.Max.Z = max(b.Max.Z, v.Z)
	}
	return b
}

// ControlNode is a sampled grid point used as a square corner.
// Active nodes are Solid cells.
type ControlNode struct {
	Position math.Vec3
	Active   bool
}

// Square is one marching-squares unit: four corner nodes, the midpoints of
// its four edges and the 4-bit corner configuration.
type Square struct {
	TopLeft, TopRight, BottomRight, BottomLeft ControlNode

	CentreTop, CentreRight, CentreBottom, CentreLeft math.Vec3

	Configuration uint8
}

// Corner bits of Square.Configuration.
const (
	BitTopLeft     uint8 = 8
	BitTopRight    uint8 = 4
	BitBottomRight uint8 = 2
	BitBottomLeft  uint8 = 1
)

// NewSquare builds a square from its corners. "Top" is the +Z side.
func NewSquare(tl, tr, br, bl ControlNode) Square {
	s := Square{
		TopLeft:     tl,
		TopRight:    tr,
		BottomRight: br,
		BottomLeft:  bl,

		CentreTop:    tl.Position.Midpoint(tr.Position),
		CentreRight:  tr.Position.Midpoint(br.Position),
		CentreBottom: bl.Position.Midpoint(br.Position),
		CentreLeft:   tl.Position.Midpoint(bl.Position),
	}

	if tl.Active {
		s.Configuration |= BitTopLeft
	}
	if tr.Active {
		s.Configuration |= BitTopRight
	}
	if br.Active {
		s.Configuration |= BitBottomRight
	}
	if bl.Active {
		s.Configuration |= BitBottomLeft
	}
	return s
}
