package marching

import (
	"fmt"

	"github.com/Faultbox/midgard-cavegen/pkg/cave"
	"github.com/Faultbox/midgard-cavegen/pkg/math"
)

// meshBuilder accumulates a deduplicated floor mesh. Its lookup table lives
// for a single triangulation so separate runs never share indices.
type meshBuilder struct {
	vertices  []math.Vec3
	triangles []uint32
	lookup    map[math.Vec3]uint32
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{lookup: make(map[math.Vec3]uint32)}
}

// vertexIndex returns the index of v, appending it on first sight.
func (b *meshBuilder) vertexIndex(v math.Vec3) uint32 {
	if idx, ok := b.lookup[v]; ok {
		return idx
	}
	idx := uint32(len(b.vertices))
	b.vertices = append(b.vertices, v)
	b.lookup[v] = idx
	return idx
}

// addTriangle emits (a, b, c) so that the face normal points up.
func (b *meshBuilder) addTriangle(t [3]math.Vec3) {
	i0 := b.vertexIndex(t[0])
	i1 := b.vertexIndex(t[1])
	i2 := b.vertexIndex(t[2])

	cross := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	if cross.Y < 0 {
		b.triangles = append(b.triangles, i0, i2, i1)
	} else {
		b.triangles = append(b.triangles, i0, i1, i2)
	}
}

func (b *meshBuilder) mesh() *Mesh {
	return &Mesh{Vertices: b.vertices, Triangles: b.triangles}
}

// Triangulate builds the floor mesh of g. One control node is placed per cell,
// centred on the origin, and every 2x2 block of nodes is triangulated with the
// marching-squares table. Solid cells are the active corners. The returned mesh
// has no normals.
func Triangulate(g *cave.Grid, opts Options) (*Mesh, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if g == nil || g.Width < 1 || g.Height < 1 || len(g.Cells) != g.Width*g.Height {
		return nil, fmt.Errorf("%w: malformed grid", ErrInvalidOptions)
	}

	nodes := controlNodes(g, opts)
	b := newMeshBuilder()

	for x := 0; x < g.Width-1; x++ {
		for y := 0; y < g.Height-1; y++ {
			sq := NewSquare(
				nodes[x][y+1],
				nodes[x+1][y+1],
				nodes[x+1][y],
				nodes[x][y],
			)
			for _, t := range squareTriangles(sq) {
				b.addTriangle(t)
			}
		}
	}

	return b.mesh(), nil
}

// controlNodes samples one node per grid cell, indexed [x][y].
func controlNodes(g *cave.Grid, opts Options) [][]ControlNode {
	cs := opts.CellSize
	xOffset := -float32(g.Width) * 0.5 * cs
	zOffset := -float32(g.Height) * 0.5 * cs

	nodes := make([][]ControlNode, g.Width)
	for x := range nodes {
		nodes[x] = make([]ControlNode, g.Height)
		for y := range nodes[x] {
			nodes[x][y] = ControlNode{
				Position: math.Vec3{
					X: float32(x)*cs + xOffset,
					Y: opts.BaseElevation,
					Z: float32(y)*cs + zOffset,
				},
				Active: g.At(x, y) == cave.Solid,
			}
		}
	}
	return nodes
}

// TriangulateSquare triangulates a single square into a fresh mesh.
func TriangulateSquare(sq Square) *Mesh {
	b := newMeshBuilder()
	for _, t := range squareTriangles(sq) {
		b.addTriangle(t)
	}
	return b.mesh()
}

// squareTriangles returns the triangles of the fixed 16-case table. The
// saddle cases 5 and 10 are two disjoint corner triangles.
func squareTriangles(s Square) [][3]math.Vec3 {
	tl, tr := s.TopLeft.Position, s.TopRight.Position
	br, bl := s.BottomRight.Position, s.BottomLeft.Position
	ct, cr, cb, cl := s.CentreTop, s.CentreRight, s.CentreBottom, s.CentreLeft

	switch s.Configuration {
	case 0:
		return nil

	// One corner
	case 1:
		return [][3]math.Vec3{{cl, bl, cb}}
	case 2:
		return [][3]math.Vec3{{cb, br, cr}}
	case 4:
		return [][3]math.Vec3{{ct, tr, cr}}
	case 8:
		return [][3]math.Vec3{{tl, ct, cl}}

	// Two adjacent corners
	case 3:
		return [][3]math.Vec3{{cl, cr, br}, {cl, br, bl}}
	case 6:
		return [][3]math.Vec3{{ct, tr, br}, {ct, br, cb}}
	case 9:
		return [][3]math.Vec3{{tl, ct, cb}, {tl, cb, bl}}
	case 12:
		return [][3]math.Vec3{{tl, tr, cr}, {tl, cr, cl}}

	// Diagonal corners
	case 5:
		return [][3]math.Vec3{{ct, tr, cr}, {cl, bl, cb}}
	case 10:
		return [][3]math.Vec3{{tl, ct, cl}, {cb, br, cr}}

	// Three corners
	case 7:
		return [][3]math.Vec3{{cl, ct, tr}, {cl, tr, br}, {cl, br, bl}}
	case 11:
		return [][3]math.Vec3{{ct, cr, br}, {ct, br, bl}, {ct, bl, tl}}
	case 13:
		return [][3]math.Vec3{{cb, cr, tr}, {cb, tr, tl}, {cb, tl, bl}}
	case 14:
		return [][3]math.Vec3{{cl, cb, br}, {cl, br, tr}, {cl, tr, tl}}

	case 15:
		return [][3]math.Vec3{{tl, tr, br}, {tl, br, bl}}
	}
	return nil
}
