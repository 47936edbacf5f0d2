package marching

import (
	"github.com/Faultbox/midgard-cavegen/pkg/cave"
	"github.com/Faultbox/midgard-cavegen/pkg/math"
)

// Edge is an undirected mesh edge stored as (min, max) vertex indices.
type Edge struct {
	A, B uint32
}

// NewEdge normalizes (a, b) into an Edge.
func NewEdge(a, b uint32) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// EdgeUsage counts how many faces reference each edge. The returned slice
// lists every edge once in first-seen order.
func EdgeUsage(triangles []uint32) ([]Edge, map[Edge]int) {
	counts := make(map[Edge]int)
	var order []Edge

	add := func(a, b uint32) {
		e := NewEdge(a, b)
		if _, seen := counts[e]; !seen {
			order = append(order, e)
		}
		counts[e]++
	}

	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		add(a, b)
		add(b, c)
		add(c, a)
	}
	return order, counts
}

// BoundaryEdges returns the edges referenced by exactly one face, in
// first-seen order.
func BoundaryEdges(triangles []uint32) []Edge {
	order, counts := EdgeUsage(triangles)
	var boundary []Edge
	for _, e := range order {
		if counts[e] == 1 {
			boundary = append(boundary, e)
		}
	}
	return boundary
}

// ExtrudeWalls raises a wall panel of the given height on every boundary edge
// of m. Each panel gets its own two top vertices and the triangles
// (v0, top0, v1) and (v1, top0, top1). When doubleSided is set the reversed
// pair is emitted as well. m is not modified and the result has no normals.
func ExtrudeWalls(m *Mesh, height float32, doubleSided bool) *Mesh {
	boundary := BoundaryEdges(m.Triangles)

	panelIndices := 6
	if doubleSided {
		panelIndices = 12
	}

	out := &Mesh{
		Vertices:  make([]math.Vec3, len(m.Vertices), len(m.Vertices)+2*len(boundary)),
		Triangles: make([]uint32, len(m.Triangles), len(m.Triangles)+panelIndices*len(boundary)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Triangles, m.Triangles)

	for _, e := range boundary {
		i0, i1 := e.A, e.B

		i0Top := uint32(len(out.Vertices))
		i1Top := i0Top + 1
		out.Vertices = append(out.Vertices,
			out.Vertices[i0].Elevate(height),
			out.Vertices[i1].Elevate(height),
		)

		out.Triangles = append(out.Triangles,
			i0, i0Top, i1,
			i1, i0Top, i1Top,
		)
		if doubleSided {
			out.Triangles = append(out.Triangles,
				i0, i1, i0Top,
				i1, i1Top, i0Top,
			)
		}
	}

	return out
}

// RecomputeNormals assigns every face's flat normal to its three vertices.
// Shared vertices keep the normal of the last face that references them.
// Vertices used by no face get a zero normal.
func RecomputeNormals(m *Mesh) {
	m.Normals = make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		i0, i1, i2 := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		n := math.FaceNormal(m.Vertices[i0], m.Vertices[i1], m.Vertices[i2])
		m.Normals[i0] = n
		m.Normals[i1] = n
		m.Normals[i2] = n
	}
}

// Build triangulates g, extrudes its walls and computes normals.
func Build(g *cave.Grid, opts Options) (*Mesh, error) {
	floor, err := Triangulate(g, opts)
	if err != nil {
		return nil, err
	}
	m := ExtrudeWalls(floor, opts.WallHeight, opts.DoubleSidedWalls)
	RecomputeNormals(m)
	return m, nil
}
