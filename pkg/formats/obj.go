package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/midgard-cavegen/pkg/marching"
)

// WriteOBJ writes m as a Wavefront OBJ document. Normals are emitted when the
// mesh has one per vertex; faces then reference them as "v//vn".
func WriteOBJ(w io.Writer, m *marching.Mesh, name string) error {
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("mesh has %d indices, not a multiple of 3", len(m.Triangles))
	}
	withNormals := len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", len(m.Vertices), m.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	if withNormals {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
		}
	}

	for i := 0; i < len(m.Triangles); i += 3 {
		// OBJ indices are 1-based.
		a, b, c := m.Triangles[i]+1, m.Triangles[i+1]+1, m.Triangles[i+2]+1
		if withNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}

	return bw.Flush()
}

// WriteOBJFile writes m to path.
func WriteOBJFile(path string, m *marching.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(f, m, name); err != nil {
		f.Close()
		return fmt.Errorf("writing OBJ file: %w", err)
	}
	return f.Close()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
