package formats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-cavegen/pkg/marching"
	"github.com/Faultbox/midgard-cavegen/pkg/math"
)

func TestWriteOBJ(t *testing.T) {
	m := &marching.Mesh{
		Vertices: []math.Vec3{
			{X: 0, Y: 0.2, Z: 0},
			{X: 0, Y: 0.2, Z: 1},
			{X: 1, Y: 0.2, Z: 0},
		},
		Triangles: []uint32{0, 1, 2},
	}
	marching.RecomputeNormals(m)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, "cave"); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"o cave\n",
		"v 0 0.2 1\n",
		"vn 0 1 0\n",
		"f 1//1 2//2 3//3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\nv "); got != 3 {
		t.Errorf("expected 3 vertex lines, got %d", got)
	}
}

func TestWriteOBJ_WithoutNormals(t *testing.T) {
	m := &marching.Mesh{
		Vertices:  []math.Vec3{{}, {X: 1}, {Z: 1}},
		Triangles: []uint32{0, 2, 1},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, ""); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	if strings.Contains(buf.String(), "vn ") {
		t.Error("unexpected normals in output")
	}
	if !strings.Contains(buf.String(), "f 1 3 2\n") {
		t.Errorf("missing face line:\n%s", buf.String())
	}
}

func TestWriteOBJ_BadIndexCount(t *testing.T) {
	m := &marching.Mesh{Vertices: []math.Vec3{{}, {}}, Triangles: []uint32{0, 1}}
	if err := WriteOBJ(&bytes.Buffer{}, m, ""); err == nil {
		t.Error("expected error for incomplete triangle")
	}
}
