package cave

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridFromRows builds a grid from text rows where '#' is Solid and '.' is Open.
// Row 0 is y=0.
func gridFromRows(rows ...string) *Grid {
	g := NewGrid(len(rows[0]), len(rows), Open)
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				g.Set(x, y, Solid)
			}
		}
	}
	return g
}

func assertBorderSolid(t *testing.T, g *Grid) {
	t.Helper()
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.IsBorder(x, y) {
				assert.Equalf(t, Solid, g.At(x, y), "border cell (%d,%d)", x, y)
			}
		}
	}
}

func TestSynthesize_BorderAlwaysSolid(t *testing.T) {
	for _, seed := range []int64{1, 7, 1234} {
		g, err := Synthesize(20, 15, 0.52, NewRandomSource(seed))
		require.NoError(t, err)
		assert.Equal(t, 20, g.Width)
		assert.Equal(t, 15, g.Height)
		assert.Len(t, g.Cells, 20*15)
		assertBorderSolid(t, g)
	}
}

func TestSynthesize_FullFloor(t *testing.T) {
	g, err := Synthesize(5, 5, 1.0, NewRandomSource(42))
	require.NoError(t, err)

	assertBorderSolid(t, g)
	for x := 1; x < 4; x++ {
		for y := 1; y < 4; y++ {
			assert.Equalf(t, Open, g.At(x, y), "interior cell (%d,%d)", x, y)
		}
	}

	open, solid := g.CountByState()
	assert.Equal(t, 9, open)
	assert.Equal(t, 16, solid)
}

func TestSynthesize_NoFloor(t *testing.T) {
	g, err := Synthesize(8, 8, 0, NewRandomSource(1))
	require.NoError(t, err)

	open, _ := g.CountByState()
	assert.Zero(t, open)
}

func TestSynthesize_InvalidConfig(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fill          float64
		rng           RandomSource
	}{
		{"zero width", 0, 10, 0.5, NewRandomSource(1)},
		{"negative height", 10, -3, 0.5, NewRandomSource(1)},
		{"fill below zero", 10, 10, -0.1, NewRandomSource(1)},
		{"fill above one", 10, 10, 1.5, NewRandomSource(1)},
		{"fill NaN", 10, 10, math.NaN(), NewRandomSource(1)},
		{"nil source", 10, 10, 0.5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Synthesize(tt.width, tt.height, tt.fill, tt.rng)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, g)
		})
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	a, err := Synthesize(32, 24, 0.52, NewRandomSource(99))
	require.NoError(t, err)
	b, err := Synthesize(32, 24, 0.52, NewRandomSource(99))
	require.NoError(t, err)

	assert.Equal(t, a.Cells, b.Cells)
}

func TestSmooth_PreservesBorder(t *testing.T) {
	for _, seed := range []int64{3, 11, 2024} {
		raw, err := Synthesize(30, 20, 0.6, NewRandomSource(seed))
		require.NoError(t, err)

		for i := 1; i <= 8; i++ {
			assertBorderSolid(t, Smooth(raw, i))
		}
	}
}

func TestSmooth_Rules(t *testing.T) {
	g := gridFromRows(
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)

	got := Smooth(g, 1)

	want := gridFromRows(
		"#####",
		"##.##",
		"#...#",
		"##.##",
		"#####",
	)
	assert.Equal(t, want.Cells, got.Cells)
}

func TestSmooth_IsolatedWallErodes(t *testing.T) {
	g := gridFromRows(
		"#######",
		"#.....#",
		"#.....#",
		"#..#..#",
		"#.....#",
		"#.....#",
		"#######",
	)

	got := Smooth(g, 1)
	assert.Equal(t, Open, got.At(3, 3))
}

func TestSmooth_DoesNotMutateInput(t *testing.T) {
	raw, err := Synthesize(16, 16, 0.5, NewRandomSource(5))
	require.NoError(t, err)
	before := raw.Clone()

	_ = Smooth(raw, DefaultSmoothIterations)
	assert.Equal(t, before.Cells, raw.Cells)

	same := Smooth(raw, 0)
	assert.Equal(t, raw.Cells, same.Cells)
}

func TestGrid_SolidNeighbours(t *testing.T) {
	g := gridFromRows(
		"...",
		".#.",
		"...",
	)

	assert.Equal(t, 5, g.SolidNeighbours(0, 0)) // 5 out of bounds
	assert.Equal(t, 4, g.SolidNeighbours(1, 0)) // 3 out of bounds + centre
	assert.Equal(t, 0, g.SolidNeighbours(1, 1))
	assert.Equal(t, 2, g.OrthogonalSolidNeighbours(1, 0)) // centre + out of bounds
	assert.Equal(t, 0, g.OrthogonalSolidNeighbours(1, 1))
}
