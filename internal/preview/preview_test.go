package preview

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/midgard-cavegen/pkg/cave"
)

func testGrid() *cave.Grid {
	g := cave.NewGrid(4, 3, cave.Solid)
	g.Set(1, 1, cave.Open)
	g.Set(2, 1, cave.Open)
	return g
}

func TestRender(t *testing.T) {
	g := testGrid()
	img := Render(g, Options{Scale: 1})

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("expected 4x3 image, got %v", img.Bounds())
	}
	if img.RGBAAt(1, 1) != OpenColor {
		t.Errorf("expected open colour at (1,1), got %v", img.RGBAAt(1, 1))
	}
	if img.RGBAAt(0, 0) != SolidColor {
		t.Errorf("expected solid colour at (0,0), got %v", img.RGBAAt(0, 0))
	}
}

func TestRender_ScaledWithMarkers(t *testing.T) {
	g := testGrid()
	spawn := cave.Point{X: 1, Y: 1}
	img := Render(g, Options{Scale: 5, Markers: []cave.Point{{X: 2, Y: 1}}, Spawn: &spawn})

	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 15 {
		t.Fatalf("expected 20x15 image, got %v", img.Bounds())
	}
	// Cell (2,1) covers pixels x 10..14, y 5..9 after the vertical flip.
	if img.RGBAAt(12, 7) != MarkerColor {
		t.Errorf("expected marker colour, got %v", img.RGBAAt(12, 7))
	}
	if img.RGBAAt(5, 5) != SpawnColor {
		t.Errorf("expected spawn colour, got %v", img.RGBAAt(5, 5))
	}
	if img.RGBAAt(19, 14) != SolidColor {
		t.Errorf("expected solid colour in the corner, got %v", img.RGBAAt(19, 14))
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	g := testGrid()

	pngPath := filepath.Join(dir, "cave.png")
	if err := WriteFile(pngPath, g, Options{Scale: 2}); err != nil {
		t.Fatalf("WriteFile png failed: %v", err)
	}
	data, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatalf("reading png: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("expected 8x6 png, got %v", img.Bounds())
	}

	bmpPath := filepath.Join(dir, "sub", "cave.bmp")
	if err := WriteFile(bmpPath, g, Options{Scale: 3}); err != nil {
		t.Fatalf("WriteFile bmp failed: %v", err)
	}
	f, err := os.Open(bmpPath)
	if err != nil {
		t.Fatalf("opening bmp: %v", err)
	}
	defer f.Close()
	cfg, err := bmp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding bmp: %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 9 {
		t.Errorf("expected 12x9 bmp, got %dx%d", cfg.Width, cfg.Height)
	}

}

func TestWriteFile_UnsupportedFormatLeavesNoFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"cave.gif", "cave.jpg", filepath.Join("sub", "cave"), "cave.PNG.txt"} {
		path := filepath.Join(dir, name)
		err := WriteFile(path, testGrid(), Options{Scale: 2})
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s: expected no file to be created, stat error %v", name, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty output dir, found %d entries", len(entries))
	}
}

func TestWriteFile_UppercaseExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CAVE.PNG")
	if err := WriteFile(path, testGrid(), Options{Scale: 1}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}
