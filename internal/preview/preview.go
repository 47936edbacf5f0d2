// Package preview renders cave grids to raster images for quick inspection.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/Faultbox/midgard-cavegen/pkg/cave"
)

// Palette colours.
var (
	SolidColor  = color.RGBA{40, 40, 48, 255}
	OpenColor   = color.RGBA{196, 180, 150, 255}
	MarkerColor = color.RGBA{220, 60, 40, 255}
	SpawnColor  = color.RGBA{60, 160, 220, 255}
)

// Options controls preview rendering.
type Options struct {
	Scale   int          // Output pixels per cell
	Markers []cave.Point // Optional markers drawn on top of open cells
	Spawn   *cave.Point  // Optional spawn cell
}

// Render draws one pixel per cell and scales the result with nearest-neighbour
// sampling so cell edges stay sharp. Row y=0 is drawn at the bottom, matching
// the +Z-up orientation of the mesh.
func Render(g *cave.Grid, opts Options) *image.RGBA {
	cells := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := OpenColor
			if g.At(x, y) == cave.Solid {
				c = SolidColor
			}
			cells.SetRGBA(x, g.Height-1-y, c)
		}
	}
	for _, m := range opts.Markers {
		cells.SetRGBA(m.X, g.Height-1-m.Y, MarkerColor)
	}
	if opts.Spawn != nil {
		cells.SetRGBA(opts.Spawn.X, g.Height-1-opts.Spawn.Y, SpawnColor)
	}

	scale := max(opts.Scale, 1)
	if scale == 1 {
		return cells
	}

	out := image.NewRGBA(image.Rect(0, 0, g.Width*scale, g.Height*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), cells, cells.Bounds(), draw.Src, nil)
	return out
}

// ErrUnsupportedFormat is returned for image formats other than PNG and BMP.
var ErrUnsupportedFormat = errors.New("unsupported preview format")

// Encode writes img as PNG or BMP.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// IsSupported reports whether path has a .png or .bmp extension.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp":
		return true
	}
	return false
}

// WriteFile renders g and writes it to path. The format follows the file
// extension (.png or .bmp); an unsupported extension fails before anything
// is created.
func WriteFile(path string, g *cave.Grid, opts Options) error {
	if !IsSupported(path) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, Render(g, opts), format); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("encoding preview: %w", err)
	}
	return file.Close()
}
