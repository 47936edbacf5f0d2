package dungeon

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-cavegen/internal/config"
	"github.com/Faultbox/midgard-cavegen/internal/logger"
	"github.com/Faultbox/midgard-cavegen/internal/preview"
	"github.com/Faultbox/midgard-cavegen/pkg/cave"
	"github.com/Faultbox/midgard-cavegen/pkg/formats"
)

// WriteOutputs writes the mesh, grid and preview files named in out and
// returns the paths written. Empty file names are skipped.
func WriteOutputs(d *Dungeon, out config.OutputConfig, floorElevation float32) ([]string, error) {
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string

	if out.MeshFile != "" {
		path := filepath.Join(out.Dir, out.MeshFile)
		name := fmt.Sprintf("cave_%d", d.Seed)
		if err := formats.WriteOBJFile(path, d.Mesh, name); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if out.GridFile != "" {
		path := filepath.Join(out.Dir, out.GridFile)
		if err := formats.NewGATFromGrid(d.Grid, floorElevation).WriteGATFile(path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if out.PreviewFile != "" {
		path := filepath.Join(out.Dir, out.PreviewFile)
		cells := make([]cave.Point, len(d.Markers))
		for i, m := range d.Markers {
			cells[i] = m.Cell
		}
		opts := preview.Options{Scale: out.PreviewScale, Markers: cells, Spawn: &d.Spawn}
		if err := preview.WriteFile(path, d.Grid, opts); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	for _, p := range written {
		logger.Debug("wrote output", zap.String("path", p))
	}
	return written, nil
}
