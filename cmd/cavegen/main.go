// cavegen is a CLI for generating procedural cave meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-cavegen/internal/config"
	"github.com/Faultbox/midgard-cavegen/internal/dungeon"
	"github.com/Faultbox/midgard-cavegen/internal/logger"
	"github.com/Faultbox/midgard-cavegen/internal/preview"
	"github.com/Faultbox/midgard-cavegen/pkg/cave"
	"github.com/Faultbox/midgard-cavegen/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "inspect", "info":
		cmdInspect(args)
	case "preview":
		cmdPreview(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cavegen - procedural cave mesh generator

Usage:
  cavegen <command> [options]

Commands:
  generate [flags]                   Generate a cave and write OBJ, GAT and preview files
  inspect <file.gat>                 Show grid statistics
  preview <file.gat> <out.png|bmp>   Render a grid file to an image
  config [path]                      Write the effective config as YAML

Generate flags:
  -config <file>     Config file (default ./cavegen.yaml)
  -seed <n>          Random seed
  -width, -height    Grid size in cells
  -fill <p>          Probability of an interior cell starting open
  -iterations <n>    Smoothing passes
  -cell-size <s>     World size of one cell
  -wall-height <h>   Wall extrusion height
  -double-sided      Emit back faces for walls
  -no-markers        Skip marker placement
  -out <dir>         Output directory
  -debug             Debug logging

Examples:
  cavegen generate -seed 42 -width 96 -height 64 -out ./caves
  cavegen inspect ./caves/cave.gat
  cavegen preview ./caves/cave.gat cave.png`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdGenerate(args []string) {
	err := runGenerate(args, os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail(err)
	}
}

// runGenerate generates a cave, writes its outputs and prints a summary to w.
func runGenerate(args []string, w io.Writer) error {
	cfg, _, err := config.Load("generate", args)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()

	logger.Sugar.Debugf("cave settings: %+v", cfg.Cave)

	gen, err := dungeon.NewGenerator(cfg)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}

	d, err := gen.Generate()
	if errors.Is(err, cave.ErrRejected) {
		logger.Warn("no acceptable cave for seed", zap.Int64("seed", cfg.Cave.Seed), zap.Error(err))
		return fmt.Errorf("%w (try another seed or a higher -fill)", err)
	}
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		return err
	}

	written, err := dungeon.WriteOutputs(d, cfg.Output, cfg.Mesh.BaseElevation)
	if err != nil {
		logger.Error("writing outputs failed", zap.Error(err))
		return err
	}
	logger.Info("outputs written", zap.Int64("seed", d.Seed), zap.Strings("files", written))

	open, solid := d.Grid.CountByState()
	fmt.Fprintf(w, "Seed:      %d\n", d.Seed)
	fmt.Fprintf(w, "Grid:      %dx%d (%d open, %d solid)\n", d.Grid.Width, d.Grid.Height, open, solid)
	fmt.Fprintf(w, "Attempts:  %d\n", d.Attempts)
	fmt.Fprintf(w, "Mesh:      %d vertices, %d triangles\n", len(d.Mesh.Vertices), d.Mesh.TriangleCount())
	fmt.Fprintf(w, "Markers:   %d\n", len(d.Markers))
	for _, p := range written {
		fmt.Fprintf(w, "Wrote      %s\n", p)
	}
	return nil
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cavegen inspect <file.gat>")
		os.Exit(1)
	}

	gat, err := formats.ParseGATFile(args[0])
	if err != nil {
		fail(err)
	}

	grid := gat.Grid()
	open, _ := grid.CountByState()
	total := grid.Width * grid.Height

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Version:   %s\n", gat.Version)
	fmt.Printf("Size:      %dx%d (%d cells)\n", gat.Width, gat.Height, total)
	fmt.Printf("Open:      %d (%.1f%%)\n", open, 100*float64(open)/float64(total))

	// Region breakdown, largest first.
	seen := make([]bool, total)
	var sizes []int
	for _, p := range grid.OpenCells() {
		if seen[p.Y*grid.Width+p.X] {
			continue
		}
		region := cave.FloodFill(grid, p)
		for _, c := range region.Cells {
			seen[c.Y*grid.Width+c.X] = true
		}
		sizes = append(sizes, region.Size())
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	fmt.Printf("Regions:   %d\n", len(sizes))
	for i, s := range sizes {
		if i == 5 {
			fmt.Printf("  ... %d more\n", len(sizes)-5)
			break
		}
		fmt.Printf("  #%-3d %6d cells (%.1f%% of grid)\n", i+1, s, 100*float64(s)/float64(total))
	}

	fmt.Println()
	fmt.Println("Cells by type:")
	counts := gat.CountByType()
	types := make([]formats.GATCellType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Printf("  %-16s %d\n", t, counts[t])
	}
}

func cmdPreview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	scale := fs.Int("scale", 8, "Pixels per cell")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: cavegen preview [-scale n] <file.gat> <out.png|out.bmp>")
		os.Exit(1)
	}

	gat, err := formats.ParseGATFile(fs.Arg(0))
	if err != nil {
		fail(err)
	}

	if err := preview.WriteFile(fs.Arg(1), gat.Grid(), preview.Options{Scale: *scale}); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s (%dx%d px)\n", fs.Arg(1), int(gat.Width)*(*scale), int(gat.Height)*(*scale))
}

func cmdConfig(args []string) {
	cfg, rest, err := config.Load("config", args)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail(err)
	}

	if len(rest) == 0 {
		if err := cfg.Save(); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote config to %s\n", config.ConfigDir())
		return
	}

	if err := cfg.SaveTo(rest[0]); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", rest[0])
}
