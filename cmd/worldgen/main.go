// worldgen generates a simplified terrain mesh and a solved tile layout.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/slenderish/internal/config"
	"github.com/Faultbox/slenderish/internal/export"
	"github.com/Faultbox/slenderish/internal/logger"
	"github.com/Faultbox/slenderish/internal/world"
)

const overlayFile = "tiles_overlay.obj"

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	command := "all"
	if args := config.Args(); len(args) > 0 {
		command = args[0]
	}
	switch command {
	case "terrain", "tiles", "all", "init":
	case "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if command == "init" {
		path, err := cfg.Save()
		if err != nil {
			logger.Fatal("failed to write config", zap.Error(err))
		}
		logger.Info("wrote config", zap.String("path", path))
		return
	}

	gen, err := world.NewGenerator(cfg, logger.Named("worldgen"))
	if err != nil {
		logger.Fatal("failed to create generator", zap.Error(err))
	}

	if command == "terrain" || command == "all" {
		if err := runTerrain(cfg, gen); err != nil {
			logger.Fatal("terrain failed", zap.Error(err))
		}
	}
	if command == "tiles" || command == "all" {
		if err := runTiles(cfg, gen); err != nil {
			logger.Fatal("tiles failed", zap.Error(err))
		}
	}
}

func printUsage() {
	fmt.Println(`worldgen - terrain and tile layout generator

Usage:
  worldgen [flags] [command]

Commands:
  terrain   Build the terrain mesh only
  tiles     Solve the tile grid only
  all       Both (default)
  init      Write the resolved config to the user config dir

Flags:
  -config <path>  Config file (default ./worldgen.yaml or user config dir)
  -debug          Debug logging
  -seed <n>       Seed for noise and tiles
  -size <n>       Terrain samples per side (power of two)
  -grid <n>       Tile grid cells per side
  -out <dir>      Output directory`)
}

func runTerrain(cfg *config.Config, gen *world.Generator) error {
	mesh, err := gen.Terrain()
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Output.Dir, cfg.Output.MeshFile)
	if err := export.SaveOBJ(path, mesh, float32(cfg.Terrain.Size)); err != nil {
		return err
	}
	logger.Info("wrote terrain mesh", zap.String("path", path))
	return nil
}

func runTiles(cfg *config.Config, gen *world.Generator) error {
	layout, err := gen.Tiles()
	if err != nil {
		return err
	}

	size := uint32(cfg.Tiles.GridSize)
	path := filepath.Join(cfg.Output.Dir, cfg.Output.LayoutFile)
	if err := export.SaveTileLayout(path, size, layout.Cells); err != nil {
		return err
	}
	logger.Info("wrote tile layout", zap.String("path", path))
	if n := len(layout.Audit.Violations); n > 0 {
		logger.Warn("tile layout breaks adjacency",
			zap.Int("violations", n),
			zap.Int("pairs", layout.Audit.Pairs))
	}

	overlay := export.NewTileOverlay(size, layout.Cells, cfg.Tiles.CellSize)
	overlayPath := filepath.Join(cfg.Output.Dir, overlayFile)
	f, err := os.Create(overlayPath)
	if err != nil {
		return err
	}
	if err := export.WriteOverlayOBJ(f, overlay.CellQuads(0), overlay.GridLines(0.01)); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", overlayPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if logger.Log.Core().Enabled(zap.DebugLevel) {
		var buf bytes.Buffer
		if err := export.WriteTileMap(&buf, size, layout.Cells); err == nil {
			logger.Debug("tile map\n" + buf.String())
		}
	}
	return nil
}
