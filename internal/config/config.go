// Package config handles worldgen configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/slenderish/internal/noise"
	"github.com/Faultbox/slenderish/pkg/rtin"
	"github.com/Faultbox/slenderish/pkg/wfc"
)

// Config holds all generator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Noise   NoiseConfig   `yaml:"noise"`
	Tiles   TilesConfig   `yaml:"tiles"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds RTIN mesh settings.
type TerrainConfig struct {
	Size             int     `yaml:"size"`              // Samples per side, power of two
	HeightMultiplier float32 `yaml:"height_multiplier"` // Applied to emitted vertices only
	ErrorThreshold   float32 `yaml:"error_threshold"`   // In sampler units
	ChunkSize        float32 `yaml:"chunk_size"`        // World units per chunk
}

// NoiseConfig holds the height sampler layers.
type NoiseConfig struct {
	Seed   int64        `yaml:"seed"`
	Layers []NoiseLayer `yaml:"layers"`
}

// NoiseLayer is one fractal layer of the height sampler.
type NoiseLayer struct {
	Kind        string  `yaml:"kind"` // perlin or simplex
	Amplitude   float64 `yaml:"amplitude"`
	Frequency   float64 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// TilesConfig holds WFC settings.
type TilesConfig struct {
	GridSize     int         `yaml:"grid_size"`
	Seed         int64       `yaml:"seed"`
	TriesAllowed int         `yaml:"tries_allowed"` // 0 removes every incompatible candidate
	CellSize     float32     `yaml:"cell_size"`     // World units between cell centres
	MeshSize     float32     `yaml:"mesh_size"`     // Width of the authored tile meshes
	Origin       [3]float32  `yaml:"origin"`
	Pins         []PinConfig `yaml:"pins"`
}

// PinConfig fixes one cell before solving.
type PinConfig struct {
	X    uint32 `yaml:"x"`
	Y    uint32 `yaml:"y"`
	Tile string `yaml:"tile"` // e.g. WALL_90
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	MeshFile   string `yaml:"mesh_file"`
	LayoutFile string `yaml:"layout_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Size:             128,
			HeightMultiplier: 20,
			ErrorThreshold:   0.05,
			ChunkSize:        128,
		},
		Noise: NoiseConfig{
			Seed: 1,
			Layers: []NoiseLayer{
				{Kind: "simplex", Amplitude: 1, Frequency: 0.01, Octaves: 5, Persistence: 0.5, Lacunarity: 2},
				{Kind: "perlin", Amplitude: 0.25, Frequency: 0.05, Octaves: 3, Persistence: 0.5, Lacunarity: 2},
			},
		},
		Tiles: TilesConfig{
			GridSize: 16,
			Seed:     1,
			CellSize: 4,
			MeshSize: 4,
		},
		Output: OutputConfig{
			Dir:        "out",
			MeshFile:   "terrain.obj",
			LayoutFile: "tiles.yaml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// NoiseLayers converts the configured layers for the noise package.
func (c *Config) NoiseLayers() []noise.Layer {
	layers := make([]noise.Layer, 0, len(c.Noise.Layers))
	for _, l := range c.Noise.Layers {
		layers = append(layers, noise.Layer{
			Kind:        noise.Kind(l.Kind),
			Amplitude:   l.Amplitude,
			Frequency:   l.Frequency,
			Octaves:     l.Octaves,
			Persistence: l.Persistence,
			Lacunarity:  l.Lacunarity,
		})
	}
	return layers
}

// Validate reports the first setting the generator cannot run with.
func (c *Config) Validate() error {
	if c.Terrain.Size < 2 || !rtin.IsPowerOfTwo(uint32(c.Terrain.Size)) {
		return fmt.Errorf("terrain.size must be a power of two >= 2, got %d", c.Terrain.Size)
	}
	if c.Terrain.ErrorThreshold < 0 {
		return fmt.Errorf("terrain.error_threshold must not be negative, got %v", c.Terrain.ErrorThreshold)
	}
	if c.Terrain.ChunkSize <= 0 {
		return fmt.Errorf("terrain.chunk_size must be positive, got %v", c.Terrain.ChunkSize)
	}

	for i, l := range c.NoiseLayers() {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("noise.layers[%d]: %w", i, err)
		}
	}

	if c.Tiles.GridSize < 1 {
		return fmt.Errorf("tiles.grid_size must be at least 1, got %d", c.Tiles.GridSize)
	}
	if c.Tiles.CellSize <= 0 || c.Tiles.MeshSize <= 0 {
		return fmt.Errorf("tiles.cell_size and tiles.mesh_size must be positive")
	}
	for i, p := range c.Tiles.Pins {
		if p.X < 1 || p.Y < 1 || int(p.X) > c.Tiles.GridSize || int(p.Y) > c.Tiles.GridSize {
			return fmt.Errorf("tiles.pins[%d]: (%d, %d) outside a grid of %d", i, p.X, p.Y, c.Tiles.GridSize)
		}
		if _, err := wfc.ParseTileID(p.Tile); err != nil {
			return fmt.Errorf("tiles.pins[%d]: %w", i, err)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
