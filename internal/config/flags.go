package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagSeed   = flag.Int64("seed", 0, "Seed for both noise and tile solving")
	flagSize   = flag.Int("size", 0, "Terrain size in samples per side (power of two)")
	flagGrid   = flag.Int("grid", 0, "Tile grid size in cells per side")
	flagOut    = flag.String("out", "", "Output directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Noise.Seed = *flagSeed
		cfg.Tiles.Seed = *flagSeed
	}
	if *flagSize > 0 {
		cfg.Terrain.Size = *flagSize
	}
	if *flagGrid > 0 {
		cfg.Tiles.GridSize = *flagGrid
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
}
