package export

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/slenderish/pkg/wfc"
)

// TileLayout is the on-disk form of a solved tile grid.
type TileLayout struct {
	Size  uint32         `yaml:"size"`
	Tiles []wfc.TileCell `yaml:"tiles"`
}

// WriteTileLayout writes the cells as YAML, one {tile, x, z} entry each.
func WriteTileLayout(w io.Writer, size uint32, cells []wfc.TileCell) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(TileLayout{Size: size, Tiles: cells}); err != nil {
		return fmt.Errorf("encoding tile layout: %w", err)
	}
	return enc.Close()
}

// ReadTileLayout reads a layout written by WriteTileLayout.
func ReadTileLayout(r io.Reader) (*TileLayout, error) {
	var layout TileLayout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil {
		return nil, fmt.Errorf("decoding tile layout: %w", err)
	}

	for _, c := range layout.Tiles {
		if c.X < 1 || c.Z < 1 || c.X > layout.Size || c.Z > layout.Size {
			return nil, fmt.Errorf("tile %s at (%d, %d) outside a grid of %d", c.ID, c.X, c.Z, layout.Size)
		}
	}
	return &layout, nil
}

// SaveTileLayout writes the layout to path, creating parent directories.
func SaveTileLayout(path string, size uint32, cells []wfc.TileCell) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteTileLayout(w, size, cells)
	})
}

// LoadTileLayout reads a layout from path.
func LoadTileLayout(path string) (*TileLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTileLayout(f)
}
