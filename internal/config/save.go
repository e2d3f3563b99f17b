package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name Load looks for in the working and config directories.
const FileName = "worldgen.yaml"

// ErrConfigExists is returned when writing would replace an existing file.
var ErrConfigExists = errors.New("config file already exists")

// Save writes the config to the user's config directory and returns the
// path written. An existing file is left alone.
func (c *Config) Save() (string, error) {
	path := filepath.Join(ConfigDir(), FileName)
	return path, c.writeNew(path)
}

// SaveTo writes the config to path, replacing any existing file.
func (c *Config) SaveTo(path string) error {
	data, err := c.encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) writeNew(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	return c.SaveTo(path)
}

// encode renders the config in the same two-space layout as tile layouts.
func (c *Config) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
