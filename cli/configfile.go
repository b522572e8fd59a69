package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roofingmaterials/roofserve/config"
)

// ErrConfigExists is returned by WriteConfigFile when the target exists and
// overwrite was not requested.
var ErrConfigExists = errors.New("config file already exists")

// MarshalConfig renders cfg as YAML using the keys config.Load reads.
func MarshalConfig(cfg *config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// WriteConfigFile validates cfg and writes it to path as YAML.
// Creates the parent directory if it doesn't exist.
func WriteConfigFile(path string, cfg *config.Config, overwrite bool) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}

	cleanPath := filepath.Clean(path)

	if !overwrite {
		if _, err := os.Stat(cleanPath); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, cleanPath)
		}
	}

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := MarshalConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cleanPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
