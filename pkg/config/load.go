package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file.
// An empty path searches the standard locations; a missing file is not an
// error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./casework.yaml",
		filepath.Join(configDir(), "casework.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "casework")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "casework")
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate rejects malformed presets early, before any fixture is built.
func (c *Config) validate() error {
	if c.Mesh.Cells <= 0 {
		return fmt.Errorf("mesh.cells must be positive, got %d", c.Mesh.Cells)
	}
	for name, fc := range c.Fixtures {
		if fc.Variant == "" {
			return fmt.Errorf("fixture %q: variant is required", name)
		}
		if len(fc.Size) != 0 && len(fc.Size) != 3 {
			return fmt.Errorf("fixture %q: size wants 3 components, got %d", name, len(fc.Size))
		}
		if len(fc.At) != 0 && len(fc.At) != 3 {
			return fmt.Errorf("fixture %q: at wants 3 components, got %d", name, len(fc.At))
		}
		if fc.Interior != nil && len(fc.Interior.Size) != 3 {
			return fmt.Errorf("fixture %q: interior.size wants 3 components, got %d",
				name, len(fc.Interior.Size))
		}
	}
	return nil
}
