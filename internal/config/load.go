package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file to use when --config is not given.
const EnvConfig = "SUNBLOCK_CONFIG"

// Load builds the configuration: defaults, then the config file, then flags.
// The file is --config, else $SUNBLOCK_CONFIG, else the first of SearchPaths
// that exists. An explicitly named file must exist.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolvePath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	return findConfigFile()
}

// SearchPaths lists the implicit config locations in lookup order: the
// working directory, its configs/ folder, then the per-user file.
func SearchPaths() []string {
	return []string{
		"sunblock.yaml",
		filepath.Join("configs", "sunblock.yaml"),
		UserConfigPath(),
	}
}

func findConfigFile() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// UserConfigPath is the per-user config file that Save writes.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Sunblock")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Sunblock")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "sunblock")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "sunblock")
	}
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
