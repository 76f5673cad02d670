package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// configFileName is the name looked up in the working directory.
const configFileName = "trefoil.yaml"

// Load builds the effective configuration. File values override the
// defaults, flags override the file, and the result must pass Validate.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolveConfigPath(); path != "" {
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

// resolveConfigPath prefers -config over the search locations.
func resolveConfigPath() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	return findConfigFile()
}

// findConfigFile returns the first existing file among ./trefoil.yaml and
// the user config file, or "" when neither exists.
func findConfigFile() string {
	for _, path := range []string{
		configFileName,
		userConfigFile(),
	} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func userConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the per-user trefoil config directory.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Trefoil")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Trefoil")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trefoil")
	}
	return filepath.Join(home, ".config", "trefoil")
}

// loadFromFile decodes path over cfg. Keys absent from the file keep
// their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
