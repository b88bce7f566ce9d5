package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const drillFile = "drill.yaml"

// LoadDrill loads the drill rules.
// Search order: customPath -> ~/.arcade/configs/drill.yaml -> ./configs/drill.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error. Broken
// files found on the search path are skipped.
func LoadDrill(customPath string) (DrillConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readDrill(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(drillFile), filepath.Join("configs", drillFile)} {
		if path == "" {
			continue
		}
		if cfg, err := readDrill(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	var cfg DrillConfig
	if err := yaml.Unmarshal(defaultDrillYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultDrillConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readDrill reads and parses one config file. Keys missing from the file
// keep their built-in defaults.
func readDrill(path string) (DrillConfig, error) {
	cfg := DefaultDrillConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDrill writes cfg as YAML to path, creating parent directories.
func WriteDrill(path string, cfg DrillConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// UserDrillPath returns where LoadDrill looks for the per-user config.
func UserDrillPath() string {
	return userConfigPath(drillFile)
}
