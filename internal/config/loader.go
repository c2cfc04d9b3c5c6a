package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// UserConfigName is the config file path relative to the XDG config dirs.
const UserConfigName = "tui-tetris/tetris.yaml"

// LoadTetris loads the game configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/tui-tetris/tetris.yaml ->
// ./configs/tetris.yaml -> embedded default -> hard-coded default.
// Files are layered over the defaults, so they may set only some keys.
// An explicit customPath that is unreadable, malformed or invalid is an error;
// the other locations are skipped when they fail.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultTetrisConfig(), err
		}
		if err := cfg.Validate(); err != nil {
			return DefaultTetrisConfig(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath, err := xdg.SearchConfigFile(UserConfigName); err == nil {
		if cfg, err := loadFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "tetris.yaml")); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultTetrisConfig(), nil
	}
	return cfg, nil
}

// WriteUserConfig writes the embedded default configuration to the XDG
// config directory, creating parent directories, and returns the path.
// An existing file is left untouched unless overwrite is set.
func WriteUserConfig(overwrite bool) (string, error) {
	path, err := xdg.ConfigFile(UserConfigName)
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve user config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return path, fmt.Errorf("config: %s already exists", path)
	}
	if err := os.WriteFile(path, defaultTetrisYAML, 0o644); err != nil {
		return "", fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return path, nil
}

func loadFile(path string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
