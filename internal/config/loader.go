package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory for config, database and logs.
const AppDir = ".foodcatch"

// LoadCatch loads the catch game configuration.
// Search order: customPath -> ~/.foodcatch/configs/catch.yaml -> ./configs/catch.yaml -> embedded default
// Files are decoded over the defaults so partial files only override what they set.
func LoadCatch(customPath string) (CatchConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CatchConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := ParseCatch(data)
		if err != nil {
			return CatchConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("catch.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseCatch(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "catch.yaml")); err == nil {
		if cfg, err := ParseCatch(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseCatch(defaultCatchYAML)
	if err != nil {
		return DefaultCatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseCatch decodes YAML over DefaultCatchConfig and validates the result.
func ParseCatch(data []byte) (CatchConfig, error) {
	cfg := DefaultCatchConfig()
	// Categories replace the stock list wholesale when present.
	cfg.Spawn.Categories = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CatchConfig{}, err
	}
	if len(cfg.Spawn.Categories) == 0 {
		cfg.Spawn.Categories = DefaultCategories()
	}
	if err := cfg.Validate(); err != nil {
		return CatchConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyCatchPreset modifies the config based on a difficulty preset.
func ApplyCatchPreset(cfg *CatchConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
