package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPilot loads the pilot configuration.
// Search order: customPath -> ~/.pilot/configs/pilot.yaml -> ./configs/pilot.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets. The result is validated before it is returned.
func LoadPilot(customPath string) (PilotConfig, error) {
	cfg := DefaultPilotConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pilot.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultPilotConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pilot.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultPilotConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPilotYAML, &cfg); err != nil {
		return DefaultPilotConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pilot", "configs", filename)
}
