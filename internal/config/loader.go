package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOrigami loads the game configuration.
// Search order: customPath -> ~/.origami/configs/origami.yaml -> ./configs/origami.yaml -> embedded default
//
// Files are read over the defaults, so a partial file only overrides the
// keys it sets.
func LoadOrigami(customPath string) (OrigamiConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultOrigamiConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultOrigamiConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("origami.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "origami.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	return embeddedDefault(), nil
}

// embeddedDefault parses the embedded YAML, falling back to hardcoded values.
func embeddedDefault() OrigamiConfig {
	var cfg OrigamiConfig
	if err := yaml.Unmarshal(defaultOrigamiYAML, &cfg); err != nil {
		return DefaultOrigamiConfig()
	}
	return cfg
}

// parse overlays data on the default configuration and checks the result.
func parse(data []byte) (OrigamiConfig, error) {
	cfg := embeddedDefault()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c OrigamiConfig) Validate() error {
	switch {
	case c.Engine.Epsilon <= 0:
		return fmt.Errorf("engine.epsilon must be positive, got %g", c.Engine.Epsilon)
	case c.Engine.Precision < 0 || c.Engine.Precision > 9:
		return fmt.Errorf("engine.precision must be within 0..9, got %d", c.Engine.Precision)
	case c.Engine.AffineEpsilon <= 0:
		return fmt.Errorf("engine.affine_epsilon must be positive, got %g", c.Engine.AffineEpsilon)
	case c.Display.CellW < 1 || c.Display.CellH < 1:
		return fmt.Errorf("display cells must be at least 1x1, got %dx%d", c.Display.CellW, c.Display.CellH)
	case c.Scoring.Slack < 0:
		return fmt.Errorf("scoring.slack must not be negative, got %d", c.Scoring.Slack)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".origami", "configs", filename)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
