package config

import (
	_ "embed"
)

//go:embed defaults/origami.yaml
var defaultOrigamiYAML []byte

// DefaultOrigamiConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultOrigamiConfig() OrigamiConfig {
	return OrigamiConfig{
		Engine: EngineConfig{
			Epsilon:       1e-3,
			Precision:     1,
			AffineEpsilon: 1e-6,
		},
		Display: DisplayConfig{
			CellW:       4,
			CellH:       2,
			ShowCreases: true,
		},
		Scoring: ScoringConfig{
			Slack: 2,
		},
		Paths: PathsConfig{
			DB: "~/.origami/origami.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultOrigamiYAML
}
