// Package config provides YAML-based configuration loading for the
// origami game: engine tolerances, display and file locations.
package config

// OrigamiConfig contains all configuration for the game.
type OrigamiConfig struct {
	Engine  EngineConfig  `yaml:"engine"`
	Display DisplayConfig `yaml:"display"`
	Scoring ScoringConfig `yaml:"scoring"`
	Paths   PathsConfig   `yaml:"paths"`
}

// EngineConfig defines the fold engine tolerances.
type EngineConfig struct {
	Epsilon       float64 `yaml:"epsilon"`        // side classification tolerance
	Precision     int     `yaml:"precision"`      // decimals used to group solved positions
	AffineEpsilon float64 `yaml:"affine_epsilon"` // determinant below which a mapping is degenerate
}

// DisplayConfig defines how the sheet is drawn.
type DisplayConfig struct {
	CellW       int  `yaml:"cell_w"` // columns per sheet unit
	CellH       int  `yaml:"cell_h"` // rows per sheet unit
	ShowCreases bool `yaml:"show_creases"`
}

// ScoringConfig defines how solves are rated against the reference solution.
type ScoringConfig struct {
	Slack int `yaml:"slack"` // extra folds still worth two stars
}

// PathsConfig defines where puzzles and records live.
type PathsConfig struct {
	Levels string `yaml:"levels"` // empty means the bundled puzzles
	DB     string `yaml:"db"`
}
