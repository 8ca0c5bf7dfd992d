package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Ticks per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level     string // ID of the puzzle being played
	SessionID string // ID of the current fold session
	Moves     int    // Folds currently applied
	Undos     int    // Folds undone in this session
	Solved    bool   // Whether the current puzzle is solved
	GameOver  bool   // Whether every puzzle is done or none could be loaded
	Paused    bool   // Whether the game is paused
	Practice  bool   // Whether solves are left out of the records
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	// JustSolved is set on the tick the puzzle became solved.
	JustSolved bool
}
