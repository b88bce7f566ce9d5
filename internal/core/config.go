package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for reproducible rounds
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState is the platform-facing summary of a game.
type GameState struct {
	Score    int  // Current score
	Playing  bool // A round is in progress; the one-second timer should run
	GameOver bool // The round has ended and the results card is showing
}

// StepResult is returned after a game consumes input, a timer tick or a
// scheduled task. Effects are requests for the platform to carry out.
type StepResult struct {
	State   GameState
	Effects []Effect
}
