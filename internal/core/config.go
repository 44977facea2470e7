package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to size the playfield projection and seed its RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Render/simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic spawning
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary the platform reads after every step.
type GameState struct {
	Score    int  // Current score
	Misses   int  // Items that reached the ground this run
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the simulation is frozen
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Caught and Missed count items resolved during this tick.
	Caught int
	Missed int

	// GameOverNow is true only on the tick the run transitioned to game over.
	GameOverNow bool
}
