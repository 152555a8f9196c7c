package core

// RuntimeConfig is passed to the scene on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform layer picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// TickMillis returns the duration of one tick in milliseconds.
func (c RuntimeConfig) TickMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60.0
	}
	return 1000.0 / float64(c.TickRate)
}

// GameState is the externally visible state of a running scene.
type GameState struct {
	Score    int  // Current score, never decreases until restart
	Started  bool // Spacebar pressed and the run is live
	GameOver bool // "Game Over" is displayed
	Won      bool // The run ended because every item was collected
	Paused   bool
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State GameState
}
