package config

import "math"

// Lower bound for the enemy spawn interval, in ticks.
const minSpawnInterval = 30

// DifficultyManager calculates dynamic scene parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpawnInterval returns the ticks between enemy spawns at the current level.
// A zero base interval stays zero (spawn every tick).
func (d *DifficultyManager) SpawnInterval(base int, score int, ticks int) int {
	if base <= 0 {
		return 0
	}
	level := d.Level(score, ticks)
	result := base - int(level*float64(d.cfg.Scaling.SpawnReduction))
	if result < minSpawnInterval {
		result = min(base, minSpawnInterval)
	}
	return result
}

// EnemySpeed returns the enemy walk speed at the current level.
func (d *DifficultyManager) EnemySpeed(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
