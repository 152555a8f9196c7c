package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the built-in configuration.
// It mirrors defaults/platformer.yaml.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Map: MapConfig{
			Width:    21,
			Height:   15,
			TileSize: 32,
			CellW:    2,
			CellH:    1,
		},
		Tiles: TileConfig{
			Player: 96,
			Enemy:  95,
			Coin:   94,
			Bomb:   106,
			Walls: []int{
				45, 46, 47, 48,
				53, 54, 55, 56, 57, 58, 59, 60,
				65, 66, 67, 68, 69, 70, 71, 72,
				77, 78, 79, 80, 81, 82, 83, 84,
			},
			Palette: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 3, 44},
		},
		Physics: PhysicsConfig{
			Gravity:      72,
			JumpImpulse:  -22.8,
			MaxFallSpeed: 24,
			MoveSpeed:    7.2,
			EnemySpeed:   3,
		},
		Spawner: SpawnerConfig{
			EnemyRate:  3 * 60, // 3 seconds at 60 ticks/s
			MaxEnemies: 0,
		},
		Scoring: ScoringConfig{
			Coin:           10,
			EnemyDestroyed: 100,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpawnReduction:  90,
				SpeedMultiplier: 0.6,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `config dump`.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
