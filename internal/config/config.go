// Package config provides YAML-based configuration loading and difficulty
// management for the platformer scene.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// PlatformerConfig contains all tunable parameters of the scene.
type PlatformerConfig struct {
	Map        MapConfig        `yaml:"map"`
	Tiles      TileConfig       `yaml:"tiles"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MapConfig defines the tile grid dimensions.
type MapConfig struct {
	Width    int `yaml:"width"`     // Map width in tiles
	Height   int `yaml:"height"`    // Map height in tiles
	TileSize int `yaml:"tile_size"` // Tile edge in pixels (window front-end)
	CellW    int `yaml:"cell_w"`    // Terminal cells per tile horizontally
	CellH    int `yaml:"cell_h"`    // Terminal cells per tile vertically
}

// TileConfig defines the special tile indices of the level layer and the
// weighted palette of the background layer.
type TileConfig struct {
	Player  int   `yaml:"player"`
	Enemy   int   `yaml:"enemy"`
	Coin    int   `yaml:"coin"`
	Bomb    int   `yaml:"bomb"`
	Walls   []int `yaml:"walls"`
	Palette []int `yaml:"palette"` // Earlier entries are picked more often
}

// IDs returns the marker and wall indices in the form the tile map scans for.
func (t TileConfig) IDs() tilemap.IDs {
	return tilemap.IDs{
		Player: t.Player,
		Enemy:  t.Enemy,
		Coin:   t.Coin,
		Bomb:   t.Bomb,
		Walls:  append([]int(nil), t.Walls...),
	}
}

// PhysicsConfig defines movement parameters in tiles and seconds.
// Scenes scale them by the tick length, so the tick rate does not change
// how fast the game plays.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // Tiles per second squared
	JumpImpulse  float64 `yaml:"jump_impulse"`   // Tiles per second, negative is up
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Tiles per second
	MoveSpeed    float64 `yaml:"move_speed"`     // Tiles per second
	EnemySpeed   float64 `yaml:"enemy_speed"`    // Tiles per second
}

// SpawnerConfig defines periodic enemy spawning.
type SpawnerConfig struct {
	EnemyRate  int `yaml:"enemy_rate"`  // Ticks between spawns
	MaxEnemies int `yaml:"max_enemies"` // 0 = unlimited
}

// ScoringConfig defines points awarded by scoring events.
type ScoringConfig struct {
	Coin           int `yaml:"coin"`
	EnemyDestroyed int `yaml:"enemy_destroyed"`
}

// InputConfig defines input handling parameters.
type InputConfig struct {
	// HoldTicks is how long one horizontal key press keeps the player
	// walking. Terminals report key repeats but never key releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpawnReduction  int     `yaml:"spawn_reduction"`  // Ticks removed from the spawn interval at max difficulty
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed multiplier at max difficulty
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable scene.
func (c PlatformerConfig) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("%w: map size %dx%d", ErrInvalidConfig, c.Map.Width, c.Map.Height)
	}
	if c.Map.TileSize <= 0 || c.Map.CellW <= 0 || c.Map.CellH <= 0 {
		return fmt.Errorf("%w: tile_size, cell_w and cell_h must be positive", ErrInvalidConfig)
	}
	if c.Physics.Gravity <= 0 || c.Physics.MaxFallSpeed <= 0 {
		return fmt.Errorf("%w: gravity and max_fall_speed must be positive", ErrInvalidConfig)
	}
	if c.Physics.JumpImpulse >= 0 {
		return fmt.Errorf("%w: jump_impulse %.2f must be negative (up)", ErrInvalidConfig, c.Physics.JumpImpulse)
	}
	if c.Physics.MoveSpeed < 0 || c.Physics.EnemySpeed < 0 {
		return fmt.Errorf("%w: move speeds must not be negative", ErrInvalidConfig)
	}
	if c.Spawner.EnemyRate < 0 || c.Spawner.MaxEnemies < 0 {
		return fmt.Errorf("%w: spawner values must not be negative", ErrInvalidConfig)
	}
	if c.Scoring.Coin < 0 || c.Scoring.EnemyDestroyed < 0 {
		return fmt.Errorf("%w: scoring values must not be negative", ErrInvalidConfig)
	}

	markers := map[int]string{
		c.Tiles.Player: "player",
		c.Tiles.Enemy:  "enemy",
		c.Tiles.Coin:   "coin",
		c.Tiles.Bomb:   "bomb",
	}
	if len(markers) != 4 {
		return fmt.Errorf("%w: player, enemy, coin and bomb tiles must differ", ErrInvalidConfig)
	}
	for _, w := range c.Tiles.Walls {
		if name, ok := markers[w]; ok {
			return fmt.Errorf("%w: wall tile %d is the %s marker", ErrInvalidConfig, w, name)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. The empty string keeps
// the config's own difficulty settings.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Spawner.EnemyRate = 4 * 60
		cfg.Spawner.MaxEnemies = 4
	case DifficultyHard:
		cfg.Spawner.EnemyRate = 2 * 60
		cfg.Spawner.MaxEnemies = 0
	}
}
