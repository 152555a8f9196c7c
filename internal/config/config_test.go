package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultPlatformerConfig(), cfg)
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("spawner:\n  enemy_rate: 60\nscoring:\n  coin: 25\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Spawner.EnemyRate)
	assert.Equal(t, 25, cfg.Scoring.Coin)
	// Untouched sections keep their defaults
	assert.Equal(t, 21, cfg.Map.Width)
	assert.Equal(t, 100, cfg.Scoring.EnemyDestroyed)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "map:\n  width: 0\n"},
		{"downward jump", "physics:\n  jump_impulse: 5\n"},
		{"zero jump", "physics:\n  jump_impulse: 0\n"},
		{"no gravity", "physics:\n  gravity: 0\n"},
		{"negative walk speed", "physics:\n  move_speed: -1\n"},
		{"negative spawn rate", "spawner:\n  enemy_rate: -1\n"},
		{"wall is a marker", "tiles:\n  walls: [45, 94]\n"},
		{"duplicate markers", "tiles:\n  coin: 106\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("map: [oops"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	cfg = DefaultPlatformerConfig()
	ApplyPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)
	assert.Equal(t, 120, cfg.Spawner.EnemyRate)

	cfg = DefaultPlatformerConfig()
	ApplyPreset(&cfg, "")
	assert.Equal(t, DefaultPlatformerConfig(), cfg)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("easy")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, p)

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestTileIDs(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	ids := cfg.Tiles.IDs()

	assert.Equal(t, 96, ids.Player)
	assert.Equal(t, 106, ids.Bomb)
	require.Len(t, ids.Walls, 28)

	ids.Walls[0] = 0
	assert.Equal(t, 45, cfg.Tiles.Walls[0], "walls are copied")
}

func TestParseAcceptsFastPhysics(t *testing.T) {
	// Bodies move in sub-tile steps, so speeds above a tile per tick are fine.
	cfg, err := Parse([]byte("physics:\n  jump_impulse: -90\n  max_fall_speed: 120\n"))
	require.NoError(t, err)
	assert.Equal(t, -90.0, cfg.Physics.JumpImpulse)
	assert.Equal(t, 120.0, cfg.Physics.MaxFallSpeed)
}
