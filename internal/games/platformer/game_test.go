package platformer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

func testConfig() config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	cfg.Difficulty.Enabled = false
	cfg.Spawner.EnemyRate = 1000
	return cfg
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func parseLevel(t *testing.T, cfg config.PlatformerConfig, rows ...string) levels.Level {
	t.Helper()
	var b strings.Builder
	b.WriteString("id: test\nrows:\n")
	for _, r := range rows {
		b.WriteString("  - \"" + r + "\"\n")
	}
	l, err := levels.ParseYAML([]byte(b.String()), cfg.Tiles.IDs())
	require.NoError(t, err)
	return l
}

func newGame(t *testing.T, cfg config.PlatformerConfig, rows ...string) *Game {
	t.Helper()
	g := New(cfg, parseLevel(t, cfg, rows...))
	g.Reset(testRuntime(42))
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// stepUntil steps with the same input until cond holds or limit ticks pass.
func stepUntil(g *Game, in core.InputFrame, limit int, cond func(core.GameState) bool) core.GameState {
	state := g.State()
	for i := 0; i < limit && !cond(state); i++ {
		state = g.Step(in).State
	}
	return state
}

// Enemy start sealed off to the right of the player's corridor.
var corridor = []string{
	"###########",
	"#P.B.C#..E#",
	"###########",
}

func TestOnlySpaceStartsTheRun(t *testing.T) {
	g := newGame(t, testConfig(), corridor...)
	startX := g.player.Box.X

	for i := 0; i < 10; i++ {
		g.Step(input(core.ActionRight, core.ActionJump, core.ActionRestart))
	}
	assert.False(t, g.State().Started)
	assert.Equal(t, startX, g.player.Box.X, "player frozen before start")
	assert.Zero(t, g.Enemies())

	state := g.Step(input(core.ActionStart)).State
	assert.True(t, state.Started)
	assert.False(t, state.GameOver)
}

func TestFirstEnemySpawnsImmediatelyThenEveryInterval(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.EnemyRate = 10
	g := newGame(t, cfg, corridor...)
	g.Step(input(core.ActionStart))

	g.Step(input())
	assert.Equal(t, 1, g.Enemies())

	for i := 0; i < 10; i++ {
		g.Step(input())
	}
	assert.Equal(t, 1, g.Enemies(), "counter still running")

	g.Step(input())
	assert.Equal(t, 2, g.Enemies())

	for i := 0; i < 11; i++ {
		g.Step(input())
	}
	assert.Equal(t, 3, g.Enemies())
}

func TestMaxEnemiesCapsSpawning(t *testing.T) {
	cfg := testConfig()
	cfg.Spawner.EnemyRate = 2
	cfg.Spawner.MaxEnemies = 2
	g := newGame(t, cfg, corridor...)
	g.Step(input(core.ActionStart))

	for i := 0; i < 100; i++ {
		g.Step(input())
	}
	assert.Equal(t, 2, g.Enemies())
}

func TestBombDestroysEnemiesAndLastItemWins(t *testing.T) {
	cfg := testConfig()
	g := newGame(t, cfg, corridor...)
	g.Step(input(core.ActionStart))

	right := input(core.ActionRight)
	g.Step(right)
	require.Equal(t, 1, g.Enemies())
	require.Equal(t, 2, g.ItemsLeft())

	state := stepUntil(g, right, 100, func(s core.GameState) bool { return s.Score > 0 })
	assert.Equal(t, cfg.Scoring.EnemyDestroyed, state.Score, "one enemy destroyed by the bomb")
	assert.Zero(t, g.Enemies())
	assert.Equal(t, 1, g.ItemsLeft())
	assert.False(t, state.GameOver)

	state = stepUntil(g, right, 100, func(s core.GameState) bool { return s.GameOver })
	assert.True(t, state.GameOver)
	assert.True(t, state.Won)
	assert.False(t, state.Started)
	assert.Equal(t, cfg.Scoring.EnemyDestroyed+cfg.Scoring.Coin, state.Score)
	assert.Zero(t, g.ItemsLeft())
}

func TestCoinAddsPoints(t *testing.T) {
	cfg := testConfig()
	g := newGame(t, cfg,
		"#########",
		"#PC...C.#",
		"#####E###",
		"#########",
	)
	g.Step(input(core.ActionStart))

	state := stepUntil(g, input(core.ActionRight), 50, func(s core.GameState) bool { return s.Score > 0 })
	assert.Equal(t, cfg.Scoring.Coin, state.Score)
	assert.False(t, state.GameOver)
	assert.Equal(t, 1, g.ItemsLeft())
}

func TestEnemyContactEndsRunWithLoss(t *testing.T) {
	cfg := testConfig()
	g := newGame(t, cfg,
		"#######",
		"#CP..E#",
		"#######",
	)
	g.Step(input(core.ActionStart))

	state := stepUntil(g, input(core.ActionRight), 300, func(s core.GameState) bool { return s.GameOver })
	assert.True(t, state.GameOver)
	assert.False(t, state.Won)
	assert.False(t, state.Started)
	assert.True(t, g.player.IsHit())
	assert.Equal(t, 1, g.ItemsLeft())

	// The run stays over until Esc
	state = g.Step(input(core.ActionStart)).State
	assert.True(t, state.GameOver)
	assert.False(t, state.Started)
}

func TestEscapeRestartsOnlyAfterGameOver(t *testing.T) {
	cfg := testConfig()
	g := newGame(t, cfg, corridor...)
	g.Step(input(core.ActionStart))

	g.Step(input(core.ActionRestart))
	assert.True(t, g.State().Started, "Esc ignored during a run")

	stepUntil(g, input(core.ActionRight), 300, func(s core.GameState) bool { return s.GameOver })
	require.True(t, g.State().GameOver)

	state := g.Step(input(core.ActionRestart)).State
	assert.Equal(t, core.GameState{}, state)
	assert.Equal(t, 2, g.ItemsLeft())
	assert.Zero(t, g.Enemies())
	assert.False(t, g.tilemap.HasMarkers(g.ids))

	state = g.Step(input(core.ActionStart)).State
	assert.True(t, state.Started)
}

func TestNoMarkersRemainAfterReset(t *testing.T) {
	cfg := testConfig()
	for _, l := range mustBuiltin(t, cfg) {
		g := New(cfg, l)
		g.Reset(testRuntime(7))
		assert.False(t, g.tilemap.HasMarkers(g.ids), l.ID)
		assert.Positive(t, g.ItemsLeft(), l.ID)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	level := mustBuiltin(t, cfg)[0]

	run := func() (core.GameState, [][]int, float64) {
		g := New(cfg, level)
		g.Reset(testRuntime(12345))
		g.Step(input(core.ActionStart))
		var state core.GameState
		for i := 0; i < 400; i++ {
			in := input(core.ActionRight)
			if i%40 == 0 {
				in.Set(core.ActionJump)
			}
			state = g.Step(in).State
		}
		return state, g.tilemap.Ground.Rows(), g.player.Box.X
	}

	s1, ground1, x1 := run()
	s2, ground2, x2 := run()
	assert.Equal(t, s1, s2)
	assert.Equal(t, ground1, ground2)
	assert.Equal(t, x1, x2)
}

func TestScoreNeverDecreases(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Spawner.EnemyRate = 30
	for _, l := range mustBuiltin(t, cfg) {
		g := New(cfg, l)
		g.Reset(testRuntime(99))
		g.Step(input(core.ActionStart))

		last := 0
		for i := 0; i < 1500 && !g.State().GameOver; i++ {
			in := input()
			switch (i / 90) % 3 {
			case 0:
				in.Set(core.ActionRight)
			case 1:
				in.Set(core.ActionLeft)
			}
			if i%25 == 0 {
				in.Set(core.ActionJump)
			}
			state := g.Step(in).State
			require.GreaterOrEqual(t, state.Score, last, l.ID)
			last = state.Score
		}
	}
}

func TestPauseFreezesTheRun(t *testing.T) {
	g := newGame(t, testConfig(), corridor...)
	g.Step(input(core.ActionStart))

	state := g.Step(input(core.ActionPause)).State
	require.True(t, state.Paused)
	x := g.player.Box.X

	for i := 0; i < 20; i++ {
		g.Step(input(core.ActionRight))
	}
	assert.Equal(t, x, g.player.Box.X)

	state = g.Step(input(core.ActionPause)).State
	assert.False(t, state.Paused)
}

func TestPlayerJumpsOnlyFromGround(t *testing.T) {
	g := newGame(t, testConfig(), corridor...)
	g.Step(input(core.ActionStart))
	g.Step(input())
	require.True(t, g.player.OnGround)
	groundY := g.player.Box.Y

	g.Step(input(core.ActionJump))
	assert.Less(t, g.player.Box.Y, groundY)
	assert.False(t, g.player.OnGround)

	// Ceiling of the corridor stops the jump; the player lands again
	stepUntil(g, input(core.ActionJump), 200, func(core.GameState) bool { return g.player.OnGround })
	assert.True(t, g.player.OnGround)
	assert.InDelta(t, groundY, g.player.Box.Y, 1e-9)
}

func TestGetTileAtAndMapOffset(t *testing.T) {
	cfg := testConfig()
	g := newGame(t, cfg, corridor...)

	assert.Equal(t, 0, g.GetTileAt(0.5, 0.5), "'#' is the first wall")
	assert.Equal(t, -1, g.GetTileAt(2.5, 1.5))
	assert.Equal(t, -1, g.GetTileAt(-3, 1), "outside the map")

	off := g.GetMapOffset()
	assert.Equal(t, 11, off.Width)
	assert.Equal(t, 3, off.Height)
	assert.Equal(t, (80-22)/2+1, off.X)
	assert.Equal(t, (24-3)/2, off.Y)
}

func TestRenderShowsHUDAndMessages(t *testing.T) {
	g := newGame(t, testConfig(), corridor...)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Arrow keys to move!")
	assert.Contains(t, out, "Press Spacebar to Start")

	g.Step(input(core.ActionStart))
	g.Render(screen)
	assert.NotContains(t, screen.String(), "Press Spacebar to Start")

	stepUntil(g, input(core.ActionRight), 300, func(s core.GameState) bool { return s.GameOver })
	g.Render(screen)
	out = screen.String()
	assert.Contains(t, out, "Game Over")
	assert.Contains(t, out, "All items collected!")
	assert.Contains(t, out, "Press Esc to restart")
}

func TestRenderSmallScreenDoesNotPanic(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	g := New(cfg, mustBuiltin(t, cfg)[0])
	g.Reset(testRuntime(1))

	assert.NotPanics(t, func() {
		g.Render(core.NewScreen(10, 5))
	})
}

func mustBuiltin(t *testing.T, cfg config.PlatformerConfig) []levels.Level {
	t.Helper()
	ls, err := levels.Builtin(cfg.Tiles.IDs())
	require.NoError(t, err)
	require.NotEmpty(t, ls)
	return ls
}

func TestWalkDistanceIgnoresTickRate(t *testing.T) {
	cfg := testConfig()
	rows := []string{
		"#################",
		"#P.........C#..E#",
		"#################",
	}

	walkOneSecond := func(tickRate int) float64 {
		g := New(cfg, parseLevel(t, cfg, rows...))
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: 3})
		g.Step(input(core.ActionStart))
		startX := g.player.Box.X
		for i := 0; i < tickRate; i++ {
			g.Step(input(core.ActionRight))
		}
		require.False(t, g.State().GameOver)
		return g.player.Box.X - startX
	}

	at30 := walkOneSecond(30)
	at60 := walkOneSecond(60)
	assert.InDelta(t, cfg.Physics.MoveSpeed, at30, 1.0/32)
	assert.InDelta(t, at30, at60, 1.0/32+1e-9)
}

func TestCollectedItemLeavesTheSpace(t *testing.T) {
	cfg := testConfig()
	g := newGame(t, cfg, corridor...)
	g.Step(input(core.ActionStart))

	stepUntil(g, input(core.ActionRight), 100, func(s core.GameState) bool { return s.Score > 0 })
	require.Equal(t, 1, g.ItemsLeft())
	assert.Len(t, g.world.touching(g.player.obj, tagItem), 0)
	assert.Zero(t, g.Enemies())
	assert.Empty(t, g.world.touching(g.player.obj, tagEnemy))
}
