package tui

import (
	"maps"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// fakeScene records inputs and ends the run on demand.
type fakeScene struct {
	resets int
	seeds  []int64
	inputs []core.InputFrame
	state  core.GameState
}

func (s *fakeScene) ID() string { return "fake" }
func (s *fakeScene) Title() string { return "Fake" }
func (s *fakeScene) Reset(cfg core.RuntimeConfig) {
	s.resets++
	s.seeds = append(s.seeds, cfg.Seed)
	s.state = core.GameState{}
}
func (s *fakeScene) State() core.GameState { return s.state }
func (s *fakeScene) Render(dst *core.Screen) { dst.Clear(); dst.DrawText(0, 0, "fake scene") }
func (s *fakeScene) Step(in core.InputFrame) core.StepResult {
	s.inputs = append(s.inputs, core.InputFrame{Actions: maps.Clone(in.Actions)})
	if in.Has(core.ActionStart) {
		s.state.Started = true
	}
	return core.StepResult{State: s.state}
}

type savedScore struct {
	level string
	score int
	won   bool
}

type fakeSaver struct {
	saved []savedScore
}

func (f *fakeSaver) SaveScore(levelID string, score int, won bool) (int64, error) {
	f.saved = append(f.saved, savedScore{levelID, score, won})
	return int64(len(f.saved)), nil
}

func testModel(scene *fakeScene, saver ScoreSaver) Model {
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
	m := NewModel(scene, saver, cfg, 3)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

func TestModelHoldsWalkingKeys(t *testing.T) {
	scene := &fakeScene{}
	m := testModel(scene, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}

	require.Len(t, scene.inputs, 5)
	for i := 0; i < 3; i++ {
		assert.True(t, scene.inputs[i].Has(core.ActionRight), "tick %d", i)
	}
	assert.False(t, scene.inputs[3].Has(core.ActionRight))
}

func TestModelOneShotActionsLastOneTick(t *testing.T) {
	scene := &fakeScene{}
	m := testModel(scene, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	assert.True(t, scene.inputs[0].Has(core.ActionStart))
	assert.False(t, scene.inputs[1].Has(core.ActionStart))
	assert.True(t, m.State().Started)
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	scene := &fakeScene{}
	saver := &fakeSaver{}
	m := testModel(scene, saver)

	scene.state = core.GameState{Score: 110, GameOver: true, Won: true}
	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg{})
	}
	require.Len(t, saver.saved, 1)
	assert.Equal(t, savedScore{"fake", 110, true}, saver.saved[0])

	// The scene restarted itself; the next game over is saved again
	scene.state = core.GameState{Started: true}
	m = update(t, m, TickMsg{})
	scene.state = core.GameState{Score: 20, GameOver: true}
	m = update(t, m, TickMsg{})
	assert.Len(t, saver.saved, 2)
}

func TestModelSkipsEmptyLoss(t *testing.T) {
	scene := &fakeScene{}
	saver := &fakeSaver{}
	m := testModel(scene, saver)

	scene.state = core.GameState{GameOver: true}
	update(t, m, TickMsg{})
	assert.Empty(t, saver.saved)
}

func TestModelBackOnlyOutsideARun(t *testing.T) {
	scene := &fakeScene{}
	m := testModel(scene, nil)

	scene.state = core.GameState{Started: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("b"))
	assert.False(t, m.BackToMenu(), "mid-run")

	scene.state = core.GameState{GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("b"))
	assert.True(t, m.BackToMenu())
}

func TestModelResizeKeepsTheRun(t *testing.T) {
	scene := &fakeScene{}
	m := testModel(scene, nil)
	require.Equal(t, 1, scene.resets)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 1, scene.resets)
	assert.Equal(t, 100, m.Config().ScreenW)
	assert.Equal(t, 30, m.Config().ScreenH)
}

func TestModelQuit(t *testing.T) {
	m := testModel(&fakeScene{}, nil)

	next, cmd := m.Update(runeKey("q"))
	assert.NotNil(t, cmd)
	assert.True(t, next.(Model).IsQuitting())
	assert.Empty(t, next.(Model).View())
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "Score:", core.ColorBrightWhite)
	s.DrawTextColored(7, 0, "10", core.ColorYellow)
	s.DrawText(0, 1, "Game Over")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, out, "Score:")
	assert.Contains(t, out, "10")
	assert.Contains(t, lines[1], "Game Over")
}
