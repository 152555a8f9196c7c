package gui

import (
	"errors"
	"maps"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type fakeScene struct {
	state  core.GameState
	steps  int
	resets int
	last   core.InputFrame
}

func (s *fakeScene) ID() string { return "test" }
func (s *fakeScene) Title() string { return "Test" }
func (s *fakeScene) Reset(core.RuntimeConfig) { s.resets++ }
func (s *fakeScene) Render(dst *core.Screen) { dst.DrawText(0, 0, "hi") }
func (s *fakeScene) State() core.GameState { return s.state }
func (s *fakeScene) Step(in core.InputFrame) core.StepResult {
	s.steps++
	s.last = core.InputFrame{Actions: maps.Clone(in.Actions)}
	return core.StepResult{State: s.state}
}

type fakeSaver struct {
	saved []int
}

func (f *fakeSaver) SaveScore(_ string, score int, _ bool) (int64, error) {
	f.saved = append(f.saved, score)
	return int64(len(f.saved)), nil
}

func keys(pressed ...ebiten.Key) KeyState {
	return func(k ebiten.Key) bool {
		for _, p := range pressed {
			if p == k {
				return true
			}
		}
		return false
	}
}

func TestPollInput(t *testing.T) {
	tests := []struct {
		name     string
		held     KeyState
		just     KeyState
		expected []core.Action
	}{
		{"nothing", keys(), keys(), nil},
		{"arrow left", keys(ebiten.KeyArrowLeft), keys(), []core.Action{core.ActionLeft}},
		{"wasd", keys(ebiten.KeyD, ebiten.KeyW), keys(), []core.Action{core.ActionRight, core.ActionJump}},
		{"both directions cancel", keys(ebiten.KeyArrowLeft, ebiten.KeyArrowRight), keys(), nil},
		{"space starts", keys(), keys(ebiten.KeySpace), []core.Action{core.ActionStart}},
		{"escape restarts", keys(), keys(ebiten.KeyEscape), []core.Action{core.ActionRestart}},
		{"held space is ignored", keys(ebiten.KeySpace), keys(), nil},
		{"pause and walk", keys(ebiten.KeyA), keys(ebiten.KeyP), []core.Action{core.ActionLeft, core.ActionPause}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := PollInput(tc.held, tc.just)
			assert.Len(t, frame.Actions, len(tc.expected))
			for _, a := range tc.expected {
				assert.True(t, frame.Has(a), "expected %s", a)
			}
		})
	}
}

func TestWindowStepsAndSavesOnce(t *testing.T) {
	scene := &fakeScene{}
	saver := &fakeSaver{}
	w := NewWindow(scene, saver, core.RuntimeConfig{ScreenW: 10, ScreenH: 4, TickRate: 60, Seed: 1})
	require.Equal(t, 1, scene.resets)

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	require.NoError(t, w.step(in))
	assert.True(t, scene.last.Has(core.ActionLeft))

	scene.state = core.GameState{Score: 30, GameOver: true}
	require.NoError(t, w.step(core.NewInputFrame()))
	require.NoError(t, w.step(core.NewInputFrame()))
	assert.Equal(t, []int{30}, saver.saved)

	scene.state = core.GameState{Started: true}
	require.NoError(t, w.step(core.NewInputFrame()))
	scene.state = core.GameState{Score: 50, GameOver: true, Won: true}
	require.NoError(t, w.step(core.NewInputFrame()))
	assert.Equal(t, []int{30, 50}, saver.saved)
}

func TestWindowSkipsEmptyLoss(t *testing.T) {
	scene := &fakeScene{state: core.GameState{GameOver: true}}
	saver := &fakeSaver{}
	w := NewWindow(scene, saver, core.RuntimeConfig{ScreenW: 10, ScreenH: 4, Seed: 1})

	require.NoError(t, w.step(core.NewInputFrame()))
	assert.Empty(t, saver.saved)
}

func TestWindowQuit(t *testing.T) {
	scene := &fakeScene{}
	w := NewWindow(scene, nil, core.RuntimeConfig{ScreenW: 10, ScreenH: 4, Seed: 1})

	in := core.NewInputFrame()
	in.Set(core.ActionQuit)
	err := w.step(in)

	assert.True(t, errors.Is(err, ebiten.Termination))
	assert.True(t, w.IsQuitting())
	assert.Equal(t, 0, scene.steps)
}

func TestWindowLayout(t *testing.T) {
	w := NewWindow(&fakeScene{}, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	lw, lh := w.Layout(1920, 1080)
	assert.Equal(t, 80*CellPixelsW, lw)
	assert.Equal(t, 24*CellPixelsH, lh)
}

func TestGlyphsAndColors(t *testing.T) {
	assert.True(t, HasGlyph('S'))
	assert.True(t, HasGlyph('·'))
	assert.True(t, HasGlyph('ó'))
	assert.False(t, HasGlyph('☺'))
	assert.False(t, HasGlyph('ᴥ'))

	assert.Equal(t, palette[core.ColorOrange], RGBA(core.ColorOrange))
	assert.Equal(t, palette[core.ColorDefault], RGBA(core.Color(200)))
	assert.Equal(t, uint8(0xff), RGBA(core.ColorDarkGray).A)
}
