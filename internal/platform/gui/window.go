// Package gui runs a scene in a desktop window using Ebitengine.
// The scene renders into the same cell buffer as in the terminal; each cell
// becomes one basicfont glyph or a filled block.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Pixel size of one screen cell. basicfont.Face7x13 glyphs plus one pixel
// of spacing.
const (
	CellPixelsW = 8
	CellPixelsH = 14

	glyphAscent = 11
)

// Scene is a simulation the window drives one tick per Update.
type Scene interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// ScoreSaver records finished runs.
type ScoreSaver interface {
	SaveScore(levelID string, score int, won bool) (int64, error)
}

// KeyState reports the state of one key during the current Update.
type KeyState func(ebiten.Key) bool

type binding struct {
	key    ebiten.Key
	action core.Action
}

// Held keys act on every tick they are down.
var heldBindings = []binding{
	{ebiten.KeyArrowLeft, core.ActionLeft},
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyArrowRight, core.ActionRight},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.KeyArrowUp, core.ActionJump},
	{ebiten.KeyW, core.ActionJump},
	{ebiten.KeyArrowDown, core.ActionDown},
	{ebiten.KeyS, core.ActionDown},
}

// Pressed keys act once per press.
var pressedBindings = []binding{
	{ebiten.KeySpace, core.ActionStart},
	{ebiten.KeyEscape, core.ActionRestart},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyQ, core.ActionQuit},
}

// PollInput builds the input frame for one tick.
func PollInput(held, justPressed KeyState) core.InputFrame {
	frame := core.NewInputFrame()
	for _, b := range heldBindings {
		if held(b.key) {
			frame.Set(b.action)
		}
	}
	for _, b := range pressedBindings {
		if justPressed(b.key) {
			frame.Set(b.action)
		}
	}
	// Opposite directions cancel out, as with a single terminal key.
	if frame.Has(core.ActionLeft) && frame.Has(core.ActionRight) {
		delete(frame.Actions, core.ActionLeft)
		delete(frame.Actions, core.ActionRight)
	}
	return frame
}

// Window implements ebiten.Game for one scene.
type Window struct {
	scene      Scene
	scores     ScoreSaver
	screen     *core.Screen
	config     core.RuntimeConfig
	state      core.GameState
	scoreSaved bool
	quitting   bool
}

// NewWindow creates a window sized to cfg.ScreenW x cfg.ScreenH cells.
// scores may be nil.
func NewWindow(scene Scene, scores ScoreSaver, cfg core.RuntimeConfig) *Window {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	scene.Reset(cfg)

	return &Window{
		scene:  scene,
		scores: scores,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
	}
}

// Update advances the scene by one tick.
func (w *Window) Update() error {
	return w.step(PollInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed))
}

func (w *Window) step(in core.InputFrame) error {
	if in.Has(core.ActionQuit) {
		w.quitting = true
		return ebiten.Termination
	}

	result := w.scene.Step(in)
	w.state = result.State

	switch {
	case !w.state.GameOver:
		w.scoreSaved = false
	case !w.scoreSaved:
		w.saveScore()
		w.scoreSaved = true
	}
	return nil
}

func (w *Window) saveScore() {
	if w.scores == nil || (w.state.Score == 0 && !w.state.Won) {
		return
	}
	//nolint:errcheck // Best-effort save, the scene continues regardless
	w.scores.SaveScore(w.scene.ID(), w.state.Score, w.state.Won)
}

// Draw renders the scene's cell buffer.
func (w *Window) Draw(dst *ebiten.Image) {
	dst.Fill(Background)
	w.scene.Render(w.screen)

	for y := range w.screen.Height() {
		for x := range w.screen.Width() {
			drawCell(dst, w.screen.GetCell(x, y), x, y)
		}
	}
}

// Layout keeps the logical size fixed to the cell grid; Ebitengine scales
// it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.screen.Width() * CellPixelsW, w.screen.Height() * CellPixelsH
}

// State returns the scene state after the last tick.
func (w *Window) State() core.GameState {
	return w.state
}

// IsQuitting reports whether the player pressed the quit key.
func (w *Window) IsQuitting() bool {
	return w.quitting
}

func drawCell(dst *ebiten.Image, c core.Cell, x, y int) {
	if c.Rune == ' ' || c.Rune == 0 {
		return
	}
	px, py := x*CellPixelsW, y*CellPixelsH
	col := RGBA(c.Color)

	if shade, ok := blockShades[c.Rune]; ok {
		col.A = shade
		vector.DrawFilledRect(dst, float32(px), float32(py), CellPixelsW, CellPixelsH, col, false)
		return
	}
	if !HasGlyph(c.Rune) {
		// Sprite symbols outside the font become a solid dot of the same color.
		vector.DrawFilledRect(dst, float32(px+1), float32(py+3), CellPixelsW-2, CellPixelsH-6, col, false)
		return
	}
	text.Draw(dst, string(c.Rune), basicfont.Face7x13, px, py+glyphAscent, col)
}

// blockShades maps shade characters to fill alpha.
var blockShades = map[rune]uint8{
	'█': 0xff,
	'▓': 0xc0,
	'▒': 0x80,
	'░': 0x40,
}

// HasGlyph reports whether basicfont.Face7x13 draws r: printable ASCII and
// the Latin-1 supplement.
func HasGlyph(r rune) bool {
	return (r >= 0x20 && r <= 0x7e) || (r >= 0xa1 && r <= 0xff)
}

// Background is the window clear color.
var Background = color.RGBA{0x10, 0x10, 0x18, 0xff}

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {0xd0, 0xd0, 0xd0, 0xff},
	core.ColorRed:           {0xcd, 0x31, 0x31, 0xff},
	core.ColorGreen:         {0x0d, 0xbc, 0x79, 0xff},
	core.ColorYellow:        {0xe5, 0xe5, 0x10, 0xff},
	core.ColorBlue:          {0x24, 0x72, 0xc8, 0xff},
	core.ColorMagenta:       {0xbc, 0x3f, 0xbc, 0xff},
	core.ColorCyan:          {0x11, 0xa8, 0xcd, 0xff},
	core.ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
	core.ColorBrightRed:     {0xf1, 0x4c, 0x4c, 0xff},
	core.ColorBrightGreen:   {0x23, 0xd1, 0x8b, 0xff},
	core.ColorBrightYellow:  {0xf5, 0xf5, 0x43, 0xff},
	core.ColorBrightBlue:    {0x3b, 0x8e, 0xea, 0xff},
	core.ColorBrightMagenta: {0xd6, 0x70, 0xd6, 0xff},
	core.ColorBrightCyan:    {0x29, 0xb8, 0xdb, 0xff},
	core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:        {0xff, 0x87, 0x00, 0xff},
	core.ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
	core.ColorDarkGray:      {0x44, 0x44, 0x44, 0xff},
}

// RGBA returns the window color for a cell color. Unknown colors fall back
// to the default foreground.
func RGBA(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}

// Run opens a window and plays the scene until it is closed or the player
// quits. scale multiplies the logical pixel size of the window.
func Run(scene Scene, scores ScoreSaver, cfg core.RuntimeConfig, scale int) error {
	if scale < 1 {
		scale = 1
	}
	w := NewWindow(scene, scores, cfg)
	lw, lh := w.Layout(0, 0)

	ebiten.SetWindowSize(lw*scale, lh*scale)
	ebiten.SetWindowTitle(fmt.Sprintf("Platformer - %s", scene.Title()))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gui: run: %w", err)
	}
	return nil
}
