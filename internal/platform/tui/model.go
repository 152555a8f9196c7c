package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Scene is a simulation the front-end drives one tick at a time.
type Scene interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// ScoreSaver records finished runs. *storage.Store implements it.
type ScoreSaver interface {
	SaveScore(levelID string, score int, won bool) (int64, error)
}

var _ ScoreSaver = (*storage.Store)(nil)

// Model is the Bubble Tea model running one scene.
type Model struct {
	scene      Scene
	screen     *core.Screen
	scores     ScoreSaver
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	held       heldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game over has been recorded
}

// NewModel creates a model for the scene. holdTicks is how long a walking
// key press lasts. scores may be nil.
func NewModel(scene Scene, scores ScoreSaver, cfg core.RuntimeConfig, holdTicks int) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:     scores,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		held:       newHeldKeys(holdTicks),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the scene and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		// Leaving mid-run is only allowed while paused or before the start.
		if m.gameState.GameOver || m.gameState.Paused || !m.gameState.Started {
			m.backToMenu = true
			return m, tea.Quit
		}
	case action == core.ActionLeft, action == core.ActionRight:
		m.held.Press(action)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the run going; the scene centres itself on the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.held.Apply(&m.inputFrame)

	result := m.scene.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case !m.gameState.GameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
		m.held.Release()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) saveScore() {
	if m.scores == nil || (m.gameState.Score == 0 && !m.gameState.Won) {
		return
	}
	//nolint:errcheck // Best-effort save, the scene continues regardless
	m.scores.SaveScore(m.scene.ID(), m.gameState.Score, m.gameState.Won)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.scene.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, the scene continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the scene state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Run plays the scene in the terminal until the user quits or goes back.
// It reports whether the user asked for the menu.
func Run(scene Scene, scores ScoreSaver, cfg core.RuntimeConfig, holdTicks int) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(scene, scores, cfg, holdTicks),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
