package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the level sidebar
	sidebarWidth       = 22  // Width of the level sidebar
	maxScores          = 100 // Max scores to load
)

var (
	borderColor    = lipgloss.Color("240")
	highlightColor = lipgloss.Color("229")
	dimColor       = lipgloss.Color("241")
)

// ScoreReader loads score history. *storage.Store implements it.
type ScoreReader interface {
	TopScores(levelID string, limit int) ([]storage.ScoreEntry, error)
	GetLevelStats(levelID string) (*storage.LevelStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/right", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/left", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	levels    []LevelInfo
	cursor    int // Selected level
	scores    ScoreReader
	entries   []storage.ScoreEntry
	stats     *storage.LevelStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over the given levels. scores may be nil.
func NewScoreboardModel(levels []LevelInfo, scores ScoreReader, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		levels: levels,
		scores: scores,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

func (m *ScoreboardModel) newTable() table.Model {
	width := m.width - 4
	if m.showSidebar() {
		width -= sidebarWidth + 3
	}
	dateWidth := core.Clamp(width-30, 12, 20)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Result", Width: 8},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(highlightColor).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads scores and stats of the selected level into the table.
func (m *ScoreboardModel) load() {
	m.entries, m.stats = nil, nil
	if m.scores != nil && len(m.levels) > 0 {
		id := m.levels[m.cursor].ID
		if entries, err := m.scores.TopScores(id, maxScores); err == nil {
			m.entries = entries
		}
		if stats, err := m.scores.GetLevelStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		result := "lost"
		if e.Won {
			result = "won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			result,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) moveLevel(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.levels)) % len(m.levels)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.moveLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.moveLevel(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.levels[m.cursor].Title)
	}

	var b strings.Builder
	b.WriteString(centerText(lipgloss.NewStyle().Bold(true).Foreground(highlightColor).Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(lipgloss.NewStyle().Foreground(dimColor).Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	if m.showSidebar() {
		sidebar := panel.Width(sidebarWidth).Render(m.renderLevelList())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", panel.Render(m.renderTable())))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.currentTitle()), m.width))
		b.WriteString("\n\n")
		b.WriteString(panel.Render(m.renderTable()))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(dimColor).Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) currentTitle() string {
	if len(m.levels) == 0 {
		return "-"
	}
	return m.levels[m.cursor].Title
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs yet"
	}
	return fmt.Sprintf("runs %d  |  wins %d  |  best %d  |  avg %.0f",
		m.stats.Runs, m.stats.Wins, m.stats.HighScore, m.stats.AvgScore)
}

func (m ScoreboardModel) renderLevelList() string {
	var b strings.Builder
	b.WriteString("Levels\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	for i, l := range m.levels {
		name := truncate(l.Title, sidebarWidth-6)
		if i == m.cursor {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(highlightColor).Render("> " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m ScoreboardModel) renderTable() string {
	if len(m.entries) == 0 {
		return lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Padding(2, 4).
			Render("No scores recorded yet.\nFinish a run to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(levels []LevelInfo, scores ScoreReader, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(levels, scores, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
