package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/core"
	"github.com/vovakirdan/runner-arcade/internal/registry"
)

// presets is the cycle order of the difficulty selector.
var presets = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
	config.DifficultyEasy,
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	presetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// MenuModel lets the user pick a runner variant and a difficulty.
type MenuModel struct {
	games    []registry.GameInfo
	table    table.Model
	help     help.Model
	keys     MenuKeyMap
	preset   int
	config   core.RuntimeConfig
	selected *registry.GameInfo
	quitting bool
}

// NewMenuModel lists every registered game.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		games:  registry.List(),
		help:   help.New(),
		keys:   DefaultMenuKeyMap(),
		config: cfg,
	}
	m.table = m.createTable()
	return m
}

func (m *MenuModel) createTable() table.Model {
	descW := max(m.config.ScreenW-4-16-18, 20)
	columns := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Game", Width: 18},
		{Title: "Rules", Width: descW},
	}

	rows := make([]table.Row, len(m.games))
	for i, g := range m.games {
		rows[i] = table.Row{g.ID, g.Title, g.Description}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(min(len(rows)+1, m.config.ScreenH-8), 2)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation, difficulty cycling and selection.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.games) > 0 {
				g := m.games[m.table.Cursor()]
				m.selected = &g
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil

		case key.Matches(msg, m.keys.NextPreset):
			m.preset = (m.preset + 1) % len(presets)
			return m, nil

		case key.Matches(msg, m.keys.PrevPreset):
			m.preset = (m.preset + len(presets) - 1) % len(presets)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m MenuModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("R U N N E R", m.config.ScreenW)))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString("  Difficulty: ")
	b.WriteString(presetStyle.Render(string(m.Preset())))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Preset returns the difficulty currently shown.
func (m MenuModel) Preset() config.DifficultyPreset {
	return presets[m.preset]
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// MenuResult is what the picker returns to the caller.
type MenuResult struct {
	GameID string
	Preset config.DifficultyPreset
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu shows the picker until the user selects or quits.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.Selected() == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return MenuResult{
		GameID: m.Selected().ID,
		Preset: m.Preset(),
		Config: m.Config(),
	}, nil
}
