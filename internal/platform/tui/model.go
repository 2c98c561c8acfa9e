package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runner-arcade/internal/core"
	"github.com/vovakirdan/runner-arcade/internal/registry"
)

// helpRows is the space kept below the scene for the key help line.
const helpRows = 1

// Model runs one game in the terminal.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	input     core.InputFrame
	state     core.GameState
	keys      GameKeyMap
	help      help.Model
	logger    *log.Logger
	quitting  bool
	announced bool // game over was logged for the current session
}

// NewModel creates a model for game. A nil logger discards output.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.ScreenH = sceneHeight(cfg.ScreenH)

	game.Reset(cfg)

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		input:  core.NewInputFrame(),
		state:  game.State(),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		logger: logger,
	}
}

func sceneHeight(h int) int {
	return max(h-helpRows, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles key, resize and tick messages.
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
	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.state.GameOver {
			m.input.Set(action)
		}
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleResize rebuilds the scene only while no session is in progress.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = sceneHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if !m.state.Started || m.state.GameOver {
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.announced = false
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input)
	m.input.Clear()

	switch {
	case result.State.GameOver && !m.announced:
		m.logger.Info("game over", "game", m.game.ID(), "score", result.State.Score)
		m.announced = true
	case !result.State.GameOver:
		m.announced = false
	}
	m.state = result.State

	return m, tickCmd(m.config.TickRate)
}

// State returns the game state seen at the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// View draws the scene and the key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run plays game until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) (core.GameState, error) {
	p := tea.NewProgram(NewModel(game, cfg, logger), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if m, ok := final.(Model); ok {
		return m.State(), nil
	}
	return core.GameState{}, nil
}
