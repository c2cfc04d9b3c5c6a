package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var logger = log.Default().WithPrefix("tui")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// helpHeight is the number of rows below the game screen.
const helpHeight = 1

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       PlayKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	saved      bool // result of the current game over already stored
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case results are not saved.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1)),
		store:      store,
		config:     cfg,
		keys:       DefaultPlayKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop. The game must already be Reset.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
		m.help.Width = msg.Width
		return m, nil

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

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick steps the game with the keys pressed since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver
	m.gameState = m.game.Step(m.inputFrame).State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		m.saved = false
	}
	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished game. Failures are logged, play goes on.
func (m *Model) saveResult() {
	st := m.gameState.Stats
	if m.store == nil || st.Pieces == 0 {
		return
	}
	id, err := m.store.SaveResult(storage.Result{
		GameID:   m.game.ID(),
		Lines:    st.Lines,
		Pieces:   st.Pieces,
		Spins:    st.Spins,
		Holds:    st.Holds,
		Tetrises: st.Tetrises,
		Duration: st.Elapsed,
	})
	if err != nil {
		logger.Error("save result", "err", err)
		return
	}
	logger.Info("result saved", "id", id, "game", m.game.ID(), "lines", st.Lines)
}

// saveScreenshot writes the current screen as plain text under the XDG
// data directory.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	name := fmt.Sprintf("tui-tetris/screenshots/%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path, err := xdg.DataFile(name)
	if err != nil {
		logger.Warn("screenshot path", "err", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("screenshot", "err", err)
	}
}

// View renders the game screen and a help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run resets the game and plays it until the user quits. It returns the
// state of the game at exit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (core.GameState, error) {
	model := NewModel(game, store, cfg)
	game.Reset(model.config)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return game.State(), err
	}
	if fm, ok := final.(Model); ok {
		return fm.GameState(), nil
	}
	return game.State(), nil
}
