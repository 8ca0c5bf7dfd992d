package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-origami/internal/core"
	"github.com/vovakirdan/tui-origami/internal/registry"
	"github.com/vovakirdan/tui-origami/internal/storage"
)

// Model is the Bubble Tea model for playing one game mode.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	levelStart time.Time
	savedFor   string // session ID of the last stored solve
	now        func() time.Time
	quitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		now:        time.Now,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	return m
}

// gameHeight is the screen height left once the help bar is drawn.
func (m Model) gameHeight() int {
	return max(m.config.ScreenH-m.helpHeight(), 0)
}

func (m Model) helpHeight() int {
	return strings.Count(m.help.View(m.keys.Keys), "\n") + 1
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.handleResize(m.config.ScreenW, m.config.ScreenH)
	case key.Matches(msg, m.keys.Keys.Back):
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the game and help bar sized to the terminal.
// The game keeps its folds across resizes.
func (m Model) handleResize(width, height int) (tea.Model, tea.Cmd) {
	m.config.ScreenW = width
	m.config.ScreenH = height
	m.help.Width = width
	m.screen.Resize(width, m.gameHeight())
	m.game.Reset(m.gameConfig())
	return m, nil
}

// handleTick steps the game with the keys collected since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	if result.State.SessionID != m.gameState.SessionID {
		m.levelStart = m.now()
	}
	if result.JustSolved && result.State.SessionID != m.savedFor {
		m.saveSolve(result.State)
		m.savedFor = result.State.SessionID
	}
	m.gameState = result.State

	return m, tickCmd(m.config.TickRate)
}

// saveSolve records a solve. Practice sheets are only logged. Failures are
// logged and play continues.
func (m Model) saveSolve(st core.GameState) {
	elapsed := m.now().Sub(m.levelStart)
	m.logger.Info("puzzle solved",
		"puzzle", st.Level,
		"folds", st.Moves,
		"undos", st.Undos,
		"elapsed", elapsed.Round(time.Millisecond),
	)
	if m.store == nil || st.Practice {
		return
	}

	best, err := m.store.BestFolds(st.Level)
	if err != nil {
		m.logger.Warn("could not read best solve", "puzzle", st.Level, "error", err)
	} else if best == 0 || st.Moves < best {
		m.logger.Info("new best", "puzzle", st.Level, "folds", st.Moves, "previous", best)
	}

	_, err = m.store.SaveSolve(storage.SolveRecord{
		SessionID: st.SessionID,
		PuzzleID:  st.Level,
		Folds:     st.Moves,
		Undos:     st.Undos,
		Duration:  elapsed,
	})
	if err != nil {
		m.logger.Warn("could not save solve", "puzzle", st.Level, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".origami", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := m.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.gameState.Level, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + theme.HelpBar.Render(m.help.View(m.keys.Keys))
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the puzzle list.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
// Returns true if user wants to go back to the picker, false if quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (goBack bool, err error) {
	model := NewModel(game, store, cfg, logger)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
