package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-origami/internal/config"
	"github.com/vovakirdan/tui-origami/internal/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels"
	"github.com/vovakirdan/tui-origami/internal/games/origami/puzzles"
	"github.com/vovakirdan/tui-origami/internal/registry"
	"github.com/vovakirdan/tui-origami/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.origami/host_key.
	HostKeyPath string

	// DBPath is the path to the solves database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the game tick rate of every session.
	TickRate int

	// Game configures each session's puzzles and display.
	Game registry.Options

	// Scoring rates solves in the picker and records screens.
	Scoring config.ScoringConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.origami/origami.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Scoring:     config.DefaultOrigamiConfig().Scoring,
	}
}

// SSHServer wraps a Wish SSH server that serves the puzzle picker.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	levels []levels.Level
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger writes to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "origami-ssh",
		})
	}

	fsys := cfg.Game.Levels
	if fsys == nil {
		fsys = puzzles.FS()
	}
	lvls, err := levels.NewFSLoader(fsys).WithLogger(logger).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot load puzzles: %w", err)
	}
	if len(lvls) == 0 {
		return nil, errors.New("cannot serve without puzzles")
	}

	hostKeyPath, err := hostKeyFile(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open solves database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		levels: lvls,
		logger: logger,
	}

	// Middlewares run last to first
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// hostKeyFile returns the host key location, defaulting to
// ~/.origami/host_key, and makes sure its directory exists.
func hostKeyFile(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".origami", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.levels, s.store, s.config.Game, s.config.Scoring, cfg, logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "puzzles", len(s.levels))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenPicker sessionScreen = iota
	screenRecords
	screenGame
)

// SessionModel manages the full flow of one player:
// picker -> game -> picker, with the records screen on the side.
type SessionModel struct {
	levels  []levels.Level
	store   *storage.Store
	opts    registry.Options
	scoring config.ScoringConfig
	config  core.RuntimeConfig
	logger  *log.Logger

	screen   sessionScreen
	picker   PickerModel
	records  RecordsModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(lvls []levels.Level, store *storage.Store, opts registry.Options, scoring config.ScoringConfig, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		levels:  lvls,
		store:   store,
		opts:    opts,
		scoring: scoring,
		config:  cfg,
		logger:  logger,
		picker:  NewPickerModel(lvls, store, scoring, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	default:
		return m.updatePicker(msg)
	}
}

// updatePicker handles updates when in the puzzle picker.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(PickerModel); ok {
		m.picker = picker
	}

	switch {
	case m.picker.IsQuitting(), m.picker.WantsBack():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsRecords():
		m.screen = screenRecords
		m.records = NewRecordsModel(m.levels, m.store, m.scoring, m.config.ScreenW, m.config.ScreenH)
		return m, m.records.Init()

	case m.picker.Selected() != nil:
		return m.startGame(*m.picker.Selected())
	}

	// the picker quits its own program; inside a session it must not
	return m, filterQuit(cmd)
}

// startGame creates the selected game mode.
func (m SessionModel) startGame(sel PickerSelection) (tea.Model, tea.Cmd) {
	opts := m.opts
	opts.StartLevel = sel.Level

	game, err := registry.Create(sel.Mode, opts)
	if err != nil {
		m.logger.Error("cannot start game", "mode", sel.Mode, "error", err)
		m.picker = NewPickerModel(m.levels, m.store, m.scoring, m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	m.logger.Info("game started", "mode", sel.Mode, "puzzle", sel.Level)
	model := NewModel(game, m.store, m.config, m.logger)
	m.game = &model
	m.screen = screenGame
	return m, m.game.Init()
}

// updateRecords handles updates on the records screen.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	if records, ok := next.(RecordsModel); ok {
		m.records = records
	}

	switch {
	case m.records.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.records.IsGoingBack():
		return m.backToPicker()
	}
	return m, filterQuit(cmd)
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.game = nil
		return m.backToPicker()
	}
	return m, cmd
}

// backToPicker rebuilds the picker so it shows fresh records.
func (m SessionModel) backToPicker() (tea.Model, tea.Cmd) {
	m.screen = screenPicker
	m.picker = NewPickerModel(m.levels, m.store, m.scoring, m.config.ScreenW, m.config.ScreenH)
	return m, m.picker.Init()
}

// filterQuit drops tea.Quit, which the sub-screens return when they finish.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenRecords:
		return m.records.View()
	}
	return m.picker.View()
}
