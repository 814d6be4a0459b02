package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

// LockCue is notified after every piece lock, e.g. to play a sound.
type LockCue interface {
	PlayLock(lines int)
}

// Optional game capabilities the model wires up when present.
type (
	lockNotifier interface {
		OnLock(fn func(lines int))
	}
	gameOverNotifier interface {
		OnGameOver(fn func(score, lines int))
	}
	bestSetter interface {
		SetBest(score int)
	}
	resizer interface {
		Resize(w, h int)
	}
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	renderer   *ScreenRenderer
	logger     *log.Logger
	cue        LockCue
	player     string
	shotDir    string

	allowBack  bool // b returns to the menu when paused or game over
	embedded   bool // a parent model handles leaving the game
	gen        int  // tick generation
	quitting   bool
	backToMenu bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for best-effort failures.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLockCue plays c after every lock.
func WithLockCue(c LockCue) Option {
	return func(m *Model) {
		m.cue = c
	}
}

// WithPlayer sets the name scores are saved under.
func WithPlayer(name string) Option {
	return func(m *Model) {
		if name != "" {
			m.player = name
		}
	}
}

// WithBackToMenu lets the player leave a paused or finished game with b.
func WithBackToMenu() Option {
	return func(m *Model) {
		m.allowBack = true
	}
}

// WithScreenshotDir overrides the directory for ctrl+s screenshots.
func WithScreenshotDir(dir string) Option {
	return func(m *Model) {
		m.shotDir = dir
	}
}

func withRenderer(r *ScreenRenderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

func withEmbedded() Option {
	return func(m *Model) {
		m.embedded = true
	}
}

// withGeneration tags the model's tick loop so ticks of earlier games in
// the same program are ignored.
func withGeneration(gen int) Option {
	return func(m *Model) {
		m.gen = gen
	}
}

// NewModel creates a new Bubble Tea model for the given game.
// Scores are saved and the lock cue is played through the game's hooks,
// so hooks are registered exactly once here.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	cfg = cfg.WithDefaults()
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		renderer:   defaultScreenRenderer,
		logger:     log.New(io.Discard),
		player:     "local",
		shotDir:    filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots"),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.wireGame()
	return m
}

// wireGame subscribes score saving and the lock cue to the game's events
// and seeds the HUD with the stored best score.
func (m Model) wireGame() {
	if b, ok := m.game.(bestSetter); ok && m.store != nil {
		best, err := m.store.HighScore(m.game.ID())
		if err != nil {
			m.logger.Warn("could not load best score", "game", m.game.ID(), "err", err)
		} else {
			b.SetBest(best)
		}
	}

	if n, ok := m.game.(gameOverNotifier); ok {
		store, logger := m.store, m.logger
		id, player := m.game.ID(), m.player
		n.OnGameOver(func(score, lines int) {
			saveScore(store, logger, id, player, score, lines)
		})
	}

	if n, ok := m.game.(lockNotifier); ok && m.cue != nil {
		n.OnLock(m.cue.PlayLock)
	}
}

// saveScore stores a finished game. Zero scores are not recorded.
func saveScore(store *storage.Store, logger *log.Logger, gameID, player string, score, lines int) {
	if store == nil || score <= 0 {
		return
	}
	if _, err := store.SaveScore(gameID, player, score, lines); err != nil {
		logger.Warn("could not save score", "game", gameID, "err", err)
		return
	}
	logger.Info("score saved", "game", gameID, "player", player, "score", score, "lines", lines)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("could not save screenshot", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.allowBack && (m.gameState.Paused || m.gameState.GameOver) {
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without a layout hook are restarted at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScreenshot writes the current screen as plain text and returns its path.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game and reports whether the
// player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
