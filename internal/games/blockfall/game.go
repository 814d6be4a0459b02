// Package blockfall adapts the falling-block engine to the platform game
// contract: it maps input actions onto engine calls, turns platform ticks
// into gravity steps and draws the board into a core.Screen.
package blockfall

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blockfall/internal/config"
	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
)

// Mode represents the game-over behavior.
type Mode string

const (
	// ModeClassic clears the board and keeps going when the stack tops out.
	ModeClassic Mode = "classic"
	// ModeHalt stops on a game over screen until restarted.
	ModeHalt Mode = "halt"
)

// Registered mode IDs.
const (
	IDClassic = "blockfall"
	IDHalt    = "blockfall_halt"
)

const hudHeight = 2 // title line + separator

// Package-level settings applied on the next Reset.
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the YAML config file used on the next Reset.
// An empty path uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger for config warnings. nil restores the silent default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the blockfall game for the platform.
type Game struct {
	mode   Mode
	cfg    config.BlockfallConfig
	colors []core.Color
	eng    *engine.Engine
	rng    *rand.Rand

	tick     uint64
	tickRate int
	dropRate int // gravity steps per second
	gravity  int // accumulated drop credit, one step per tickRate

	// Session counters
	locks      int
	best       int
	stepLocks  int
	scoreLabel int // last value seen through OnScoreChange

	// Screen layout
	screenW int
	screenH int
	boardX  int
	boardY  int

	paused   bool
	tooSmall bool

	lockHooks     []func(lines int)
	gameOverHooks []func(score, lines int)
	scoreHooks    []func(score int)
}

// New creates a game that resets itself on game over.
func New() *Game {
	return &Game{mode: ModeClassic, cfg: config.DefaultBlockfallConfig()}
}

// NewHalt creates a game that stops on a game over screen.
func NewHalt() *Game {
	return &Game{mode: ModeHalt, cfg: config.DefaultBlockfallConfig()}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDHalt, func() registry.Game {
		return NewHalt()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeHalt {
		return IDHalt
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeHalt {
		return "Blockfall (Game Over screen)"
	}
	return "Blockfall"
}

// OnLock registers fn to run after every piece lock with the number of
// rows it cleared. Hooks survive Reset.
func (g *Game) OnLock(fn func(lines int)) {
	g.lockHooks = append(g.lockHooks, fn)
}

// OnGameOver registers fn to run with the final score and cleared rows
// of a finished game. Hooks survive Reset.
func (g *Game) OnGameOver(fn func(score, lines int)) {
	g.gameOverHooks = append(g.gameOverHooks, fn)
}

// OnScoreChange registers fn to run whenever the score changes.
// Hooks survive Reset.
func (g *Game) OnScoreChange(fn func(score int)) {
	g.scoreHooks = append(g.scoreHooks, fn)
}

// SetBest sets the best score shown in the HUD.
func (g *Game) SetBest(score int) {
	g.best = score
}

// Reset loads the configuration and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	loaded, err := config.LoadBlockfall(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		loaded = config.DefaultBlockfallConfig()
	}
	g.cfg = loaded
	g.colors = loaded.TerminalColors()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickRate = cfg.WithDefaults().TickRate
	g.gravity = 0
	g.locks = 0
	g.stepLocks = 0
	g.scoreLabel = 0
	g.paused = false

	policy := engine.GameOverReset
	if g.mode == ModeHalt {
		policy = engine.GameOverHalt
	}
	ec, err := g.cfg.EngineConfig(g.rng.Int63(), policy)
	if err == nil {
		g.eng, err = engine.New(ec, engine.WithLogger(logger), engine.WithRand(g.rng))
	}
	if err != nil {
		logger.Error("invalid engine config, using defaults", "err", err)
		g.cfg = config.DefaultBlockfallConfig()
		g.colors = g.cfg.TerminalColors()
		ec, _ = g.cfg.EngineConfig(g.rng.Int63(), policy)
		g.eng, _ = engine.New(ec, engine.WithRand(g.rng))
	}
	g.dropRate = g.cfg.Gameplay.DropRate
	g.wireEngine()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// wireEngine forwards engine events to the session counters and hooks.
func (g *Game) wireEngine() {
	g.eng.OnScoreChange(func(score int) {
		g.scoreLabel = score
		if score > g.best {
			g.best = score
		}
		for _, fn := range g.scoreHooks {
			fn(score)
		}
	})
	g.eng.OnGameOver(func(score int) {
		lines := g.eng.Lines()
		for _, fn := range g.gameOverHooks {
			fn(score, lines)
		}
	})
	g.eng.OnLock(func(ev engine.LockEvent) {
		g.locks++
		g.stepLocks++
		for _, fn := range g.lockHooks {
			fn(ev.Lines)
		}
	})
}

// Resize recomputes the layout for a new screen size without touching
// the game in progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h

	boardW, boardH := g.boardSize()
	play := core.NewRect(0, 0, w, h).Below(hudHeight)
	g.tooSmall = !play.Fits(boardW+sidePanelWidth, boardH)
	if g.tooSmall {
		return
	}

	area := play.Centered(boardW+sidePanelWidth, boardH)
	g.boardX, g.boardY = area.X, area.Y
}

// boardSize returns the board frame size in screen cells.
func (g *Game) boardSize() (int, int) {
	return g.cfg.Board.Columns*g.cfg.Board.CellWidth + 2, g.cfg.Board.Rows + 2
}

// restart begins a new game, keeping configuration, hooks and best score.
func (g *Game) restart() {
	g.eng.Reset()
	g.locks = 0
	g.gravity = 0
	g.scoreLabel = 0
	g.paused = false
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.stepLocks = 0

	if input.Has(core.ActionRestart) {
		g.restart()
		return g.result()
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.eng.GameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.eng.GameOver() {
		return g.result()
	}

	g.processInput(input)

	// Gravity: dropRate steps per tickRate ticks, whatever the ratio
	g.gravity += g.dropRate
	for g.gravity >= g.tickRate {
		g.gravity -= g.tickRate
		g.eng.SoftDrop()
	}

	return g.result()
}

// processInput applies this tick's actions in a fixed order.
func (g *Game) processInput(input core.InputFrame) {
	if input.Has(core.ActionRotate) {
		g.eng.Rotate()
	}
	if input.Has(core.ActionLeft) {
		g.eng.Move(-1)
	}
	if input.Has(core.ActionRight) {
		g.eng.Move(1)
	}
	if input.Has(core.ActionSoftDrop) {
		g.eng.SoftDrop()
	}
	if input.Has(core.ActionHardDrop) {
		g.eng.HardDrop()
		g.gravity = 0 // fresh piece gets a full gravity interval
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Locks: g.stepLocks}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.GameOver(),
		Paused:   g.paused,
	}
}

// Lines returns the rows cleared in the current game. A halted game keeps
// its count until restart.
func (g *Game) Lines() int {
	if g.eng == nil {
		return 0
	}
	return g.eng.Lines()
}

// Config returns the configuration in effect.
func (g *Game) Config() config.BlockfallConfig {
	return g.cfg
}

// Best returns the best score known to this session.
func (g *Game) Best() int {
	return g.best
}

// Control describes one key binding for help displays.
type Control struct {
	Keys   string
	Action string
}

// Controls returns the key bindings the game responds to.
func Controls() []Control {
	return []Control{
		{"←/h/a  →/l/d", "move"},
		{"↑/w/k", "rotate"},
		{"↓/s/j", "soft drop"},
		{"space", "hard drop"},
		{"p/esc", "pause"},
		{"r", "restart"},
		{"q", "quit"},
	}
}
