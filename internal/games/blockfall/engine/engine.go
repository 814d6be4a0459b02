package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Defaults taken from the classic layout.
const (
	DefaultRows      = 20
	DefaultColumns   = 10
	DefaultDropRate  = 5 // gravity steps per second
	DefaultLineBonus = 100
	DefaultSpawnX    = 3
)

// Sentinel errors returned by New.
var (
	ErrNoShapes          = errors.New("engine: shape list is empty")
	ErrPaletteTooShort   = errors.New("engine: palette shorter than shape list")
	ErrInvalidDimensions = errors.New("engine: grid dimensions must be positive")
)

// DefaultPalette holds the seven classic piece colors.
var DefaultPalette = []string{
	"#00FFFF",
	"#FF5733",
	"#FFD700",
	"#32CD32",
	"#FF6347",
	"#8A2BE2",
	"#FF1493",
}

// DefaultShapes returns the classic shape list: a single horizontal bar.
func DefaultShapes() []Shape {
	return []Shape{MustParseShape("XXXX")}
}

// GameOverPolicy selects what happens when a new piece cannot spawn.
type GameOverPolicy int

const (
	// GameOverReset clears the board and keeps playing.
	GameOverReset GameOverPolicy = iota
	// GameOverHalt stops the engine until Reset is called.
	GameOverHalt
)

// String returns the policy name used in configs and logs.
func (p GameOverPolicy) String() string {
	switch p {
	case GameOverReset:
		return "reset"
	case GameOverHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// Config describes an engine instance.
type Config struct {
	Rows      int
	Columns   int
	SpawnX    int
	LineBonus int
	Shapes    []Shape
	Palette   []string
	Seed      int64
	GameOver  GameOverPolicy
}

// DefaultConfig returns the classic 20x10 configuration.
func DefaultConfig() Config {
	return Config{
		Rows:      DefaultRows,
		Columns:   DefaultColumns,
		SpawnX:    DefaultSpawnX,
		LineBonus: DefaultLineBonus,
		Shapes:    DefaultShapes(),
		Palette:   append([]string(nil), DefaultPalette...),
		GameOver:  GameOverReset,
	}
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand sets the random source used by the piece factory.
// It takes precedence over Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// LockEvent describes a completed lock sequence.
type LockEvent struct {
	Lines int // rows cleared by this lock
}

// State is a read-only snapshot of the engine. It shares no storage with
// the engine.
type State struct {
	Grid     *Grid
	Piece    Piece
	Score    int
	Lines    int // rows cleared since the last reset
	GameOver bool
}

// Engine owns the grid, the active piece and the score.
// It is not safe for concurrent use.
type Engine struct {
	cfg     Config
	grid    *Grid
	piece   Piece
	score   int
	lines   int
	halted  bool
	factory *Factory
	rng     *rand.Rand
	logger  *log.Logger

	onLock        []func(LockEvent)
	onScoreChange []func(int)
	onGameOver    []func(int)
}

// New validates cfg and returns an engine with an empty grid and one
// spawned piece.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Rows <= 0 || cfg.Columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Rows, cfg.Columns)
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	f, err := NewFactory(cfg.Shapes, cfg.Palette, cfg.SpawnX, e.rng, e.logger)
	if err != nil {
		return nil, err
	}
	e.factory = f
	e.grid = NewGrid(cfg.Rows, cfg.Columns)
	e.piece = e.factory.CreatePiece()
	return e, nil
}

// Reset empties the grid, zeroes the score and line count, clears a halted
// game over and spawns a new piece. Score subscribers are notified if the
// score changed.
func (e *Engine) Reset() {
	prev := e.score
	e.grid.Clear()
	e.score = 0
	e.lines = 0
	e.halted = false
	e.piece = e.factory.CreatePiece()
	if prev != 0 {
		e.emitScore()
	}
}

// Move shifts the piece one column. dir must be -1 (left) or +1 (right);
// any other value, a blocked move, or a halted engine is a no-op.
func (e *Engine) Move(dir int) {
	if e.halted || (dir != -1 && dir != 1) {
		return
	}
	e.try(e.piece.Translated(dir, 0))
}

// Rotate turns the piece a quarter turn if the result fits.
// There are no wall kicks.
func (e *Engine) Rotate() {
	if e.halted {
		return
	}
	e.try(e.piece.Rotated())
}

// SoftDrop moves the piece down one row, locking it if it cannot move.
func (e *Engine) SoftDrop() {
	if e.halted {
		return
	}
	if !e.try(e.piece.Translated(0, 1)) {
		e.lock()
	}
}

// HardDrop moves the piece to its landing row and locks it.
func (e *Engine) HardDrop() {
	if e.halted {
		return
	}
	e.piece.Y = e.landingRow()
	e.lock()
}

// ShadowRow returns the row the piece would occupy after a hard drop.
func (e *Engine) ShadowRow() int {
	return e.landingRow()
}

// State returns a deep copy of the current state.
func (e *Engine) State() State {
	return State{
		Grid:     e.grid.Clone(),
		Piece:    e.piece.Clone(),
		Score:    e.score,
		Lines:    e.lines,
		GameOver: e.halted,
	}
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the rows cleared since the last reset. It already counts
// the final lock when read from an OnGameOver callback.
func (e *Engine) Lines() int { return e.lines }

// GameOver reports whether a halted game over is in effect.
func (e *Engine) GameOver() bool { return e.halted }

// OnLock registers fn to run after every completed lock sequence.
func (e *Engine) OnLock(fn func(LockEvent)) {
	e.onLock = append(e.onLock, fn)
}

// OnScoreChange registers fn to run with the new score whenever it changes.
func (e *Engine) OnScoreChange(fn func(score int)) {
	e.onScoreChange = append(e.onScoreChange, fn)
}

// OnGameOver registers fn to run with the final score when a new piece
// cannot spawn. It runs before the board is reset or halted.
func (e *Engine) OnGameOver(fn func(finalScore int)) {
	e.onGameOver = append(e.onGameOver, fn)
}

// try commits candidate if it fits.
func (e *Engine) try(candidate Piece) bool {
	if !IsValidPlacement(e.grid, candidate) {
		return false
	}
	e.piece = candidate
	return true
}

// landingRow returns the lowest valid row reachable by falling straight
// down, or the current row when the piece does not fit where it is.
func (e *Engine) landingRow() int {
	p := e.piece
	if !IsValidPlacement(e.grid, p) {
		return p.Y
	}
	for IsValidPlacement(e.grid, p.Translated(0, 1)) {
		p.Y++
	}
	return p.Y
}

// lock writes the piece into the grid, clears lines, spawns the next
// piece and handles game over.
func (e *Engine) lock() {
	toppedOut := false
	for _, pt := range e.piece.Cells() {
		if pt.Y < 0 {
			toppedOut = true
			continue
		}
		e.grid.Set(pt.X, pt.Y, e.piece.Color)
	}

	lines := clearLines(e.grid)
	e.lines += lines
	if gained := lines * e.cfg.LineBonus; gained > 0 {
		e.score += gained
		e.emitScore()
	}

	e.piece = e.factory.CreatePiece()
	if toppedOut || !IsValidPlacement(e.grid, e.piece) {
		e.gameOver()
	}

	ev := LockEvent{Lines: lines}
	for _, fn := range e.onLock {
		fn(ev)
	}
}

func (e *Engine) gameOver() {
	final := e.score
	for _, fn := range e.onGameOver {
		fn(final)
	}
	if e.cfg.GameOver == GameOverHalt {
		e.halted = true
		return
	}
	e.Reset()
}

func (e *Engine) emitScore() {
	for _, fn := range e.onScoreChange {
		fn(e.score)
	}
}
