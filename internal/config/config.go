// Package config provides YAML-based configuration loading for the
// blockfall game.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
)

// BlockfallConfig contains all configuration for the blockfall game.
type BlockfallConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Pieces   PiecesConfig   `yaml:"pieces"`
	Audio    AudioConfig    `yaml:"audio"`
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Rows      int `yaml:"rows"`
	Columns   int `yaml:"columns"`
	CellWidth int `yaml:"cell_width"` // terminal columns per cell
}

// GameplayConfig defines timing and scoring.
type GameplayConfig struct {
	DropRate  int `yaml:"drop_rate"`  // gravity steps per second
	LineBonus int `yaml:"line_bonus"` // points per cleared row
	SpawnX    int `yaml:"spawn_x"`    // spawn column of the piece's left edge
}

// PiecesConfig defines the shape list and the palette.
// Shape i is drawn with palette entry i.
type PiecesConfig struct {
	Shapes  [][]string     `yaml:"shapes"`
	Palette []PaletteEntry `yaml:"palette"`
}

// PaletteEntry pairs a display color with its terminal projection.
type PaletteEntry struct {
	Hex   string `yaml:"hex"`
	Color string `yaml:"color"` // core color name, e.g. "bright_cyan"
}

// AudioConfig defines the lock cue tone.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Frequency  float64 `yaml:"frequency"`   // Hz
	DurationMs int     `yaml:"duration_ms"` // tone length
	Volume     float64 `yaml:"volume"`      // base-2 gain, 0 leaves it unchanged
}

// Validate checks the config for values the game cannot run with.
func (c BlockfallConfig) Validate() error {
	var errs []error
	if c.Board.Rows <= 0 || c.Board.Columns <= 0 {
		errs = append(errs, fmt.Errorf("board must be at least 1x1, got %dx%d", c.Board.Rows, c.Board.Columns))
	}
	if c.Board.CellWidth <= 0 {
		errs = append(errs, fmt.Errorf("cell_width must be positive, got %d", c.Board.CellWidth))
	}
	if c.Gameplay.DropRate <= 0 {
		errs = append(errs, fmt.Errorf("drop_rate must be positive, got %d", c.Gameplay.DropRate))
	}
	if c.Gameplay.LineBonus < 0 {
		errs = append(errs, fmt.Errorf("line_bonus must not be negative, got %d", c.Gameplay.LineBonus))
	}
	if len(c.Pieces.Shapes) == 0 {
		errs = append(errs, errors.New("at least one shape is required"))
	}
	if c.Gameplay.SpawnX < 0 {
		errs = append(errs, fmt.Errorf("spawn_x must not be negative, got %d", c.Gameplay.SpawnX))
	}
	for i, rows := range c.Pieces.Shapes {
		s, err := engine.ParseShape(rows)
		if err != nil {
			errs = append(errs, fmt.Errorf("shape %d: %w", i, err))
			continue
		}
		// A shape that cannot spawn would end every game on its first lock
		if c.Gameplay.SpawnX+s.Cols() > c.Board.Columns || s.Rows() > c.Board.Rows {
			errs = append(errs, fmt.Errorf("shape %d (%dx%d) does not fit a %dx%d board at spawn_x %d",
				i, s.Cols(), s.Rows(), c.Board.Columns, c.Board.Rows, c.Gameplay.SpawnX))
		}
	}
	if len(c.Pieces.Palette) < len(c.Pieces.Shapes) {
		errs = append(errs, fmt.Errorf("palette has %d colors for %d shapes", len(c.Pieces.Palette), len(c.Pieces.Shapes)))
	}
	for i, p := range c.Pieces.Palette {
		if _, ok := core.ParseColor(p.Color); !ok {
			errs = append(errs, fmt.Errorf("palette %d: unknown color %q", i, p.Color))
		}
	}
	if c.Audio.Enabled && (c.Audio.Frequency <= 0 || c.Audio.DurationMs <= 0) {
		errs = append(errs, errors.New("audio frequency and duration_ms must be positive"))
	}
	return errors.Join(errs...)
}

// EngineConfig converts the config into an engine configuration.
// The config must have passed Validate.
func (c BlockfallConfig) EngineConfig(seed int64, policy engine.GameOverPolicy) (engine.Config, error) {
	shapes := make([]engine.Shape, 0, len(c.Pieces.Shapes))
	for i, rows := range c.Pieces.Shapes {
		s, err := engine.ParseShape(rows)
		if err != nil {
			return engine.Config{}, fmt.Errorf("config: shape %d: %w", i, err)
		}
		shapes = append(shapes, s)
	}
	palette := make([]string, len(c.Pieces.Palette))
	for i, p := range c.Pieces.Palette {
		palette[i] = strings.ToUpper(p.Hex)
	}
	return engine.Config{
		Rows:      c.Board.Rows,
		Columns:   c.Board.Columns,
		SpawnX:    c.Gameplay.SpawnX,
		LineBonus: c.Gameplay.LineBonus,
		Shapes:    shapes,
		Palette:   palette,
		Seed:      seed,
		GameOver:  policy,
	}, nil
}

// TerminalColors returns the terminal color of every palette entry, in
// palette order. Unknown names map to core.ColorDefault.
func (c BlockfallConfig) TerminalColors() []core.Color {
	out := make([]core.Color, len(c.Pieces.Palette))
	for i, p := range c.Pieces.Palette {
		out[i], _ = core.ParseColor(p.Color)
	}
	return out
}
