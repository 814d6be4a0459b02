package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultBlockfallConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	var embedded BlockfallConfig
	if err := yaml.Unmarshal(GetDefaultYAML("blockfall"), &embedded); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	def := DefaultBlockfallConfig()

	if embedded.Board != def.Board {
		t.Errorf("board: embedded %+v, default %+v", embedded.Board, def.Board)
	}
	if embedded.Gameplay != def.Gameplay {
		t.Errorf("gameplay: embedded %+v, default %+v", embedded.Gameplay, def.Gameplay)
	}
	if embedded.Audio != def.Audio {
		t.Errorf("audio: embedded %+v, default %+v", embedded.Audio, def.Audio)
	}
	if len(embedded.Pieces.Palette) != len(def.Pieces.Palette) {
		t.Fatalf("palette length: embedded %d, default %d", len(embedded.Pieces.Palette), len(def.Pieces.Palette))
	}
	for i := range def.Pieces.Palette {
		if embedded.Pieces.Palette[i] != def.Pieces.Palette[i] {
			t.Errorf("palette %d: embedded %+v, default %+v", i, embedded.Pieces.Palette[i], def.Pieces.Palette[i])
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
board:
  rows: 12
gameplay:
  line_bonus: 250
pieces:
  shapes:
    - ["XX", "XX"]
    - [".X.", "XXX"]
  palette:
    - { hex: "#ffffff", color: white }
    - { hex: "#ff0000", color: red }
`)

	cfg, err := LoadBlockfall(path)
	if err != nil {
		t.Fatalf("LoadBlockfall: %v", err)
	}
	if cfg.Board.Rows != 12 {
		t.Errorf("rows = %d, expected 12", cfg.Board.Rows)
	}
	if cfg.Board.Columns != engine.DefaultColumns {
		t.Errorf("unset columns should keep default, got %d", cfg.Board.Columns)
	}
	if cfg.Gameplay.LineBonus != 250 {
		t.Errorf("line_bonus = %d, expected 250", cfg.Gameplay.LineBonus)
	}
	if len(cfg.Pieces.Shapes) != 2 || len(cfg.Pieces.Palette) != 2 {
		t.Fatalf("lists should be replaced, got %d shapes, %d colors", len(cfg.Pieces.Shapes), len(cfg.Pieces.Palette))
	}

	ec, err := cfg.EngineConfig(7, engine.GameOverHalt)
	if err != nil {
		t.Fatalf("EngineConfig: %v", err)
	}
	if ec.Rows != 12 || ec.LineBonus != 250 || ec.Seed != 7 || ec.GameOver != engine.GameOverHalt {
		t.Errorf("unexpected engine config %+v", ec)
	}
	if ec.Palette[0] != "#FFFFFF" {
		t.Errorf("palette hex should be normalized, got %q", ec.Palette[0])
	}
	if !ec.Shapes[1].Equal(engine.MustParseShape(".X.", "XXX")) {
		t.Errorf("shape 1 = \n%s", ec.Shapes[1])
	}

	colors := cfg.TerminalColors()
	if colors[0] != core.ColorWhite || colors[1] != core.ColorRed {
		t.Errorf("TerminalColors() = %v", colors)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "board: [", "parse"},
		{"zero rows", "board:\n  rows: 0\n", "board must be"},
		{"short palette", "pieces:\n  palette:\n    - { hex: \"#fff\", color: red }\n  shapes:\n    - [\"X\"]\n    - [\"XX\"]\n", "palette has 1 colors"},
		{"ragged shape", "pieces:\n  shapes:\n    - [\"XX\", \"X\"]\n", "shape 0"},
		{"unknown color", "pieces:\n  palette:\n    - { hex: \"#fff\", color: teal }\n", "unknown color"},
		{"bad drop rate", "gameplay:\n  drop_rate: 0\n", "drop_rate"},
		{"negative spawn", "gameplay:\n  spawn_x: -1\n", "spawn_x must not be negative"},
		{"bar wider than board", "board:\n  columns: 2\n", "does not fit a 2x20 board"},
		{"bar past right wall", "gameplay:\n  spawn_x: 7\n", "does not fit a 10x20 board at spawn_x 7"},
		{"shape taller than board", "board:\n  rows: 1\npieces:\n  shapes:\n    - [\"X\", \"X\"]\n", "shape 0 (1x2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBlockfall(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := LoadBlockfall(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadBlockfall("")
	if err != nil {
		t.Fatalf("LoadBlockfall: %v", err)
	}
	if cfg.Board.Rows != engine.DefaultRows || cfg.Gameplay.DropRate != engine.DefaultDropRate {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".blockfall", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blockfall.yaml"), []byte("gameplay:\n  drop_rate: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockfall("")
	if err != nil {
		t.Fatalf("LoadBlockfall: %v", err)
	}
	if cfg.Gameplay.DropRate != 9 {
		t.Errorf("drop_rate = %d, expected 9 from user config", cfg.Gameplay.DropRate)
	}
}

func TestGetDefaultYAMLUnknown(t *testing.T) {
	if GetDefaultYAML("snake") != nil {
		t.Error("unknown game should have no default yaml")
	}
}
