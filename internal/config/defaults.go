package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default blockfall configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Rows:      engine.DefaultRows,
			Columns:   engine.DefaultColumns,
			CellWidth: 2,
		},
		Gameplay: GameplayConfig{
			DropRate:  engine.DefaultDropRate,
			LineBonus: engine.DefaultLineBonus,
			SpawnX:    engine.DefaultSpawnX,
		},
		Pieces: PiecesConfig{
			Shapes: [][]string{{"XXXX"}},
			Palette: []PaletteEntry{
				{Hex: "#00FFFF", Color: "cyan"},
				{Hex: "#FF5733", Color: "orange"},
				{Hex: "#FFD700", Color: "bright_yellow"},
				{Hex: "#32CD32", Color: "bright_green"},
				{Hex: "#FF6347", Color: "bright_red"},
				{Hex: "#8A2BE2", Color: "magenta"},
				{Hex: "#FF1493", Color: "bright_magenta"},
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Frequency:  220,
			DurationMs: 60,
			Volume:     -1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blockfall", "blockfall_halt":
		return defaultBlockfallYAML
	default:
		return nil
	}
}
