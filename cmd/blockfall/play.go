package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall"
	"github.com/vovakirdan/tui-blockfall/internal/platform/tui"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: blockfall).

Modes:
  blockfall       - The board clears itself when the stack reaches the top
  blockfall_halt  - Stop on a game over screen, R to restart

Controls:
  Left/H/A     - Move left
  Right/L/D    - Move right
  Up/W/K       - Rotate
  Down/S/J     - Soft drop
  Space        - Hard drop
  P/Esc        - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  blockfall play
  blockfall play blockfall_halt
  blockfall play --seed 42 --mute
  blockfall play --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := blockfall.IDClassic
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	session, err := openLocalSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	_, runErr := tui.Run(game, session.store, runtimeConfig(), session.gameOptions()...)

	// Close before potential exit
	session.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
