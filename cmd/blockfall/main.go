// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall play [mode]       - Play a mode (default: blockfall)
//	blockfall menu              - Start menu to pick a mode interactively
//	blockfall list              - List available modes
//	blockfall scores [mode]     - Show high scores for a mode
//	blockfall serve             - Start SSH server for remote play
//	blockfall config            - Print the default YAML config
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.blockfall/scores.db)
//	--config <path>    - Use a custom game config YAML
//	--mute             - Disable the lock sound
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagMute    bool
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle in your terminal",
	Long: `Blockfall drops pieces onto a 10x20 board. Fill a row to clear it
and score 100 points per row.

Available commands:
  play     - Play a mode directly
  menu     - Interactive start menu
  list     - Show all modes
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the default config

Examples:
  blockfall play
  blockfall play blockfall_halt --seed 42
  blockfall menu --mute
  blockfall serve --ssh :2222
  blockfall scores`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		blockfall.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable the lock sound")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
