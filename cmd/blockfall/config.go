package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blockfall/internal/config"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
)

var flagCheck bool

var configCmd = &cobra.Command{
	Use:   "config [mode]",
	Short: "Print the default config YAML",
	Long: `Print the embedded default config for a mode. Save it as
~/.blockfall/configs/blockfall.yaml or ./configs/blockfall.yaml, or pass
it with --config, to change the board, pieces, palette or sound.

With --check, validate the file given by --config (or the search path)
instead of printing.

Examples:
  blockfall config > ~/.blockfall/configs/blockfall.yaml
  blockfall config --check --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagCheck, "check", false, "Validate the config instead of printing the default")
}

func runConfig(_ *cobra.Command, args []string) {
	if flagCheck {
		cfg, err := config.LoadBlockfall(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config OK: %dx%d board, %d shapes, %d colors\n",
			cfg.Board.Columns, cfg.Board.Rows, len(cfg.Pieces.Shapes), len(cfg.Pieces.Palette))
		return
	}

	gameID := "blockfall"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		os.Exit(1)
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no default config for %q\n", gameID)
		os.Exit(1)
	}
	os.Stdout.Write(data) //nolint:errcheck
}
