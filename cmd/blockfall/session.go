package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blockfall/internal/audio"
	"github.com/vovakirdan/tui-blockfall/internal/config"
	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall"
	"github.com/vovakirdan/tui-blockfall/internal/platform/tui"
	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

// localSession holds what a local play or menu run shares: logger,
// score store and the lock cue.
type localSession struct {
	logger  *log.Logger
	store   *storage.Store
	cue     *audio.Player
	logFile *os.File
}

// openLocalSession sets up logging, storage and audio from the global flags.
// Failures other than the log file only degrade the session.
func openLocalSession() (*localSession, error) {
	s := &localSession{}

	// The alternate screen owns the terminal, so logs go to a file or nowhere
	if flagLogFile != "" {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		s.logFile = f
		s.logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "blockfall",
			Level:           log.DebugLevel,
		})
	} else {
		s.logger = log.New(io.Discard)
	}
	blockfall.SetLogger(s.logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		s.logger.Warn("running without score storage", "err", err)
	} else {
		s.store = store
	}

	cfg, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		s.logger.Warn("using default audio settings", "err", err)
		cfg = config.DefaultBlockfallConfig()
	}
	s.cue = audio.NewPlayer(toneFromConfig(cfg.Audio), cfg.Audio.Enabled && !flagMute, s.logger)
	if err := s.cue.Initialize(); err != nil {
		s.logger.Warn("sound disabled", "err", err)
	}

	return s, nil
}

// gameOptions returns the model options every local game uses.
func (s *localSession) gameOptions(extra ...tui.Option) []tui.Option {
	return append([]tui.Option{
		tui.WithLogger(s.logger),
		tui.WithLockCue(s.cue),
		tui.WithPlayer(playerName()),
	}, extra...)
}

func (s *localSession) Close() {
	s.cue.Close()
	if s.store != nil {
		s.store.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// runtimeConfig builds the platform config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

func toneFromConfig(a config.AudioConfig) audio.Tone {
	return audio.Tone{
		Frequency: a.Frequency,
		Duration:  time.Duration(a.DurationMs) * time.Millisecond,
		Gain:      a.Volume,
	}
}

// playerName is the name local scores are saved under.
func playerName() string {
	for _, env := range []string{"USER", "USERNAME", "LOGNAME"} {
		if name := strings.TrimSpace(os.Getenv(env)); name != "" {
			return name
		}
	}
	return "local"
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
