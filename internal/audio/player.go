// Package audio plays the lock cue through the system speaker using beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays lock cues. The zero value is not usable; use NewPlayer.
// A Player that failed to initialize, or was built disabled, silently
// drops every cue.
type Player struct {
	mu          sync.Mutex
	tone        Tone
	enabled     bool
	initialized bool
	mixer       *beep.Mixer
	logger      *log.Logger
}

// NewPlayer returns a player for tone. It does not touch the audio device
// until Initialize is called.
func NewPlayer(tone Tone, enabled bool, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		tone:    tone,
		enabled: enabled,
		mixer:   &beep.Mixer{},
		logger:  logger,
	}
}

// Initialize opens the speaker. Calling it on a disabled or already
// initialized player is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("audio initialized", "rate", int(sampleRate), "freq", p.tone.Frequency)
	return nil
}

// Enabled reports whether cues will be heard.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && p.initialized
}

// PlayLock queues the cue for a lock that cleared lines rows.
func (p *Player) PlayLock(lines int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || !p.initialized {
		return
	}

	s := LockSound(p.tone, lines, sampleRate)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops queued cues and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
