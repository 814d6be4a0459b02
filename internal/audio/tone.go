package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator wave shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	duration int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a streamer that plays freq for duration and then
// drains.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a streamer in over attack and out over the last release
// samples of duration.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withGain applies a base-2 gain; 0 leaves the level unchanged.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: gain}
}

// Tone describes the lock cue.
type Tone struct {
	Frequency float64       // Hz
	Duration  time.Duration // length of one note
	Gain      float64       // base-2 gain
}

// lineStep raises each extra note by a major third.
const lineStep = 1.26

// LockSound returns the cue for a lock that cleared lines rows: a short
// square "thud" at the base frequency, followed by one rising sine note
// per cleared row.
func LockSound(t Tone, lines int, rate beep.SampleRate) beep.Streamer {
	attack := t.Duration / 10
	release := t.Duration / 2

	thud := NewEnvelope(NewOscillator(t.Frequency, t.Duration, WaveSquare, rate), t.Duration, attack, release, rate)
	notes := []beep.Streamer{withGain(thud, -1)}

	freq := t.Frequency * 2
	for range lines {
		freq *= lineStep
		note := NewEnvelope(NewOscillator(freq, t.Duration, WaveSine, rate), t.Duration, attack, release, rate)
		notes = append(notes, note)
	}

	return withGain(beep.Seq(notes...), t.Gain)
}
