// Package sound provides tone sinks for audible cues.
package sound

import (
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// beepFunc matches beeep.Beep: frequency in Hz, duration in milliseconds.
type beepFunc func(freq float64, duration int) error

// Beeper plays tones through the system speaker using beeep.
// The speaker has one waveform, so Tone.Waveform is ignored.
type Beeper struct {
	mu          sync.Mutex
	ready       bool
	unavailable bool
	beep        beepFunc
	logger      *slog.Logger
	wg          sync.WaitGroup
}

// Ensure Beeper implements ports.ToneSink.
var _ ports.ToneSink = (*Beeper)(nil)

// NewBeeper creates a speaker-backed tone sink.
func NewBeeper(logger *slog.Logger) *Beeper {
	return newBeeper(beeep.Beep, logger)
}

func newBeeper(beep beepFunc, logger *slog.Logger) *Beeper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Beeper{beep: beep, logger: logger}
}

// EnsureReady latches the sink into the ready state.
func (b *Beeper) EnsureReady() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unavailable {
		return domain.ErrAudioUnavailable
	}
	b.ready = true
	return nil
}

// Play starts a tone and returns immediately. Each tone silences itself
// after its duration. The first speaker failure mutes the sink for good.
func (b *Beeper) Play(tone domain.Tone) error {
	b.mu.Lock()
	switch {
	case b.unavailable:
		b.mu.Unlock()
		return domain.ErrAudioUnavailable
	case !b.ready:
		b.mu.Unlock()
		return domain.ErrAudioNotReady
	}
	b.mu.Unlock()

	ms := int(tone.Duration.Milliseconds())
	if ms <= 0 {
		ms = 1
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.beep(tone.Frequency, ms); err != nil {
			b.logger.Debug("speaker unavailable, muting", "error", err)
			b.mu.Lock()
			b.unavailable = true
			b.mu.Unlock()
		}
	}()
	return nil
}

// Wait blocks until every started tone has finished.
func (b *Beeper) Wait() {
	b.wg.Wait()
}

// Muted is a tone sink that never makes a sound.
type Muted struct{}

// Ensure Muted implements ports.ToneSink.
var _ ports.ToneSink = Muted{}

// EnsureReady does nothing.
func (Muted) EnsureReady() error { return nil }

// Play does nothing.
func (Muted) Play(domain.Tone) error { return nil }
