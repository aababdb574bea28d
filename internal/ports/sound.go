package ports

import "github.com/jayPark21/Pomodoro-timer/internal/domain"

// ToneSink plays audible cues.
// This is a driven port (implemented by adapters).
type ToneSink interface {
	// EnsureReady primes the audio output. It must only be called while
	// handling direct user input, never from a timer callback.
	EnsureReady() error

	// Play emits a single tone. Sinks that are not ready return an error
	// and stay silent.
	Play(tone domain.Tone) error
}
