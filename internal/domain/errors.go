package domain

import "errors"

var (
	// ErrInvalidDuration is returned when a focus length is not one of FocusChoices.
	ErrInvalidDuration = errors.New("invalid focus duration")

	// ErrAudioUnavailable is returned by tone sinks that cannot reach a speaker.
	ErrAudioUnavailable = errors.New("audio output unavailable")

	// ErrAudioNotReady is returned when a tone is requested before the sink was primed.
	ErrAudioNotReady = errors.New("audio output not ready")

	// ErrCycleNotFound is returned when a journaled cycle doesn't exist.
	ErrCycleNotFound = errors.New("cycle not found")

	// ErrUnknownPeriod is returned for a stats period other than today, week, month or all.
	ErrUnknownPeriod = errors.New("unknown period")
)
