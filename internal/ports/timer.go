package ports

import "github.com/jayPark21/Pomodoro-timer/internal/domain"

// SessionControl is what the presentation layer drives.
// This is a driving port (implemented by the services layer).
type SessionControl interface {
	// SelectFocusDuration picks a focus length from domain.FocusChoices.
	SelectFocusDuration(minutes int) error

	// ToggleRunning starts or pauses the countdown.
	ToggleRunning()

	// Reset stops the countdown and restores a fresh focus session.
	Reset()

	// Snapshot returns a copy of the current state.
	Snapshot() domain.SessionState
}
