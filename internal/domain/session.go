package domain

import (
	"fmt"
	"slices"
)

// SessionKind distinguishes the work interval from the rest interval.
type SessionKind string

const (
	KindFocus SessionKind = "focus"
	KindBreak SessionKind = "break"
)

const (
	// BreakSeconds is the fixed length of every break session.
	BreakSeconds = 60

	// DefaultFocusMinutes is the focus length selected at startup.
	DefaultFocusMinutes = 25

	// CountdownWindow is the number of final seconds that get a beep each.
	CountdownWindow = 10
)

// FocusChoices lists the focus lengths a user may pick, in minutes.
var FocusChoices = []int{5, 10, 15, 20, 25, 30}

// IsFocusChoice reports whether minutes is one of FocusChoices.
func IsFocusChoice(minutes int) bool {
	return slices.Contains(FocusChoices, minutes)
}

// ValidateFocusMinutes checks minutes against FocusChoices.
func ValidateFocusMinutes(minutes int) error {
	if !IsFocusChoice(minutes) {
		return fmt.Errorf("%w: %d (choose one of %v)", ErrInvalidDuration, minutes, FocusChoices)
	}
	return nil
}

// SessionState is the complete observable state of the timer.
// Values are only produced by NewSessionState and Apply.
type SessionState struct {
	FocusMinutes int
	Remaining    int // seconds
	Kind         SessionKind
	Running      bool
	Cycles       int
}

// NewSessionState returns the mount-time state for the given focus length.
func NewSessionState(focusMinutes int) SessionState {
	return SessionState{
		FocusMinutes: focusMinutes,
		Remaining:    focusMinutes * 60,
		Kind:         KindFocus,
	}
}

// TotalSeconds returns the full length of the current session.
func (s SessionState) TotalSeconds() int {
	if s.Kind == KindBreak {
		return BreakSeconds
	}
	return s.FocusMinutes * 60
}

// Progress returns the fraction of the session still remaining (1.0 to 0.0).
func (s SessionState) Progress() float64 {
	total := s.TotalSeconds()
	if total <= 0 {
		return 0
	}
	p := float64(s.Remaining) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// FormatRemaining renders the remaining time as mm:ss.
func (s SessionState) FormatRemaining() string {
	return FormatClock(s.Remaining)
}

// IsFocus returns true during a focus session.
func (s SessionState) IsFocus() bool {
	return s.Kind == KindFocus
}

// IsBreak returns true during a break session.
func (s SessionState) IsBreak() bool {
	return s.Kind == KindBreak
}

// InCountdown reports whether the current second should get a countdown beep.
func (s SessionState) InCountdown() bool {
	return s.Running && s.Remaining >= 1 && s.Remaining <= CountdownWindow
}

// FormatClock formats a number of seconds as zero-padded mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// KindLabel returns a human-readable label for the session kind.
func KindLabel(k SessionKind) string {
	switch k {
	case KindFocus:
		return "Focus"
	case KindBreak:
		return "Break"
	default:
		return "Unknown"
	}
}
