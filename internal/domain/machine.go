package domain

import (
	"fmt"
	"time"
)

// Event is an input to the session machine.
type Event interface {
	isEvent()
}

// SelectDuration picks a new focus length and stops the timer.
type SelectDuration struct {
	Minutes int
}

// Toggle starts or pauses the countdown.
type Toggle struct{}

// Reset stops the timer and restores a fresh focus session.
type Reset struct{}

// Tick is one elapsed second.
type Tick struct {
	At time.Time
}

func (SelectDuration) isEvent() {}
func (Toggle) isEvent()         {}
func (Reset) isEvent()          {}
func (Tick) isEvent()           {}

// Effect is a side effect requested by a transition.
// The machine never performs effects itself; callers perform them in list order.
type Effect interface {
	isEffect()
}

// EffectEnsureAudio asks the tone sink to become ready.
// It is only emitted in response to direct user input.
type EffectEnsureAudio struct{}

// EffectPlay asks for a tone sequence.
type EffectPlay struct {
	Sequence ToneSequence
}

// EffectNotify asks for a transient message.
type EffectNotify struct {
	Message string
}

// EffectCycleComplete reports a finished focus session.
type EffectCycleComplete struct {
	Number       int
	FocusMinutes int
	At           time.Time
}

// EffectRearm asks for the tick subscription to be torn down and recreated.
type EffectRearm struct{}

func (EffectEnsureAudio) isEffect()   {}
func (EffectPlay) isEffect()          {}
func (EffectNotify) isEffect()        {}
func (EffectCycleComplete) isEffect() {}
func (EffectRearm) isEffect()         {}

// Transition is the result of applying an event.
type Transition struct {
	State   SessionState
	Effects []Effect
	Err     error
}

// FocusCompleteMessage is shown when a focus session rolls into a break.
const FocusCompleteMessage = "Focus complete! Take a 1-minute break! ☕"

// BreakOverMessage is shown when a break rolls into a focus session.
func BreakOverMessage(minutes int) string {
	return fmt.Sprintf("Break over! Let's focus for %d minutes! 🚀", minutes)
}

// Apply computes the next state for an event. It has no side effects.
func Apply(s SessionState, ev Event) Transition {
	switch e := ev.(type) {
	case SelectDuration:
		return applySelect(s, e)
	case Toggle:
		return applyToggle(s)
	case Reset:
		return applyReset(s)
	case Tick:
		return applyTick(s, e)
	default:
		return Transition{State: s}
	}
}

func applySelect(s SessionState, e SelectDuration) Transition {
	if err := ValidateFocusMinutes(e.Minutes); err != nil {
		return Transition{State: s, Err: err}
	}
	next := s
	next.FocusMinutes = e.Minutes
	next.Kind = KindFocus
	next.Remaining = e.Minutes * 60
	next.Running = false
	return Transition{State: next, Effects: []Effect{EffectRearm{}}}
}

func applyToggle(s SessionState) Transition {
	next := s
	next.Running = !s.Running
	if !next.Running {
		return Transition{State: next, Effects: []Effect{EffectRearm{}}}
	}

	effects := []Effect{EffectEnsureAudio{}, EffectRearm{}}
	if next.Kind == KindFocus {
		effects = append(effects, EffectPlay{Sequence: StartSequence})
	}
	return Transition{State: next, Effects: effects}
}

func applyReset(s SessionState) Transition {
	next := s
	next.Running = false
	next.Kind = KindFocus
	next.Remaining = s.FocusMinutes * 60
	return Transition{State: next, Effects: []Effect{EffectRearm{}}}
}

func applyTick(s SessionState, e Tick) Transition {
	if !s.Running || s.Remaining <= 0 {
		return Transition{State: s}
	}

	next := s
	next.Remaining--
	if next.Remaining == 0 {
		return endSession(next, e.At)
	}

	if next.InCountdown() {
		return Transition{State: next, Effects: []Effect{EffectPlay{Sequence: CountdownSequence}}}
	}
	return Transition{State: next}
}

// endSession switches to the other kind and keeps the timer running.
func endSession(s SessionState, at time.Time) Transition {
	next := s
	next.Running = true

	if s.Kind == KindFocus {
		next.Kind = KindBreak
		next.Remaining = BreakSeconds
		next.Cycles++
		return Transition{
			State: next,
			Effects: []Effect{
				EffectRearm{},
				EffectPlay{Sequence: EndSequence},
				EffectNotify{Message: FocusCompleteMessage},
				EffectCycleComplete{Number: next.Cycles, FocusMinutes: s.FocusMinutes, At: at},
			},
		}
	}

	next.Kind = KindFocus
	next.Remaining = s.FocusMinutes * 60
	return Transition{
		State: next,
		Effects: []Effect{
			EffectRearm{},
			EffectPlay{Sequence: StartSequence},
			EffectNotify{Message: BreakOverMessage(s.FocusMinutes)},
		},
	}
}
