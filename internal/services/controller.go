package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// TickInterval is how often a running session loses a second.
const TickInterval = time.Second

// SessionController drives the session machine against real ports.
// It owns the only copy of the session state.
type SessionController struct {
	mu       sync.Mutex
	state    domain.SessionState
	clock    ports.Clock
	sink     ports.ToneSink
	notifier ports.Notifier
	logger   *slog.Logger

	// epoch identifies the current arm. Callbacks from an older arm are dropped.
	epoch  uint64
	subs   []ports.Subscription
	closed bool

	countdownBeeps bool
	onChange       func(domain.SessionState)
	onCycle        func(domain.Cycle)
}

// Ensure SessionController implements ports.SessionControl.
var _ ports.SessionControl = (*SessionController)(nil)

// NewSessionController creates a stopped controller on a fresh focus session.
// sink and notifier may be nil.
func NewSessionController(focusMinutes int, clock ports.Clock, sink ports.ToneSink, notifier ports.Notifier, logger *slog.Logger) (*SessionController, error) {
	if err := domain.ValidateFocusMinutes(focusMinutes); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SessionController{
		state:          domain.NewSessionState(focusMinutes),
		clock:          clock,
		sink:           sink,
		notifier:       notifier,
		logger:         logger,
		countdownBeeps: true,
	}, nil
}

// SetCountdownBeeps turns the final-seconds beeps on or off.
func (c *SessionController) SetCountdownBeeps(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countdownBeeps = on
}

// SetOnChange registers a hook called after every state change.
// The hook runs without the controller lock held.
func (c *SessionController) SetOnChange(fn func(domain.SessionState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// SetOnCycleComplete registers a hook called once per finished focus session.
func (c *SessionController) SetOnCycleComplete(fn func(domain.Cycle)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCycle = fn
}

// SelectFocusDuration stops the timer and starts over with a new focus length.
func (c *SessionController) SelectFocusDuration(minutes int) error {
	return c.dispatch(domain.SelectDuration{Minutes: minutes})
}

// ToggleRunning starts or pauses the countdown.
func (c *SessionController) ToggleRunning() {
	_ = c.dispatch(domain.Toggle{})
}

// Reset stops the countdown and restores a fresh focus session.
func (c *SessionController) Reset() {
	_ = c.dispatch(domain.Reset{})
}

// Tick applies one elapsed second, as the ticker would.
func (c *SessionController) Tick() {
	_ = c.dispatch(domain.Tick{At: c.clock.Now()})
}

// Snapshot returns a copy of the current state.
func (c *SessionController) Snapshot() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close cancels the ticker and any queued tones. Later calls do nothing.
func (c *SessionController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.disarmLocked()
}

// followUp holds work that must run after the lock is released.
type followUp struct {
	state    domain.SessionState
	changed  bool
	messages []string
	cycles   []domain.Cycle
	onChange func(domain.SessionState)
	onCycle  func(domain.Cycle)
	notifier ports.Notifier
}

func (f followUp) run() {
	for _, msg := range f.messages {
		if f.notifier != nil {
			f.notifier.Show(msg)
		}
	}
	for _, cycle := range f.cycles {
		if f.onCycle != nil {
			f.onCycle(cycle)
		}
	}
	if f.changed && f.onChange != nil {
		f.onChange(f.state)
	}
}

func (c *SessionController) dispatch(ev domain.Event) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	f, err := c.applyLocked(ev)
	c.mu.Unlock()

	f.run()
	return err
}

// tickFrom handles a ticker callback from the arm identified by epoch.
func (c *SessionController) tickFrom(epoch uint64) {
	c.mu.Lock()
	if c.closed || epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	f, _ := c.applyLocked(domain.Tick{At: c.clock.Now()})
	c.mu.Unlock()

	f.run()
}

func (c *SessionController) applyLocked(ev domain.Event) (followUp, error) {
	prev := c.state
	tr := domain.Apply(prev, ev)
	if tr.Err != nil {
		c.logger.Debug("event rejected", "event", eventName(ev), "error", tr.Err)
		return followUp{}, tr.Err
	}

	c.state = tr.State
	f := followUp{
		state:    tr.State,
		changed:  tr.State != prev,
		onChange: c.onChange,
		onCycle:  c.onCycle,
		notifier: c.notifier,
	}

	for _, effect := range tr.Effects {
		switch e := effect.(type) {
		case domain.EffectEnsureAudio:
			if c.sink != nil {
				if err := c.sink.EnsureReady(); err != nil {
					c.logger.Debug("audio unavailable", "error", err)
				}
			}
		case domain.EffectRearm:
			c.rearmLocked()
		case domain.EffectPlay:
			if e.Sequence.Name == domain.CountdownSequence.Name && !c.countdownBeeps {
				continue
			}
			c.scheduleLocked(e.Sequence)
		case domain.EffectNotify:
			f.messages = append(f.messages, e.Message)
		case domain.EffectCycleComplete:
			f.cycles = append(f.cycles, *domain.NewCycle(e.Number, e.FocusMinutes, e.At))
		}
	}

	if f.changed && prev.Kind != tr.State.Kind {
		c.logger.Info("session switched",
			"from", prev.Kind, "to", tr.State.Kind, "cycles", tr.State.Cycles)
	}
	return f, nil
}

// disarmLocked cancels every live subscription and retires the current arm.
func (c *SessionController) disarmLocked() {
	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.subs = nil
	c.epoch++
}

// rearmLocked replaces the current arm, starting a ticker if running.
func (c *SessionController) rearmLocked() {
	c.disarmLocked()
	if !c.state.Running {
		return
	}
	epoch := c.epoch
	c.subs = append(c.subs, c.clock.Every(TickInterval, func() {
		c.tickFrom(epoch)
	}))
}

// scheduleLocked queues a tone sequence inside the current arm.
func (c *SessionController) scheduleLocked(seq domain.ToneSequence) {
	if c.sink == nil {
		return
	}
	epoch := c.epoch
	for _, step := range seq.Steps {
		tone := step.Tone
		c.subs = append(c.subs, c.clock.After(step.Delay, func() {
			c.playFrom(epoch, seq.Name, tone)
		}))
	}
}

func (c *SessionController) playFrom(epoch uint64, name string, tone domain.Tone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || epoch != c.epoch {
		return
	}
	if err := c.sink.Play(tone); err != nil {
		c.logger.Debug("tone skipped", "sequence", name, "error", err)
	}
}

func eventName(ev domain.Event) string {
	switch ev.(type) {
	case domain.SelectDuration:
		return "select"
	case domain.Toggle:
		return "toggle"
	case domain.Reset:
		return "reset"
	case domain.Tick:
		return "tick"
	default:
		return "unknown"
	}
}
