package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// fakeSub is a subscription registered with fakeClock.
type fakeSub struct {
	clock       *fakeClock
	every       time.Duration
	due         time.Duration // for After: offset from registration
	at          time.Duration // clock offset at registration
	fn          func()
	cancelled   bool
	cancelCalls int
	fired       bool
}

func (s *fakeSub) Cancel() {
	s.clock.mu.Lock()
	defer s.clock.mu.Unlock()
	s.cancelCalls++
	if !s.clock.leaky {
		s.cancelled = true
	}
}

// fakeClock runs callbacks only when the test advances it.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	elapsed time.Duration
	subs    []*fakeSub

	// leaky keeps cancelled subscriptions firing, like a ticker whose
	// callback was already in flight when Cancel ran.
	leaky bool
}

var _ ports.Clock = (*fakeClock)(nil)

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Add(c.elapsed)
}

func (c *fakeClock) Every(interval time.Duration, fn func()) ports.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &fakeSub{clock: c, every: interval, at: c.elapsed, fn: fn}
	c.subs = append(c.subs, s)
	return s
}

func (c *fakeClock) After(delay time.Duration, fn func()) ports.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &fakeSub{clock: c, due: delay, at: c.elapsed, fn: fn}
	c.subs = append(c.subs, s)
	return s
}

type firing struct {
	when time.Duration
	sub  *fakeSub
}

// Advance moves time forward by d, firing due callbacks in time order.
// Callbacks run without the clock lock held, and a cancelled subscription
// never fires, even if it was due in the same step.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.elapsed + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next, ok := c.nextFiring(target)
		if !ok {
			c.elapsed = target
			c.mu.Unlock()
			return
		}
		c.elapsed = next.when
		if next.sub.every == 0 {
			next.sub.fired = true
		}
		fn := next.sub.fn
		c.mu.Unlock()

		fn()

		if next.sub.every > 0 {
			c.mu.Lock()
			next.sub.at = next.when
			c.mu.Unlock()
		}
	}
}

// Tick advances by n whole seconds.
func (c *fakeClock) Tick(n int) {
	for i := 0; i < n; i++ {
		c.Advance(time.Second)
	}
}

func (c *fakeClock) nextFiring(target time.Duration) (firing, bool) {
	var due []firing
	for _, s := range c.subs {
		if s.cancelled || s.fired {
			continue
		}
		when := s.at + s.due
		if s.every > 0 {
			when = s.at + s.every
		}
		if when <= target {
			due = append(due, firing{when: when, sub: s})
		}
	}
	if len(due) == 0 {
		return firing{}, false
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].when < due[j].when })
	return due[0], true
}

// liveTickers counts uncancelled periodic subscriptions.
func (c *fakeClock) liveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.subs {
		if s.every > 0 && !s.cancelled {
			n++
		}
	}
	return n
}

// fakeSink records every tone it is asked to play.
type fakeSink struct {
	mu       sync.Mutex
	primed   int
	played   []domain.Tone
	readyErr error
}

func (s *fakeSink) EnsureReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primed++
	return s.readyErr
}

func (s *fakeSink) Play(tone domain.Tone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.primed == 0 {
		return domain.ErrAudioNotReady
	}
	s.played = append(s.played, tone)
	return nil
}

func (s *fakeSink) frequencies() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.played))
	for i, t := range s.played {
		out[i] = t.Frequency
	}
	return out
}

func (s *fakeSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = nil
}

// fakeNotifier records messages.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *fakeNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// fakeGit returns a fixed repository context.
type fakeGit struct {
	info *ports.GitInfo
	err  error
}

func (g *fakeGit) Detect(context.Context, string) (*ports.GitInfo, error) {
	return g.info, g.err
}
