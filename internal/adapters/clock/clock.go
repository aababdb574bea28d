// Package clock provides the wall-clock implementation of ports.Clock.
package clock

import (
	"sync"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// System schedules callbacks on real timers.
type System struct{}

// New creates a wall-clock scheduler.
func New() *System {
	return &System{}
}

// Ensure System implements ports.Clock.
var _ ports.Clock = (*System)(nil)

// Now returns the current time.
func (c *System) Now() time.Time {
	return time.Now()
}

// Every runs fn on its own goroutine once per interval until cancelled.
// Calls are serial, so at most one is in flight.
func (c *System) Every(interval time.Duration, fn func()) ports.Subscription {
	if interval <= 0 {
		interval = time.Second
	}
	sub := &tickerSub{stopCh: make(chan struct{})}
	go sub.run(interval, fn)
	return sub
}

// After runs fn once after delay unless cancelled first.
func (c *System) After(delay time.Duration, fn func()) ports.Subscription {
	sub := &timerSub{}
	sub.timer = time.AfterFunc(delay, func() {
		sub.mu.Lock()
		cancelled := sub.cancelled
		sub.mu.Unlock()
		if !cancelled {
			fn()
		}
	})
	return sub
}

type tickerSub struct {
	once   sync.Once
	stopCh chan struct{}
}

func (s *tickerSub) run(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			// A tick and a stop can be ready together; stop wins.
			select {
			case <-s.stopCh:
				return
			default:
			}
			fn()
		}
	}
}

// Cancel stops the ticker. Safe to call repeatedly.
func (s *tickerSub) Cancel() {
	s.once.Do(func() { close(s.stopCh) })
}

type timerSub struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
}

// Cancel stops the timer. Safe to call repeatedly.
func (s *timerSub) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	s.mu.Unlock()
	s.timer.Stop()
}
