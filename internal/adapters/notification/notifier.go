// Package notification provides desktop notification utilities.
package notification

import (
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/jayPark21/Pomodoro-timer/internal/config"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// notifyFunc matches beeep.Notify.
type notifyFunc func(title, message string, icon any) error

// Desktop mirrors timer messages as desktop notifications.
type Desktop struct {
	cfg    *config.NotificationConfig
	title  string
	notify notifyFunc
	logger *slog.Logger
}

// Ensure Desktop implements ports.Notifier.
var _ ports.Notifier = (*Desktop)(nil)

// New creates a desktop notifier with the given configuration.
func New(cfg *config.NotificationConfig, logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Desktop{
		cfg:    cfg,
		title:  "🍅 Pomodoro",
		notify: beeep.Notify,
		logger: logger,
	}
}

// Show displays a desktop notification if enabled. Failures are logged
// and otherwise ignored.
func (n *Desktop) Show(message string) {
	if !n.IsEnabled() {
		return
	}
	if err := n.notify(n.title, message, ""); err != nil {
		n.logger.Debug("desktop notification failed", "error", err)
	}
}

// IsEnabled returns true if desktop notifications are enabled.
func (n *Desktop) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled && n.cfg.Desktop
}

// Fanout delivers every message to several notifiers.
type Fanout struct {
	mu    sync.RWMutex
	sinks []ports.Notifier
}

// Ensure Fanout implements ports.Notifier.
var _ ports.Notifier = (*Fanout)(nil)

// NewFanout creates a notifier that forwards to sinks. Nil sinks are skipped.
func NewFanout(sinks ...ports.Notifier) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		f.Add(s)
	}
	return f
}

// Add registers another sink.
func (f *Fanout) Add(sink ports.Notifier) {
	if sink == nil {
		return
	}
	f.mu.Lock()
	f.sinks = append(f.sinks, sink)
	f.mu.Unlock()
}

// Show forwards message to every sink in registration order.
func (f *Fanout) Show(message string) {
	f.mu.RLock()
	sinks := append([]ports.Notifier(nil), f.sinks...)
	f.mu.RUnlock()

	for _, s := range sinks {
		s.Show(message)
	}
}
