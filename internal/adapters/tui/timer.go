package tui

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/jayPark21/Pomodoro-timer/internal/config"
	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// msgBuffer bounds messages queued for the program.
const msgBuffer = 64

// Timer runs the timer view as a Bubbletea program.
// It also implements ports.Notifier by showing messages as toasts.
//
// Show and Changed may be called from inside Update (a key press that
// changes state fires the controller hooks synchronously), so they only
// enqueue; a separate goroutine hands messages to the program.
type Timer struct {
	control ports.SessionControl
	theme   *config.ThemeConfig
	inline  bool
	msgs    chan tea.Msg

	mu      sync.RWMutex
	program *tea.Program
}

// Ensure Timer implements ports.Notifier.
var _ ports.Notifier = (*Timer)(nil)

// NewTimer creates a timer view over control. Inline mode renders in
// place below the prompt instead of taking over the alternate screen.
func NewTimer(control ports.SessionControl, theme *config.ThemeConfig, inline bool) *Timer {
	return &Timer{
		control: control,
		theme:   theme,
		inline:  inline,
		msgs:    make(chan tea.Msg, msgBuffer),
	}
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 20 {
		return 80
	}
	return w
}

// Run starts the program and blocks until the user quits or ctx is done.
func (t *Timer) Run(ctx context.Context) error {
	model := NewModel(t.control, t.theme)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.inline {
		model.inline = true
		model.width = getTerminalWidth()
		model.help.Width = model.width
	} else {
		opts = append(opts, tea.WithAltScreen())
	}

	program := tea.NewProgram(model, opts...)
	t.mu.Lock()
	t.program = program
	t.mu.Unlock()

	done := make(chan struct{})
	go t.forward(program, done)

	_, err := program.Run()
	close(done)

	t.mu.Lock()
	t.program = nil
	t.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// forward delivers queued messages until the program exits.
func (t *Timer) forward(program *tea.Program, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-t.msgs:
			program.Send(msg)
		}
	}
}

// Stop quits the program if it is running.
func (t *Timer) Stop() {
	t.mu.RLock()
	program := t.program
	t.mu.RUnlock()

	if program != nil {
		program.Quit()
	}
}

// Show implements ports.Notifier.
func (t *Timer) Show(message string) {
	t.send(toastMsg{text: message})
}

// Changed tells the view the session state moved on.
// It matches the signature of SessionController.SetOnChange.
func (t *Timer) Changed(domain.SessionState) {
	t.send(snapshotMsg{})
}

// send never blocks. When the queue is full the message is dropped;
// a later snapshot re-reads the controller anyway.
func (t *Timer) send(msg tea.Msg) {
	select {
	case t.msgs <- msg:
	default:
	}
}
