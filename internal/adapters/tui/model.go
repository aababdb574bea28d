// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jayPark21/Pomodoro-timer/internal/config"
	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
	"github.com/mattn/go-runewidth"
)

const (
	// ToastDuration is how long a toast stays on screen.
	ToastDuration = 4 * time.Second

	maxToastWidth    = 48
	maxProgressWidth = 50

	focusMotto = "“Great results come from relentless focus.”"
	breakMotto = "“Rest is training too. Cool your brain down.”"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// snapshotMsg tells the model the session state changed.
// The model reads the state back from the controller so that snapshots
// delivered out of order cannot roll the view backwards.
type snapshotMsg struct{}

// toastMsg shows a transient message.
type toastMsg struct {
	text string
}

// toastExpiredMsg hides the toast with the given id, if it is still shown.
type toastExpiredMsg struct {
	id int
}

// Model is the timer view.
type Model struct {
	control ports.SessionControl
	state   domain.SessionState
	keys    keyMap
	help    help.Model
	theme   config.ThemeConfig
	width   int
	height  int
	inline  bool

	toast    string
	toastID  int
	toastTTL time.Duration
}

// NewModel creates a timer view over control.
func NewModel(control ports.SessionControl, theme *config.ThemeConfig) Model {
	return Model{
		control:  control,
		state:    control.Snapshot(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		theme:    resolveTheme(theme),
		toastTTL: ToastDuration,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case snapshotMsg:
		m.state = m.control.Snapshot()

	case toastMsg:
		return m.showToast(msg.text)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.control.ToggleRunning()

	case key.Matches(msg, m.keys.Reset):
		m.control.Reset()

	case key.Matches(msg, m.keys.Choose):
		i := int(msg.String()[0] - '1')
		return m.selectFocus(domain.FocusChoices[i])

	case key.Matches(msg, m.keys.Prev):
		return m.stepFocus(-1)

	case key.Matches(msg, m.keys.Next):
		return m.stepFocus(1)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.state = m.control.Snapshot()
	return m, nil
}

// stepFocus moves to the neighbouring focus choice, stopping at either end.
func (m Model) stepFocus(delta int) (tea.Model, tea.Cmd) {
	i := slices.Index(domain.FocusChoices, m.state.FocusMinutes) + delta
	if i < 0 || i >= len(domain.FocusChoices) {
		return m, nil
	}
	return m.selectFocus(domain.FocusChoices[i])
}

func (m Model) selectFocus(minutes int) (tea.Model, tea.Cmd) {
	if err := m.control.SelectFocusDuration(minutes); err != nil {
		return m.showToast(err.Error())
	}
	m.state = m.control.Snapshot()
	return m, nil
}

// showToast replaces any visible toast and schedules its dismissal.
func (m Model) showToast(text string) (tea.Model, tea.Cmd) {
	m.toastID++
	m.toast = runewidth.Truncate(text, maxToastWidth, "…")
	id := m.toastID
	return m, tea.Tick(m.toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// kindColor returns the accent colour for the current session kind.
func (m Model) kindColor() lipgloss.Color {
	if m.state.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorFocus)
}

// clockColor returns the clock colour, accounting for pause state.
func (m Model) clockColor() lipgloss.Color {
	if m.isPaused() {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return m.kindColor()
}

// isPaused reports a stopped timer partway through a session.
func (m Model) isPaused() bool {
	return !m.state.Running && m.state.Remaining < m.state.TotalSeconds()
}

// View renders the timer screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	sections := []string{
		titleStyle.Render(m.theme.IconApp + " Pomodoro"),
		"",
		m.viewBadge(),
		"",
		m.viewChips(),
		"",
		renderClock(m.state.FormatRemaining(), m.clockColor(), m.width),
		helpStyle.Render(fmt.Sprintf("%s Cycles: %d", m.theme.IconCycles, m.state.Cycles)),
		"",
		m.viewProgress(),
		m.viewStatus(),
		"",
		helpStyle.Italic(true).Render(m.motto()),
	}

	if m.toast != "" {
		toastStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorToast)).
			Padding(0, 2)
		sections = append(sections, "", toastStyle.Render(m.toast))
	}

	sections = append(sections, "", m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.inline {
		return content + "\n"
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewBadge() string {
	icon := m.theme.IconFocus
	if m.state.IsBreak() {
		icon = m.theme.IconBreak
	}
	label := fmt.Sprintf("%s %s mode", icon, domain.KindLabel(m.state.Kind))
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(m.kindColor()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.kindColor()).
		Padding(0, 2).
		Render(label)
}

// viewChips renders the focus choices. The selected chip is only
// highlighted during a focus session.
func (m Model) viewChips() string {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(m.theme.ColorHelp))
	selected := base.Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(m.theme.ColorFocus))

	chips := make([]string, len(domain.FocusChoices))
	for i, minutes := range domain.FocusChoices {
		label := fmt.Sprintf("%dm", minutes)
		if m.state.IsFocus() && minutes == m.state.FocusMinutes {
			chips[i] = selected.Render(label)
		} else {
			chips[i] = base.Render(label)
		}
	}
	return strings.Join(chips, " ")
}

func (m Model) viewProgress() string {
	start, end := m.theme.FocusGradientStart, m.theme.FocusGradientEnd
	if m.state.IsBreak() {
		start, end = m.theme.BreakGradientStart, m.theme.BreakGradientEnd
	}
	bar := progress.New(progress.WithGradient(start, end), progress.WithoutPercentage())
	bar.Width = min(max(m.width-4, 10), maxProgressWidth)
	return bar.ViewAs(m.state.Progress())
}

// viewStatus shows what the toggle key will do next.
func (m Model) viewStatus() string {
	if m.state.Running {
		return lipgloss.NewStyle().Foreground(m.kindColor()).Render("▶ running · space to pause")
	}
	if m.isPaused() {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(m.theme.IconPaused + " PAUSED · space to resume")
	}
	return lipgloss.NewStyle().Foreground(m.kindColor()).Render("space to start")
}

func (m Model) motto() string {
	if m.state.IsBreak() {
		return breakMotto
	}
	return focusMotto
}
