package cmd

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jayPark21/Pomodoro-timer/internal/config"
	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/spf13/cobra"
)

var statsPeriod string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of completed focus cycles",
	Long:  `Display a terminal dashboard with cycle counts, focus time, and the longest run of consecutive days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := app.journal.StatsForPeriod(cmd.Context(), statsPeriod)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		renderDashboard(out, stats, &app.config.Theme)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "week",
		fmt.Sprintf("Time period: %s", strings.Join(domain.Periods, ", ")))
	rootCmd.AddCommand(statsCmd)
}

func renderDashboard(out io.Writer, stats *domain.CycleStats, theme *config.ThemeConfig) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorFocus))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorFocus))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorBreak))

	// Header
	fmt.Fprintf(out, "  %s\n", titleStyle.Render(stats.Label))
	fmt.Fprintf(out, "  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	// Summary line
	fmt.Fprintf(out, "  Total: %s cycles, %s focused\n",
		valueStyle.Render(fmt.Sprintf("%d", stats.Cycles)),
		valueStyle.Render(formatHours(stats.FocusTime.Hours())),
	)

	if stats.Cycles == 0 {
		fmt.Fprintf(out, "\n  %s\n\n", dimStyle.Render("No completed cycles in this period."))
		return
	}

	fmt.Fprintf(out, "  Longest streak: %s\n\n",
		valueStyle.Render(pluralize(stats.LongestStreak, "day")))

	// Bar chart: cycles per day
	fmt.Fprintf(out, "  %s\n", dimStyle.Render("Cycles by day"))
	days := make([]string, 0, len(stats.ByDay))
	maxCount := 0
	for day, n := range stats.ByDay {
		days = append(days, day)
		maxCount = max(maxCount, n)
	}
	sort.Strings(days)

	const maxBarWidth = 30
	for _, day := range days {
		n := stats.ByDay[day]
		barWidth := int(math.Round(float64(n) / float64(maxCount) * maxBarWidth))
		if barWidth < 1 && n > 0 {
			barWidth = 1
		}
		fmt.Fprintf(out, "  %s %s %d\n",
			dimStyle.Render(dayLabel(day)),
			barColor.Render(buildBar(barWidth)),
			n,
		)
	}
	fmt.Fprintln(out)
}

// dayLabel renders a YYYY-MM-DD key as "Mon Jan 02".
func dayLabel(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("Mon Jan 02")
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}

// formatHours formats a float hours value as "Xh Ym".
func formatHours(h float64) string {
	if h < 0.01 {
		return "0m"
	}
	hours := int(h)
	minutes := int(math.Round((h - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
