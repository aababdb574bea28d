package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/adapters/git"
	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportPeriod string
)

// exportFormats lists the accepted --format values.
var exportFormats = []string{"md", "csv", "yaml"}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cycle journal",
	Long:  "Export completed focus cycles in markdown, CSV, or YAML format.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), cmd.OutOrStdout(), time.Now())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: "+strings.Join(exportFormats, ", "))
	exportCmd.Flags().StringVar(&exportPeriod, "period", "week", "Time period: "+strings.Join(domain.Periods, ", "))
}

func runExport(ctx context.Context, out io.Writer, now time.Time) error {
	since, until, label, err := domain.PeriodRange(exportPeriod, now)
	if err != nil {
		return err
	}

	cycles, err := app.journal.Range(ctx, since, until)
	if err != nil {
		return fmt.Errorf("failed to fetch cycles: %w", err)
	}

	switch exportFormat {
	case "csv":
		return exportCSV(out, cycles)
	case "yaml":
		return exportYAML(out, label, now, cycles)
	case "md", "":
		return exportMarkdown(out, label, now, cycles)
	default:
		return fmt.Errorf("unknown format %q, use one of: %s", exportFormat, strings.Join(exportFormats, ", "))
	}
}

func exportMarkdown(out io.Writer, label string, now time.Time, cycles []*domain.Cycle) error {
	fmt.Fprintf(out, "# Pomodoro Journal: %s\n\n", label)
	fmt.Fprintf(out, "Generated: %s\n\n", now.Format("2006-01-02 15:04"))

	if len(cycles) == 0 {
		fmt.Fprintln(out, "No completed cycles.")
		return nil
	}

	var day string
	for _, c := range cycles {
		local := c.CompletedAt.Local()
		if d := local.Format("2006-01-02"); d != day {
			if day != "" {
				fmt.Fprintln(out)
			}
			day = d
			fmt.Fprintf(out, "## %s\n", local.Format("Monday, 2006-01-02"))
		}
		line := fmt.Sprintf("- %s · %d min focus", local.Format("15:04"), c.FocusMinutes)
		if c.GitBranch != "" {
			line += fmt.Sprintf(" · %s", c.GitBranch)
			if c.GitCommit != "" {
				line += fmt.Sprintf("@%s", git.ShortCommit(c.GitCommit))
			}
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func exportCSV(out io.Writer, cycles []*domain.Cycle) error {
	w := csv.NewWriter(out)

	_ = w.Write([]string{"id", "completed_at", "focus_minutes", "git_branch", "git_commit"})
	for _, c := range cycles {
		_ = w.Write([]string{
			c.ID,
			c.CompletedAt.Format(time.RFC3339),
			strconv.Itoa(c.FocusMinutes),
			c.GitBranch,
			c.GitCommit,
		})
	}

	w.Flush()
	return w.Error()
}

// yamlExport is the document written by --format yaml.
type yamlExport struct {
	Period      string      `yaml:"period"`
	GeneratedAt time.Time   `yaml:"generated_at"`
	Cycles      []yamlCycle `yaml:"cycles"`
	Summary     yamlSummary `yaml:"summary"`
}

type yamlCycle struct {
	ID           string    `yaml:"id"`
	CompletedAt  time.Time `yaml:"completed_at"`
	FocusMinutes int       `yaml:"focus_minutes"`
	GitBranch    string    `yaml:"git_branch,omitempty"`
	GitCommit    string    `yaml:"git_commit,omitempty"`
}

type yamlSummary struct {
	Cycles       int `yaml:"cycles"`
	FocusMinutes int `yaml:"focus_minutes"`
}

func exportYAML(out io.Writer, label string, now time.Time, cycles []*domain.Cycle) error {
	doc := yamlExport{
		Period:      label,
		GeneratedAt: now,
		Cycles:      make([]yamlCycle, 0, len(cycles)),
	}
	for _, c := range cycles {
		doc.Cycles = append(doc.Cycles, yamlCycle{
			ID:           c.ID,
			CompletedAt:  c.CompletedAt,
			FocusMinutes: c.FocusMinutes,
			GitBranch:    c.GitBranch,
			GitCommit:    c.GitCommit,
		})
		doc.Summary.FocusMinutes += c.FocusMinutes
	}
	doc.Summary.Cycles = len(cycles)

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
