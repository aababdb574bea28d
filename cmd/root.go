// Package cmd provides the CLI commands for the Pomodoro timer.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/adapters/clock"
	"github.com/jayPark21/Pomodoro-timer/internal/adapters/notification"
	"github.com/jayPark21/Pomodoro-timer/internal/adapters/sound"
	"github.com/jayPark21/Pomodoro-timer/internal/adapters/tui"
	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
	"github.com/jayPark21/Pomodoro-timer/internal/services"
	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	debugMode  bool
	inlineMode bool

	// Timer flags
	focusFlag int
	muteFlag  bool
	noJournal bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Pomodoro - a focus/break timer for the terminal",
	Long: `Pomodoro alternates a focus session you pick (5 to 30 minutes)
with a one-minute break, counting completed cycles as you go.

Run "pomodoro" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the journal database (default: ~/.pomodoro/pomodoro.db)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write a debug log to ~/.pomodoro/pomodoro.log")

	rootCmd.Flags().IntVarP(&focusFlag, "focus", "f", 0, fmt.Sprintf("Initial focus length in minutes, one of %v", domain.FocusChoices))
	rootCmd.Flags().BoolVarP(&muteFlag, "mute", "m", false, "Disable all tones")
	rootCmd.Flags().BoolVar(&noJournal, "no-journal", false, "Don't record completed cycles")
	rootCmd.Flags().BoolVarP(&inlineMode, "inline", "i", false, "Compact inline timer (no fullscreen)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Pomodoro\nVersion: {{.Version}}\n")
}

// runTimer opens the interactive timer and blocks until the user quits.
func runTimer(cmd *cobra.Command, args []string) error {
	focus := app.config.Timer.DefaultFocus
	if cmd.Flags().Changed("focus") {
		if err := domain.ValidateFocusMinutes(focusFlag); err != nil {
			return err
		}
		focus = focusFlag
	}

	ctx := setupSignalHandler()

	var sink ports.ToneSink = sound.Muted{}
	var beeper *sound.Beeper
	if app.config.Sound.Enabled && !muteFlag {
		beeper = sound.NewBeeper(app.logger)
		sink = beeper
	}

	notifier := notification.NewFanout()
	controller, err := services.NewSessionController(focus, clock.New(), sink, notifier, app.logger)
	if err != nil {
		return err
	}
	defer controller.Close()
	controller.SetCountdownBeeps(app.config.Sound.CountdownBeeps)

	view := tui.NewTimer(controller, &app.config.Theme, inlineMode)
	if app.config.Notifications.Enabled {
		notifier.Add(view)
		notifier.Add(notification.New(&app.config.Notifications, app.logger))
	}
	controller.SetOnChange(view.Changed)

	if app.config.Journal.Enabled && !noJournal {
		controller.SetOnCycleComplete(func(cycle domain.Cycle) {
			recordCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := app.journal.Record(recordCtx, cycle); err != nil {
				app.logger.Error("failed to record cycle", "error", err)
			}
		})
	}

	app.logger.Info("timer started", "focus_minutes", focus, "inline", inlineMode)

	if err := view.Run(ctx); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}

	controller.Close()
	if beeper != nil {
		beeper.Wait()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
