package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jayPark21/Pomodoro-timer/internal/adapters/git"
	"github.com/jayPark21/Pomodoro-timer/internal/adapters/storage"
	"github.com/jayPark21/Pomodoro-timer/internal/config"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
	"github.com/jayPark21/Pomodoro-timer/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config  *config.Config
	logger  *slog.Logger
	logFile io.Closer
	storage ports.Storage
	git     ports.GitDetector
	journal *services.JournalService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	cfg, loadErr := config.Load()
	if loadErr != nil {
		// If config loading fails, use defaults
		cfg = config.DefaultConfig()
	}
	app.config = cfg

	if err := openLogger(); err != nil {
		return err
	}
	if loadErr != nil {
		app.logger.Warn("using default config", "error", loadErr)
	}

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	var err error
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	if app.config.Journal.GitContext {
		app.git = git.NewDetector(false)
	}

	workingDir, _ := os.Getwd()
	app.journal = services.NewJournalService(app.storage, app.git, workingDir, app.logger)

	app.logger.Debug("services initialized", "db", dbPath, "version", Version)
	return nil
}

// openLogger points app.logger at the debug log, or discards everything.
// The timer owns the terminal, so nothing is ever logged to stdout or stderr.
func openLogger() error {
	if !debugMode {
		app.logger = slog.New(slog.DiscardHandler)
		return nil
	}

	logPath := config.GetLogPath(app.config)
	if err := os.MkdirAll(filepath.Dir(logPath), 0750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	app.logFile = f
	app.logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.storage != nil {
		err = app.storage.Close()
		app.storage = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
	return err
}
