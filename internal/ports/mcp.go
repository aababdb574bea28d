package ports

import (
	"context"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// JournalReader provides journal data to read-only surfaces (MCP, export).
// This is a driven port (implemented by the services layer).
type JournalReader interface {
	// Stats aggregates cycles completed in [since, until).
	Stats(ctx context.Context, since, until time.Time) (*domain.CycleStats, error)

	// StatsForPeriod aggregates a named period (see domain.Periods).
	StatsForPeriod(ctx context.Context, period string) (*domain.CycleStats, error)

	// Recent returns the newest cycles, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Cycle, error)

	// Get returns one cycle or domain.ErrCycleNotFound.
	Get(ctx context.Context, id string) (*domain.Cycle, error)
}
