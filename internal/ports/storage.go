// Package ports defines the interfaces (driven and driving ports)
// for the timer following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
)

// CycleRepository defines the interface for the cycle journal.
// This is a driven port (implemented by adapters).
type CycleRepository interface {
	// Save appends a completed cycle.
	Save(ctx context.Context, cycle *domain.Cycle) error

	// FindByID retrieves a cycle by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Cycle, error)

	// FindRange retrieves cycles completed in [since, until), oldest first.
	FindRange(ctx context.Context, since, until time.Time) ([]*domain.Cycle, error)

	// FindRecent retrieves the newest cycles, newest first.
	FindRecent(ctx context.Context, limit int) ([]*domain.Cycle, error)

	// Count returns the number of cycles completed in [since, until).
	Count(ctx context.Context, since, until time.Time) (int, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Cycles provides access to the cycle journal.
	Cycles() CycleRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
