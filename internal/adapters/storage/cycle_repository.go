package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// ErrDuplicateCycle is returned when a cycle id is saved twice.
var ErrDuplicateCycle = errors.New("cycle already journaled")

const cycleColumns = `id, number, focus_minutes, completed_at_ms, git_branch, git_commit`

// cycleRepository implements ports.CycleRepository using SQLite.
type cycleRepository struct {
	db *sql.DB
}

func newCycleRepository(db *sql.DB) ports.CycleRepository {
	return &cycleRepository{db: db}
}

// Save appends a cycle to the journal.
func (r *cycleRepository) Save(ctx context.Context, cycle *domain.Cycle) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cycles (`+cycleColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		cycle.ID,
		cycle.Number,
		cycle.FocusMinutes,
		cycle.CompletedAt.UnixMilli(),
		cycle.GitBranch,
		cycle.GitCommit,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateCycle, cycle.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save cycle: %w", err)
	}
	return nil
}

// FindByID retrieves a cycle by id.
func (r *cycleRepository) FindByID(ctx context.Context, id string) (*domain.Cycle, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cycleColumns+` FROM cycles WHERE id = ?`, id)
	cycle, err := scanCycle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCycleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cycle: %w", err)
	}
	return cycle, nil
}

// FindRange retrieves cycles completed in [since, until), oldest first.
func (r *cycleRepository) FindRange(ctx context.Context, since, until time.Time) ([]*domain.Cycle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cycleColumns+` FROM cycles
		WHERE completed_at_ms >= ? AND completed_at_ms < ?
		ORDER BY completed_at_ms ASC, number ASC`,
		lowerBound(since), until.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	return collectCycles(rows)
}

// FindRecent retrieves the newest cycles, newest first.
func (r *cycleRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Cycle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cycleColumns+` FROM cycles ORDER BY completed_at_ms DESC, number DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	return collectCycles(rows)
}

// Count returns the number of cycles completed in [since, until).
func (r *cycleRepository) Count(ctx context.Context, since, until time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cycles WHERE completed_at_ms >= ? AND completed_at_ms < ?`,
		lowerBound(since), until.UnixMilli(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count cycles: %w", err)
	}
	return n, nil
}

// lowerBound maps the zero time to the start of the epoch.
func lowerBound(since time.Time) int64 {
	if since.IsZero() {
		return 0
	}
	return since.UnixMilli()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCycle(row rowScanner) (*domain.Cycle, error) {
	var (
		c          domain.Cycle
		completeMs int64
	)
	if err := row.Scan(&c.ID, &c.Number, &c.FocusMinutes, &completeMs, &c.GitBranch, &c.GitCommit); err != nil {
		return nil, err
	}
	c.CompletedAt = time.UnixMilli(completeMs)
	return &c, nil
}

func collectCycles(rows *sql.Rows) ([]*domain.Cycle, error) {
	defer func() { _ = rows.Close() }()

	var cycles []*domain.Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cycles: %w", err)
	}
	return cycles, nil
}
