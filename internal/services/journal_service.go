package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// dayLayout keys CycleStats.ByDay.
const dayLayout = "2006-01-02"

// JournalService records finished focus sessions and reports on them.
type JournalService struct {
	storage    ports.Storage
	git        ports.GitDetector
	workingDir string
	logger     *slog.Logger
	now        func() time.Time
}

// Ensure JournalService implements ports.JournalReader.
var _ ports.JournalReader = (*JournalService)(nil)

// NewJournalService creates a journal service. git may be nil.
func NewJournalService(storage ports.Storage, git ports.GitDetector, workingDir string, logger *slog.Logger) *JournalService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &JournalService{
		storage:    storage,
		git:        git,
		workingDir: workingDir,
		logger:     logger,
		now:        time.Now,
	}
}

// Record saves a finished cycle, attaching git context when available.
func (s *JournalService) Record(ctx context.Context, cycle domain.Cycle) error {
	if s.git != nil {
		info, err := s.git.Detect(ctx, s.workingDir)
		if err == nil && info != nil {
			cycle.SetGitContext(info.Branch, info.Commit)
		} else if err != nil {
			s.logger.Debug("no git context", "error", err)
		}
	}

	if err := s.storage.Cycles().Save(ctx, &cycle); err != nil {
		return fmt.Errorf("failed to save cycle: %w", err)
	}
	s.logger.Info("cycle recorded", "id", cycle.ID, "number", cycle.Number, "focus_minutes", cycle.FocusMinutes)
	return nil
}

// Get returns a single cycle.
func (s *JournalService) Get(ctx context.Context, id string) (*domain.Cycle, error) {
	return s.storage.Cycles().FindByID(ctx, id)
}

// Recent implements ports.JournalReader.
func (s *JournalService) Recent(ctx context.Context, limit int) ([]*domain.Cycle, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.storage.Cycles().FindRecent(ctx, limit)
}

// Range returns cycles completed in [since, until), oldest first.
func (s *JournalService) Range(ctx context.Context, since, until time.Time) ([]*domain.Cycle, error) {
	return s.storage.Cycles().FindRange(ctx, since, until)
}

// Stats implements ports.JournalReader.
func (s *JournalService) Stats(ctx context.Context, since, until time.Time) (*domain.CycleStats, error) {
	cycles, err := s.storage.Cycles().FindRange(ctx, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to load cycles: %w", err)
	}

	stats := &domain.CycleStats{
		Since:  since,
		Until:  until,
		Cycles: len(cycles),
		ByDay:  make(map[string]int),
	}
	for _, c := range cycles {
		stats.FocusTime += c.FocusDuration()
		stats.ByDay[c.CompletedAt.Local().Format(dayLayout)]++
	}
	stats.LongestStreak = longestStreak(stats.ByDay)
	return stats, nil
}

// StatsForPeriod aggregates one of today, week, month or all.
func (s *JournalService) StatsForPeriod(ctx context.Context, period string) (*domain.CycleStats, error) {
	since, until, label, err := domain.PeriodRange(period, s.now())
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx, since, until)
	if err != nil {
		return nil, err
	}
	stats.Label = label
	return stats, nil
}

// longestStreak counts the most consecutive calendar days present in byDay.
func longestStreak(byDay map[string]int) int {
	days := make([]time.Time, 0, len(byDay))
	for key, n := range byDay {
		if n == 0 {
			continue
		}
		d, err := time.Parse(dayLayout, key)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
