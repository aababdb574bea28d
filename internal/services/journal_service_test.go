package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/adapters/storage"
	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func noon(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

func TestJournalService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("with git context", func(t *testing.T) {
		store := setupTestStorage(t)
		git := &fakeGit{info: &ports.GitInfo{Branch: "main", Commit: "abc123"}}
		svc := NewJournalService(store, git, ".", nil)

		cycle := domain.NewCycle(1, 25, noon(2026, 10, 18))
		if err := svc.Record(ctx, *cycle); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		got, err := svc.Get(ctx, cycle.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.GitBranch != "main" || got.GitCommit != "abc123" {
			t.Errorf("git context = %q/%q", got.GitBranch, got.GitCommit)
		}
	})

	t.Run("outside a repository", func(t *testing.T) {
		store := setupTestStorage(t)
		svc := NewJournalService(store, &fakeGit{err: errors.New("no repo")}, ".", nil)

		cycle := domain.NewCycle(1, 25, noon(2026, 10, 18))
		if err := svc.Record(ctx, *cycle); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		got, err := svc.Get(ctx, cycle.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.GitBranch != "" {
			t.Errorf("GitBranch = %q, want empty", got.GitBranch)
		}
	})

	t.Run("same cycle twice", func(t *testing.T) {
		store := setupTestStorage(t)
		svc := NewJournalService(store, nil, ".", nil)

		cycle := domain.NewCycle(1, 25, noon(2026, 10, 18))
		if err := svc.Record(ctx, *cycle); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if err := svc.Record(ctx, *cycle); !errors.Is(err, storage.ErrDuplicateCycle) {
			t.Errorf("Record() error = %v, want ErrDuplicateCycle", err)
		}
	})
}

func TestJournalService_Stats(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	svc := NewJournalService(store, nil, "", nil)

	days := []time.Time{
		noon(2026, 10, 10),
		noon(2026, 10, 13),
		noon(2026, 10, 14),
		noon(2026, 10, 14).Add(time.Hour),
		noon(2026, 10, 15),
	}
	for i, d := range days {
		if err := svc.Record(ctx, *domain.NewCycle(i+1, 20, d)); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	stats, err := svc.Stats(ctx, noon(2026, 10, 1), noon(2026, 10, 31))
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Cycles != 5 {
		t.Errorf("Cycles = %d, want 5", stats.Cycles)
	}
	if stats.FocusTime != 100*time.Minute {
		t.Errorf("FocusTime = %v, want 100m", stats.FocusTime)
	}
	if stats.ByDay["2026-10-14"] != 2 {
		t.Errorf("ByDay[14] = %d, want 2", stats.ByDay["2026-10-14"])
	}
	if stats.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", stats.LongestStreak)
	}

	empty, err := svc.Stats(ctx, noon(2026, 9, 1), noon(2026, 9, 30))
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if empty.Cycles != 0 || empty.LongestStreak != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestJournalService_StatsForPeriod(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	svc := NewJournalService(store, nil, "", nil)
	svc.now = func() time.Time { return noon(2026, 10, 18) }

	for i, d := range []time.Time{noon(2026, 10, 18), noon(2026, 10, 12), noon(2026, 10, 2), noon(2025, 1, 1)} {
		if err := svc.Record(ctx, *domain.NewCycle(i+1, 25, d)); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	tests := []struct {
		period string
		want   int
		label  string
	}{
		{"today", 1, "Today"},
		{"week", 2, "This week"},
		{"month", 3, "This month"},
		{"all", 4, "All time"},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			stats, err := svc.StatsForPeriod(ctx, tt.period)
			if err != nil {
				t.Fatalf("StatsForPeriod() error = %v", err)
			}
			if stats.Cycles != tt.want {
				t.Errorf("Cycles = %d, want %d", stats.Cycles, tt.want)
			}
			if stats.Label != tt.label {
				t.Errorf("Label = %q, want %q", stats.Label, tt.label)
			}
		})
	}

	if _, err := svc.StatsForPeriod(ctx, "decade"); !errors.Is(err, domain.ErrUnknownPeriod) {
		t.Errorf("StatsForPeriod(decade) error = %v, want ErrUnknownPeriod", err)
	}
}

func TestJournalService_Recent(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	svc := NewJournalService(store, nil, "", nil)

	for i := 0; i < 12; i++ {
		if err := svc.Record(ctx, *domain.NewCycle(i+1, 25, noon(2026, 10, 1+i))); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	recent, err := svc.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("default limit gave %d cycles, want 10", len(recent))
	}
	if recent[0].Number != 12 {
		t.Errorf("newest first: got number %d", recent[0].Number)
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name  string
		byDay map[string]int
		want  int
	}{
		{"empty", map[string]int{}, 0},
		{"single", map[string]int{"2026-10-01": 3}, 1},
		{"month boundary", map[string]int{"2026-09-30": 1, "2026-10-01": 1, "2026-10-02": 1}, 3},
		{"gap", map[string]int{"2026-10-01": 1, "2026-10-03": 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := longestStreak(tt.byDay); got != tt.want {
				t.Errorf("longestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}
