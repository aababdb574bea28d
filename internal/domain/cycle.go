package domain

import "time"

// Cycle is one completed focus session, as kept in the journal.
type Cycle struct {
	ID           string
	Number       int // position within the run that produced it
	FocusMinutes int
	CompletedAt  time.Time
	GitBranch    string
	GitCommit    string
}

// NewCycle creates a journal entry for a finished focus session.
func NewCycle(number, focusMinutes int, completedAt time.Time) *Cycle {
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	return &Cycle{
		ID:           newCycleID(),
		Number:       number,
		FocusMinutes: focusMinutes,
		CompletedAt:  completedAt,
	}
}

// FocusDuration returns the focus length of the cycle.
func (c *Cycle) FocusDuration() time.Duration {
	return time.Duration(c.FocusMinutes) * time.Minute
}

// SetGitContext stores git information for the cycle.
func (c *Cycle) SetGitContext(branch, commit string) {
	c.GitBranch = branch
	c.GitCommit = commit
}

// CycleStats aggregates journaled cycles over a period.
type CycleStats struct {
	Label         string
	Since         time.Time
	Until         time.Time
	Cycles        int
	FocusTime     time.Duration
	ByDay         map[string]int // YYYY-MM-DD -> cycles
	LongestStreak int            // most consecutive days with at least one cycle
}
