package domain

import "github.com/google/uuid"

// newCycleID returns a random identifier for a journal entry.
func newCycleID() string {
	return uuid.NewString()
}
