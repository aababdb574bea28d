package ports

import "context"

// GitInfo is the repository context attached to journaled cycles.
type GitInfo struct {
	Branch     string
	Commit     string
	Repository string
	IsClean    bool
}

// GitDetector looks up the repository the timer was started in.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect reads branch and HEAD for the repository containing dir.
	Detect(ctx context.Context, dir string) (*GitInfo, error)
}
