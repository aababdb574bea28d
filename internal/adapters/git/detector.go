// Package git reads repository context with go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
)

// ErrNotRepository is returned when dir is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Detector implements ports.GitDetector using go-git.
type Detector struct {
	// checkStatus also computes IsClean, which walks the work tree.
	checkStatus bool
}

// Ensure Detector implements ports.GitDetector.
var _ ports.GitDetector = (*Detector)(nil)

// NewDetector creates a detector. With checkStatus set, Detect also
// reports whether the work tree is clean.
func NewDetector(checkStatus bool) *Detector {
	return &Detector{checkStatus: checkStatus}
}

// Detect opens the repository containing dir, searching parent directories.
func (d *Detector) Detect(ctx context.Context, dir string) (*ports.GitInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, ErrNotRepository
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	info := &ports.GitInfo{
		Branch:  head.Name().Short(),
		Commit:  head.Hash().String(),
		IsClean: true,
	}
	if !head.Name().IsBranch() {
		info.Branch = "detached"
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.Repository = repoName(urls[0])
		}
	}

	if d.checkStatus {
		wt, err := repo.Worktree()
		if err != nil {
			return nil, fmt.Errorf("failed to open worktree: %w", err)
		}
		status, err := wt.Status()
		if err != nil {
			return nil, fmt.Errorf("failed to read status: %w", err)
		}
		info.IsClean = status.IsClean()
	}

	return info, nil
}

// repoName turns a remote URL into owner/name.
func repoName(url string) string {
	url = strings.TrimSuffix(url, ".git")
	if i := strings.LastIndex(url, ":"); strings.HasPrefix(url, "git@") && i >= 0 {
		return url[i+1:]
	}
	parts := strings.Split(url, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return url
}

// ShortCommit returns the first seven characters of a commit hash.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
