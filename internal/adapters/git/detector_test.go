package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initRepo creates a repository with one committed file.
func initRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("focus"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := wt.Add("notes.txt"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}
	hash, err := wt.Commit("first", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return dir, repo, hash
}

func TestDetector_Detect(t *testing.T) {
	dir, _, hash := initRepo(t)

	info, err := NewDetector(true).Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Commit != hash.String() {
		t.Errorf("Commit = %s, want %s", info.Commit, hash)
	}
	if info.Branch != "master" && info.Branch != "main" {
		t.Errorf("unexpected branch %q", info.Branch)
	}
	if !info.IsClean {
		t.Error("expected clean worktree after commit")
	}
}

func TestDetector_Detect_FromSubdirectory(t *testing.T) {
	dir, _, hash := initRepo(t)
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	info, err := NewDetector(false).Detect(context.Background(), sub)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Commit != hash.String() {
		t.Errorf("Commit = %s, want %s", info.Commit, hash)
	}
}

func TestDetector_Detect_Dirty(t *testing.T) {
	dir, _, _ := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("changed"), 0644); err != nil {
		t.Fatalf("Failed to modify file: %v", err)
	}

	info, err := NewDetector(true).Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.IsClean {
		t.Error("expected dirty worktree")
	}

	quick, err := NewDetector(false).Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !quick.IsClean {
		t.Error("status should not be computed when checkStatus is off")
	}
}

func TestDetector_Detect_Remote(t *testing.T) {
	dir, repo, _ := initRepo(t)
	_, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:jayPark21/Pomodoro-timer.git"},
	})
	if err != nil {
		t.Fatalf("Failed to create remote: %v", err)
	}

	info, err := NewDetector(false).Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Repository != "jayPark21/Pomodoro-timer" {
		t.Errorf("Repository = %q", info.Repository)
	}
}

func TestDetector_Detect_NotRepository(t *testing.T) {
	_, err := NewDetector(false).Detect(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Errorf("Detect() error = %v, want ErrNotRepository", err)
	}
}

func TestDetector_Detect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewDetector(false).Detect(ctx, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("Detect() error = %v, want context.Canceled", err)
	}
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"git@github.com:user/repo.git", "user/repo"},
		{"https://github.com/user/repo.git", "user/repo"},
		{"https://gitlab.com/org/project", "org/project"},
		{"git@bitbucket.org:team/repo.git", "team/repo"},
		{"repo", "repo"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := repoName(tt.url); got != tt.want {
				t.Errorf("repoName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestShortCommit(t *testing.T) {
	if got := ShortCommit("abcdef1234567890"); got != "abcdef1" {
		t.Errorf("ShortCommit() = %q", got)
	}
	if got := ShortCommit("abc"); got != "abc" {
		t.Errorf("ShortCommit() = %q", got)
	}
}
