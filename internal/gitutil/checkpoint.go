// Package gitutil creates checkpoint commits before fixes touch the working
// tree and exposes best-effort repository metadata for audit records.
package gitutil

import (
	"fmt"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Checkpoint stages the given paths (relative to root) and commits them so a
// fix run can be undone with a plain git revert. Returns the commit hash.
// Requires root to be inside a git repository.
func Checkpoint(root, message string, paths []string) (string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree: %w", err)
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			return "", fmt.Errorf("stage %s: %w", p, err)
		}
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "codemend",
			Email: "codemend@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// RepoMetadata returns (repo, commit, branch) best-effort for the given
// root. Empty strings are returned when root is not a repository or the
// detail is unavailable.
func RepoMetadata(root string) (string, string, string) {
	r, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", ""
	}

	repo := ""
	if remote, err := r.Remote("origin"); err == nil && len(remote.Config().URLs) > 0 {
		repo = shortRemote(remote.Config().URLs[0])
	}

	commit, branch := "", ""
	if head, err := r.Head(); err == nil {
		commit = head.Hash().String()
		if head.Name().IsBranch() {
			branch = head.Name().Short()
		}
	}
	return repo, commit, branch
}

// shortRemote reduces a remote URL to owner/name when possible.
func shortRemote(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
