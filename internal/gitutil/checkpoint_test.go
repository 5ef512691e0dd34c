package gitutil

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	return dir, repo
}

func commitFile(t *testing.T, dir string, repo *git.Repository, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatal(err)
	}
	sig := &object.Signature{Name: "tester", Email: "tester@example.com"}
	if _, err := wt.Commit("base", &git.CommitOptions{Author: sig}); err != nil {
		t.Fatal(err)
	}
}

func TestCheckpointCommitsModifiedFiles(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.js", "var x = 1\n")

	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("let x = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	hash, err := Checkpoint(dir, "codemend: pre-fix checkpoint", []string{"a.js"})
	if err != nil {
		t.Fatal(err)
	}
	if len(hash) != 40 {
		t.Fatalf("expected full commit hash, got %q", hash)
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	if head.Hash().String() != hash {
		t.Fatalf("HEAD %s != checkpoint %s", head.Hash(), hash)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	status, err := wt.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !status.IsClean() {
		t.Fatalf("worktree dirty after checkpoint: %v", status)
	}
}

func TestCheckpointOutsideRepositoryFails(t *testing.T) {
	if _, err := Checkpoint(t.TempDir(), "msg", nil); err == nil {
		t.Fatal("expected error outside a repository")
	}
}

func TestRepoMetadata(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.js", "let x = 1\n")

	_, commit, branch := RepoMetadata(dir)
	if commit == "" {
		t.Fatal("expected commit hash")
	}
	if branch == "" {
		t.Fatal("expected branch name")
	}

	repoName, _, _ := RepoMetadata(t.TempDir())
	if repoName != "" {
		t.Fatalf("expected empty metadata outside a repo, got %q", repoName)
	}
}

func TestShortRemote(t *testing.T) {
	cases := map[string]string{
		"https://github.com/acme/webapp.git": "acme/webapp",
		"git@github.com:acme/webapp.git":     "acme/webapp",
		"host.example.com:team/webapp":       "team/webapp",
	}
	for in, want := range cases {
		if got := shortRemote(in); got != want {
			t.Fatalf("shortRemote(%q) = %q, want %q", in, got, want)
		}
	}
}
