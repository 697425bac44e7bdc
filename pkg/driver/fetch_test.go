package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"brewin/interpreter-go/pkg/ast"
)

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init: %v", err)
	}
	return commitAll(t, repo, dir, "init")
}

func commitAll(t *testing.T, repo *git.Repository, dir, message string) string {
	t.Helper()
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	})
	if err != nil {
		t.Fatalf("git add: %v", err)
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Brewin Tests", Email: "tests@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return hash.String()
}

func TestFetchSuiteFromGit(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "repo")
	writeSampleSuite(t, repoDir)
	rev := initGitRepo(t, repoDir)
	cacheDir := filepath.Join(root, "cache")

	dir, err := FetchSuite(context.Background(), repoDir, "", cacheDir)
	if err != nil {
		t.Fatalf("FetchSuite: %v", err)
	}
	if filepath.Base(dir) != rev {
		t.Fatalf("expected checkout keyed by %s, got %s", rev, dir)
	}
	suite, err := LoadSuite(dir)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	report, err := RunSuite(context.Background(), suite, RunOptions{Parallelism: 2})
	if err != nil {
		t.Fatalf("RunSuite: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("expected fetched suite to pass, failures: %d", len(report.Failed()))
	}

	again, err := FetchSuite(context.Background(), repoDir, rev, cacheDir)
	if err != nil {
		t.Fatalf("second FetchSuite: %v", err)
	}
	if again != dir {
		t.Fatalf("expected cached checkout %s, got %s", dir, again)
	}
}

func TestFetchSuitePinnedRevision(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "repo")
	writeSampleSuite(t, repoDir)
	first := initGitRepo(t, repoDir)

	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("git open: %v", err)
	}
	writeProgram(t, filepath.Join(repoDir, "hello.json"), ast.Main(ast.Call("print", ast.Str("changed"))))
	second := commitAll(t, repo, repoDir, "change hello")
	cacheDir := filepath.Join(root, "cache")

	head, err := FetchSuite(context.Background(), repoDir, "", cacheDir)
	if err != nil {
		t.Fatalf("FetchSuite head: %v", err)
	}
	if filepath.Base(head) != second {
		t.Fatalf("expected HEAD checkout %s, got %s", second, head)
	}

	pinned, err := FetchSuite(context.Background(), repoDir, first, cacheDir)
	if err != nil {
		t.Fatalf("FetchSuite pinned: %v", err)
	}
	suite, err := LoadSuite(pinned)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	report, err := RunSuite(context.Background(), suite, RunOptions{})
	if err != nil {
		t.Fatalf("RunSuite: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("expected pinned revision to pass")
	}
}

func TestFetchSuiteRejectsRepoWithoutManifest(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "repo")
	writeFile(t, filepath.Join(repoDir, "README"), "nothing here\n")
	initGitRepo(t, repoDir)
	if _, err := FetchSuite(context.Background(), repoDir, "", filepath.Join(root, "cache")); err == nil {
		t.Fatalf("expected missing suite.yml error")
	}
	if _, err := os.Stat(filepath.Join(root, "cache")); err != nil {
		t.Fatalf("expected cache dir to exist: %v", err)
	}
}

func TestIsGitURL(t *testing.T) {
	cases := map[string]bool{
		"https://github.com/org/suite.git": true,
		"git@github.com:org/suite":         true,
		"file:///tmp/suite":                true,
		"../suite.git":                     true,
		"./fixtures":                       false,
		"/abs/path/suite":                  false,
	}
	for target, want := range cases {
		if got := IsGitURL(target); got != want {
			t.Errorf("IsGitURL(%q) = %v, want %v", target, got, want)
		}
	}
}
