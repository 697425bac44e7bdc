package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var unsafeSegment = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// IsGitURL reports whether target names a remote or local git repository
// rather than a suite directory.
func IsGitURL(target string) bool {
	switch {
	case strings.HasPrefix(target, "https://"), strings.HasPrefix(target, "http://"),
		strings.HasPrefix(target, "ssh://"), strings.HasPrefix(target, "git@"),
		strings.HasPrefix(target, "file://"):
		return true
	}
	return strings.HasSuffix(target, ".git")
}

// FetchSuite clones url into cacheDir and checks out ref (a commit, tag or
// branch; HEAD when empty). A checkout already cached for the resolved commit
// is reused. It returns the directory holding suite.yml.
func FetchSuite(ctx context.Context, url, ref, cacheDir string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("fetch: empty repository url")
	}
	repoDir := filepath.Join(cacheDir, sanitizePathSegment(url))
	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp(repoDir, "git-fetch-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		return "", fmt.Errorf("git clone %s: %w", url, err)
	}

	revision := plumbing.Revision("HEAD")
	if ref = strings.TrimSpace(ref); ref != "" {
		revision = plumbing.Revision(ref)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	targetDir := filepath.Join(repoDir, hash.String())
	if _, err := os.Stat(filepath.Join(targetDir, SuiteFileName)); err == nil {
		log.Debugf("reusing cached suite %s@%s", url, hash)
		return targetDir, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return "", fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, SuiteFileName)); err != nil {
		return "", fmt.Errorf("fetch: %s@%s has no %s", url, hash, SuiteFileName)
	}
	_ = os.RemoveAll(targetDir)
	if err := os.Rename(tmpDir, targetDir); err != nil {
		return "", err
	}
	log.Infof("fetched suite %s@%s", url, hash)
	return targetDir, nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	segment = strings.TrimPrefix(segment, "file://")
	segment = unsafeSegment.ReplaceAllString(segment, "_")
	segment = strings.Trim(segment, "_")
	if segment == "" {
		return "head"
	}
	return segment
}
