package provenance

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestSourceCommitOutsideRepo(t *testing.T) {
	require.Empty(t, SourceCommit(t.TempDir()))
}

func TestSourceCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "DESCRIPTION"), []byte("Package: x\nVersion: 1.0\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("DESCRIPTION")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.org", When: time.Now()},
	})
	require.NoError(t, err)

	got := SourceCommit(dir)
	require.Len(t, got, 12)
	require.Equal(t, hash.String()[:12], got)

	// DetectDotGit walks up from subdirectories.
	sub := filepath.Join(dir, "vignettes")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.Equal(t, got, SourceCommit(sub))
}
