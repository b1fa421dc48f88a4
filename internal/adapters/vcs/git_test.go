package vcs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lingo/internal/adapters/vcs"
	"go.trai.ch/lingo/internal/core/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o600))
}

// newRepo creates a worktree with committed and untracked files:
//
//	project/Lingo.toml                      committed
//	project/target/lfc_include/foo/a.lf     committed
//	project/target/lfc_include/bar/b.lf     untracked
//	project/target/lfc_include/bar/c/d.lf   untracked
//	project/build/out.o                     ignored
func newRepo(t *testing.T) (string, string) {
	t.Helper()
	repoDir := t.TempDir()
	project := filepath.Join(repoDir, "project")

	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	writeFile(t, filepath.Join(project, "Lingo.toml"))
	writeFile(t, filepath.Join(project, "target", "lfc_include", "foo", "a.lf"))
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, ".gitignore"), []byte("build/\n"), 0o600))
	for _, name := range []string{".gitignore", "project/Lingo.toml", "project/target/lfc_include/foo/a.lf"} {
		_, err := wt.Add(name)
		require.NoError(t, err)
	}
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "lingo", Email: "lingo@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(t, err)

	writeFile(t, filepath.Join(project, "target", "lfc_include", "bar", "b.lf"))
	writeFile(t, filepath.Join(project, "target", "lfc_include", "bar", "c", "d.lf"))
	writeFile(t, filepath.Join(project, "build", "out.o"))

	return repoDir, project
}

func TestGit_UntrackedDirs_FromProjectSubdir(t *testing.T) {
	_, project := newRepo(t)

	dirs, err := vcs.NewGit().UntrackedDirs(t.Context(), project)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"target/lfc_include/bar",
		"target/lfc_include/bar/c",
	}, dirs)
}

func TestGit_UntrackedDirs_FromRepoRoot(t *testing.T) {
	repoDir, _ := newRepo(t)

	dirs, err := vcs.NewGit().UntrackedDirs(t.Context(), repoDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"project/target/lfc_include/bar",
		"project/target/lfc_include/bar/c",
	}, dirs)
}

func TestGit_UntrackedDirs_NotARepository(t *testing.T) {
	_, err := vcs.NewGit().UntrackedDirs(t.Context(), t.TempDir())
	require.ErrorIs(t, err, domain.ErrNotARepository)
}
