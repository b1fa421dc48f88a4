// Package vcs answers version-control questions with go-git.
package vcs

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionControl = (*Git)(nil)

// Git implements ports.VersionControl for git worktrees.
type Git struct{}

// NewGit creates a new Git.
func NewGit() *Git {
	return &Git{}
}

// UntrackedDirs lists directories below root that contain untracked files and
// no tracked ones. Ignored files do not count as untracked.
func (g *Git) UntrackedDirs(ctx context.Context, root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "path", root)
	}

	repo, err := git.PlainOpenWithOptions(absRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, zerr.With(errors.Join(domain.ErrNotARepository, err), "path", absRoot)
		}
		return nil, zerr.With(errors.Join(domain.ErrGitFailed, err), "path", absRoot)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrGitFailed, err), "path", absRoot)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, err := wt.Status()
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrGitFailed, err), "path", absRoot)
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrGitFailed, err), "path", absRoot)
	}

	tracked := make(map[string]struct{})
	for _, e := range idx.Entries {
		addAncestors(tracked, e.Name)
	}

	untracked := make(map[string]struct{})
	for file, st := range status {
		if st.Worktree == git.Untracked {
			addAncestors(untracked, file)
		}
	}

	prefix, err := filepath.Rel(wt.Filesystem.Root(), absRoot)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to relate project to worktree"), "path", absRoot)
	}

	return relativeTo(filepath.ToSlash(prefix), untracked, tracked), nil
}

// addAncestors records every parent directory of the slash path file.
func addAncestors(set map[string]struct{}, file string) {
	for dir := path.Dir(file); dir != "." && dir != "/"; dir = path.Dir(dir) {
		set[dir] = struct{}{}
	}
}

// relativeTo returns the sorted untracked-only dirs under prefix, relative to it.
func relativeTo(prefix string, untracked, tracked map[string]struct{}) []string {
	var dirs []string
	for dir := range untracked {
		if _, ok := tracked[dir]; ok {
			continue
		}

		rel := dir
		if prefix != "." {
			var ok bool
			if rel, ok = strings.CutPrefix(dir, prefix+"/"); !ok {
				continue
			}
		}
		dirs = append(dirs, rel)
	}

	slices.Sort(dirs)
	return dirs
}
