package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables holding an HTTPS token for private repositories.
const (
	EnvGitToken    = "GIT_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
)

// GitFetcher clones git repositories and checks out a tag or revision.
type GitFetcher struct {
	lookup func(string) (string, bool)
}

// NewGitFetcher creates a new GitFetcher reading credentials from the environment.
func NewGitFetcher() *GitFetcher {
	return &GitFetcher{lookup: os.LookupEnv}
}

// Fetch clones origin into dest and returns the checked out commit.
// Rev wins over Tag; with neither the remote's default branch is used.
// The .git directory is removed afterwards, leaving a plain source tree.
func (f *GitFetcher) Fetch(ctx context.Context, origin domain.Origin, dest string) (string, error) {
	repo, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:  origin.Location,
		Auth: f.auth(origin.Location),
		Tags: git.AllTags,
	})
	if err != nil {
		return "", gitError(err, "clone", origin)
	}

	commit, err := f.checkout(repo, origin)
	if err != nil {
		return "", err
	}

	if err := os.RemoveAll(filepath.Join(dest, git.GitDirName)); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to remove git metadata"), "path", dest)
	}

	return commit.String(), nil
}

func (f *GitFetcher) checkout(repo *git.Repository, origin domain.Origin) (plumbing.Hash, error) {
	var (
		hash plumbing.Hash
		err  error
	)

	switch {
	case origin.Rev != "":
		var resolved *plumbing.Hash
		resolved, err = repo.ResolveRevision(plumbing.Revision(origin.Rev))
		if resolved != nil {
			hash = *resolved
		}
	case origin.Tag != "":
		hash, err = findTag(repo, origin.Tag)
	default:
		var head *plumbing.Reference
		head, err = repo.Head()
		if head != nil {
			return head.Hash(), nil
		}
	}
	if err != nil {
		return plumbing.ZeroHash, gitError(err, "resolve", origin)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, gitError(err, "worktree", origin)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return plumbing.ZeroHash, gitError(err, "checkout", origin)
	}

	return hash, nil
}

// findTag returns the commit a tag points to, peeling annotated tags.
// A missing "v" prefix is tolerated in both directions.
func findTag(repo *git.Repository, tag string) (plumbing.Hash, error) {
	names := []string{tag}
	if trimmed, ok := strings.CutPrefix(tag, "v"); ok {
		names = append(names, trimmed)
	} else {
		names = append(names, "v"+tag)
	}

	for _, name := range names {
		ref, err := repo.Reference(plumbing.NewTagReferenceName(name), true)
		if err != nil {
			continue
		}
		if obj, err := repo.TagObject(ref.Hash()); err == nil {
			commit, err := obj.Commit()
			if err != nil {
				return plumbing.ZeroHash, err
			}
			return commit.Hash, nil
		}
		return ref.Hash(), nil
	}

	return plumbing.ZeroHash, zerr.With(plumbing.ErrReferenceNotFound, "tag", tag)
}

func (f *GitFetcher) auth(url string) transport.AuthMethod {
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return nil
	}
	if token, ok := f.lookup(EnvGitToken); ok && token != "" {
		return &http.BasicAuth{Username: "git", Password: token}
	}
	if token, ok := f.lookup(EnvGitHubToken); ok && token != "" {
		return &http.BasicAuth{Username: "x-access-token", Password: token}
	}
	return nil
}

func gitError(err error, op string, origin domain.Origin) error {
	joined := errors.Join(domain.ErrGitFailed, err)
	joined = zerr.With(joined, "operation", op)
	return zerr.With(joined, "repository", origin.Location)
}
