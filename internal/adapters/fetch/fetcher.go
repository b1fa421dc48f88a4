// Package fetch materializes dependency sources from path, git and tarball origins.
package fetch

import (
	"context"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceFetcher = (*Fetcher)(nil)

// Fetcher dispatches to the fetcher for an origin's kind.
type Fetcher struct {
	path    *PathFetcher
	git     *GitFetcher
	tarball *TarballFetcher
}

// New creates a Fetcher using copier for path origins.
func New(copier ports.TreeCopier) *Fetcher {
	return &Fetcher{
		path:    NewPathFetcher(copier),
		git:     NewGitFetcher(),
		tarball: NewTarballFetcher(),
	}
}

// Fetch populates dest from origin.
func (f *Fetcher) Fetch(ctx context.Context, origin domain.Origin, dest string) (string, error) {
	switch origin.Kind {
	case domain.OriginPath:
		return f.path.Fetch(ctx, origin, dest)
	case domain.OriginGit:
		return f.git.Fetch(ctx, origin, dest)
	case domain.OriginTarball:
		return f.tarball.Fetch(ctx, origin, dest)
	case domain.OriginRegistry:
		return "", zerr.With(domain.ErrRegistryUnsupported, "registry", origin.Location)
	default:
		return "", zerr.With(domain.ErrInvalidOrigin, "type", string(origin.Kind))
	}
}
