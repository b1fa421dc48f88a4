package fetch

import (
	"context"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

// PathFetcher copies a local directory.
type PathFetcher struct {
	copier ports.TreeCopier
}

// NewPathFetcher creates a new PathFetcher.
func NewPathFetcher(copier ports.TreeCopier) *PathFetcher {
	return &PathFetcher{copier: copier}
}

// Fetch copies origin.Location into dest. Path origins have no revision.
func (f *PathFetcher) Fetch(ctx context.Context, origin domain.Origin, dest string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := f.copier.CopyTree(origin.Location, dest); err != nil {
		return "", zerr.With(err, "source", origin.Location)
	}
	return "", nil
}
