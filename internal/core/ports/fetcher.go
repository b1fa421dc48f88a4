package ports

import (
	"context"

	"go.trai.ch/lingo/internal/core/domain"
)

// SourceFetcher materializes a dependency's source tree from its origin.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type SourceFetcher interface {
	// Fetch populates dest with the sources at origin. It returns the concrete
	// revision checked out for git origins and an empty string otherwise.
	// Fetch does not inspect what it wrote.
	Fetch(ctx context.Context, origin domain.Origin, dest string) (string, error)
}
