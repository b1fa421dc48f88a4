package ports

import (
	"context"

	"go.trai.ch/lingo/internal/core/domain"
)

// Backend builds targets of one language. The batch harness drives it:
// Stage and Configure are mapped over targets, Compile gathers the survivors.
//
//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks
type Backend interface {
	// Name matches the manifest target, e.g. "Cpp".
	Name() string
	// Stage generates the sources and build files of a target.
	Stage(ctx context.Context, target *domain.BuildTarget, opts domain.BuildOptions) error
	// Configure prepares the native build of a staged target.
	Configure(ctx context.Context, target *domain.BuildTarget, opts domain.BuildOptions) error
	// Compile builds every configured target.
	Compile(ctx context.Context, targets []*domain.BuildTarget, opts domain.BuildOptions) error
	// Clean removes the artifacts of a target.
	Clean(ctx context.Context, target *domain.BuildTarget) error
}
