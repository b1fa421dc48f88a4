package ports

import "context"

// VersionControl answers questions about the repository a project lives in.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VersionControl interface {
	// UntrackedDirs lists directories below root, relative to it and slash
	// separated, that hold untracked files and nothing committed.
	UntrackedDirs(ctx context.Context, root string) ([]string, error)
}
