package ports

import "context"

// LibraryCache is the content-addressed store of fetched packages.
//
//go:generate mockgen -source=library_cache.go -destination=mocks/mock_library_cache.go -package=mocks
type LibraryCache interface {
	// Acquire takes the advisory lock of the cache at root. The returned
	// function releases it.
	Acquire(ctx context.Context, root string) (func() error, error)
	// Scratch creates an empty directory under root to fetch into.
	Scratch(root string) (string, error)
	// Commit moves scratch contents to root/hash and returns that path.
	// Committing a hash that already exists leaves the stored copy in place.
	Commit(root, scratch, hash string) (string, error)
	// Discard removes a scratch directory that will not be committed.
	Discard(scratch string) error
	// Path returns where hash is stored under root.
	Path(root, hash string) string
	// Contains reports whether hash is stored under root.
	Contains(root, hash string) bool
}
