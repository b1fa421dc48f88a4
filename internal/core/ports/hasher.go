package ports

//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks

// ContentHasher computes content digests of directory trees.
type ContentHasher interface {
	// Checksum returns a hex digest of the relative paths and contents under dir.
	Checksum(dir string) (string, error)
}

// TreeCopier copies directory trees.
type TreeCopier interface {
	// CopyTree copies src into dst, creating dst if needed.
	CopyTree(src, dst string) error
}
