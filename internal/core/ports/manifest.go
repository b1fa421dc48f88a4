package ports

import "go.trai.ch/lingo/internal/core/domain"

// ManifestReader reads project manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Read parses the Lingo.toml at the root of dir.
	Read(dir string) (*domain.Manifest, error)
}
