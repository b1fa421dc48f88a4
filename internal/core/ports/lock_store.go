package ports

import "go.trai.ch/lingo/internal/core/domain"

// LockStore reads and writes lock files.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	Load(path string) (*domain.Lock, error)
	// Save replaces the file at path.
	Save(path string, lock *domain.Lock) error
}
