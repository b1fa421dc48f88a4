// Package cas implements the content-addressed library cache.
package cas

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	lockFileName  = ".lingo.lock"
	scratchPrefix = ".scratch-"

	defaultRetryDelay = 100 * time.Millisecond
)

var _ ports.LibraryCache = (*Store)(nil)

// Store keeps fetched packages under root/<hash>, guarded by an advisory file lock.
type Store struct {
	retryDelay time.Duration
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{retryDelay: defaultRetryDelay}
}

// Acquire blocks until the advisory lock of root is held or ctx is done.
func (s *Store) Acquire(ctx context.Context, root string) (func() error, error) {
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheLockFailed, err), "path", root)
	}

	path := filepath.Join(root, lockFileName)
	fl := flock.New(path)

	locked, err := fl.TryLockContext(ctx, s.retryDelay)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheLockFailed, err), "path", path)
	}
	if !locked {
		return nil, zerr.With(domain.ErrCacheLockFailed, "path", path)
	}

	return func() error {
		if err := fl.Unlock(); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to release cache lock"), "path", path)
		}
		return nil
	}, nil
}

// Scratch creates a fresh, empty directory under root.
func (s *Store) Scratch(root string) (string, error) {
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", root)
	}

	dir, err := os.MkdirTemp(root, scratchPrefix+"*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create scratch directory"), "path", root)
	}
	return dir, nil
}

// Commit moves scratch into root/hash. When the hash is already stored the scratch
// directory is discarded and the existing copy is kept.
func (s *Store) Commit(root, scratch, hash string) (string, error) {
	if !validHash(hash) {
		return "", zerr.With(zerr.New("invalid cache key"), "hash", hash)
	}

	dest := s.Path(root, hash)
	if s.Contains(root, hash) {
		return dest, discard(scratch)
	}

	if err := os.Rename(scratch, dest); err != nil {
		// Another writer may have stored the same content in the meantime.
		if s.Contains(root, hash) {
			return dest, discard(scratch)
		}
		return "", zerr.With(zerr.Wrap(err, "failed to commit package to cache"), "path", dest)
	}

	return dest, nil
}

// Discard removes a scratch directory. Missing directories are ignored.
func (s *Store) Discard(scratch string) error {
	return discard(scratch)
}

// Path returns the directory of hash under root.
func (s *Store) Path(root, hash string) string {
	return filepath.Join(root, hash)
}

// Contains reports whether hash is stored under root.
func (s *Store) Contains(root, hash string) bool {
	if !validHash(hash) {
		return false
	}
	info, err := os.Stat(s.Path(root, hash))
	return err == nil && info.IsDir()
}

func validHash(hash string) bool {
	return hash != "" &&
		!strings.HasPrefix(hash, ".") &&
		!strings.ContainsAny(hash, `/\`)
}

func discard(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove scratch directory"), "path", dir)
	}
	return nil
}
