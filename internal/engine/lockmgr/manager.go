// Package lockmgr owns the lifecycle of Lingo.lock: persisting a selection,
// validating and reusing an existing lock, materializing the library
// directory and repairing a project after a broken build.
package lockmgr

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements the lock lifecycle on top of the lock store and the library cache.
type Manager struct {
	store     ports.LockStore
	manifests ports.ManifestReader
	hasher    ports.ContentHasher
	cache     ports.LibraryCache
	copier    ports.TreeCopier
	vcs       ports.VersionControl
	logger    ports.Logger
}

// NewManager creates a new Manager.
func NewManager(
	store ports.LockStore,
	manifests ports.ManifestReader,
	hasher ports.ContentHasher,
	cache ports.LibraryCache,
	copier ports.TreeCopier,
	vcs ports.VersionControl,
	logger ports.Logger,
) *Manager {
	return &Manager{
		store:     store,
		manifests: manifests,
		hasher:    hasher,
		cache:     cache,
		copier:    copier,
		vcs:       vcs,
		logger:    logger,
	}
}

// Persist writes sel to path, replacing any previous lock.
func (m *Manager) Persist(sel domain.Selection, path string) error {
	if err := m.store.Save(path, domain.NewLock(sel)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lock file"), "path", path)
	}
	return nil
}

// LoadAndValidate reads the lock at path and checks every record against the
// cache under cacheRoot. With verify set, cached packages are re-hashed.
// Any mismatch fails the whole load with domain.ErrLockValidationFailed.
func (m *Manager) LoadAndValidate(
	ctx context.Context,
	path, cacheRoot string,
	verify bool,
) (*domain.Lock, domain.Selection, error) {
	lock, err := m.store.Load(path)
	if err != nil {
		return nil, nil, errors.Join(domain.ErrLockValidationFailed, err)
	}

	sel := make(domain.Selection, 0, len(lock.Packages))
	for i, rec := range lock.Packages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		node, err := m.restore(rec, cacheRoot, verify)
		if err != nil {
			return nil, nil, err
		}
		node.ID = domain.NodeID(i)
		sel = append(sel, node)
	}
	return lock, sel, nil
}

func (m *Manager) restore(rec domain.LockRecord, cacheRoot string, verify bool) (domain.DependencyNode, error) {
	if !m.cache.Contains(cacheRoot, rec.Checksum) {
		return domain.DependencyNode{}, stale(rec.Name, zerr.New("package missing from cache"))
	}
	dir := m.cache.Path(cacheRoot, rec.Checksum)

	if verify {
		sum, err := m.hasher.Checksum(dir)
		if err != nil {
			return domain.DependencyNode{}, stale(rec.Name, err)
		}
		if sum != rec.Checksum {
			return domain.DependencyNode{}, zerr.With(
				stale(rec.Name, zerr.New("cached package was modified")), "checksum", sum)
		}
	}

	manifest, err := m.manifests.Read(dir)
	if err != nil {
		return domain.DependencyNode{}, stale(rec.Name, err)
	}
	if !manifest.IsLibrary() {
		return domain.DependencyNode{}, stale(rec.Name, domain.ErrNotALibrary)
	}
	if manifest.Package.Version.Compare(rec.Version) != 0 {
		return domain.DependencyNode{}, zerr.With(
			stale(rec.Name, zerr.New("cached version differs from lock")), "found", manifest.Package.Version.String())
	}

	origin := rec.Origin()
	return domain.DependencyNode{
		Name: rec.Name,
		Ref: domain.PackageRef{
			Name:     rec.Name,
			Origin:   origin,
			Revision: rec.Rev,
		},
		Location:    dir,
		IncludePath: manifest.Library.Location,
		Hash:        rec.Checksum,
		Version:     manifest.Package.Version,
		Revision:    rec.Rev,
		Direct:      rec.Direct,
		Properties:  manifest.Library.Properties,
	}, nil
}

// CheckDrift reports whether the manifest still agrees with the lock: every
// direct dependency needs a direct record from the same origin whose version
// its requirement allows, and no other record may be marked direct.
func (m *Manager) CheckDrift(lock *domain.Lock, manifest *domain.Manifest) error {
	declared := make(map[string]struct{}, len(manifest.Dependencies))
	for _, dep := range manifest.Dependencies {
		declared[dep.Name] = struct{}{}
	}
	for _, rec := range lock.Packages {
		if _, ok := declared[rec.Name]; rec.Direct && !ok {
			return stale(rec.Name, zerr.New("dependency was removed from the manifest"))
		}
	}

	for _, dep := range manifest.Dependencies {
		rec, ok := lock.Record(dep.Name)
		if !ok {
			return stale(dep.Name, zerr.New("dependency is not locked"))
		}
		if !rec.Direct {
			return stale(dep.Name, zerr.New("dependency is locked as transitive"))
		}
		if rec.Source.Type != dep.Origin.Kind || rec.Source.URI != dep.Origin.Location || rec.Tag != dep.Origin.Tag {
			return zerr.With(stale(dep.Name, zerr.New("dependency origin changed")), "origin", dep.Origin.Key())
		}
		if dep.Origin.Rev != "" && dep.Origin.Rev != rec.Rev {
			return zerr.With(stale(dep.Name, zerr.New("dependency revision changed")), "rev", dep.Origin.Rev)
		}
		if !dep.Requirement.Allows(rec.Version) {
			err := zerr.With(stale(dep.Name, zerr.New("locked version no longer satisfies requirement")),
				"requirement", dep.Requirement.String())
			return zerr.With(err, "locked", rec.Version.String())
		}
	}
	return nil
}

// Materialize replaces dest/<name> with the library sources of every selected
// package. Other directories under dest are left alone.
func (m *Manager) Materialize(sel domain.Selection, dest string) error {
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create library directory"), "path", dest)
	}

	for _, node := range sel {
		src, err := joinInside(node.Location, node.IncludePath)
		if err != nil {
			return zerr.With(err, "package", node.Name)
		}
		dst, err := joinInside(dest, node.Name)
		if err != nil {
			return zerr.With(err, "package", node.Name)
		}
		if err := os.RemoveAll(dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to clear library directory"), "path", dst)
		}
		if err := m.copier.CopyTree(src, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to materialize library"), "package", node.Name)
		}
	}
	return nil
}

func stale(pkg string, cause error) error {
	return zerr.With(errors.Join(domain.ErrLockValidationFailed, cause), "package", pkg)
}
