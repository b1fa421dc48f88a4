package lockmgr

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/zerr"
)

// CleanupReport lists what Cleanup removed.
type CleanupReport struct {
	// Removed holds the materialized library directories that were deleted,
	// relative to the project root.
	Removed     []string
	LockRemoved bool
}

// Cleanup repairs a project whose lock no longer matches the disk. Every
// materialized library directory that version control does not track is
// removed, followed by the lock file itself. Outside a git repository no
// directory is known to be untracked, so only the lock goes. Without a lock it
// does nothing.
func (m *Manager) Cleanup(ctx context.Context, layout domain.Layout) (CleanupReport, error) {
	var report CleanupReport

	if _, err := os.Stat(layout.LockFile); errors.Is(err, fs.ErrNotExist) {
		return report, nil
	}

	lock, err := m.store.Load(layout.LockFile)
	if err != nil {
		m.logger.Warn("lock file is unreadable, removing it without touching libraries")
		lock = &domain.Lock{}
	}

	if len(lock.Packages) > 0 {
		untracked, err := m.untracked(ctx, layout.Root)
		if err != nil {
			return report, err
		}

		for _, rec := range lock.Packages {
			dir, err := joinInside(layout.IncludeDir, rec.Name)
			if err != nil {
				m.logger.Warn("skipping lock record with unsafe name " + rec.Name)
				continue
			}
			rel, err := filepath.Rel(layout.Root, dir)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if !slices.Contains(untracked, rel) {
				continue
			}
			if _, err := os.Stat(dir); err != nil {
				continue
			}
			if err := os.RemoveAll(dir); err != nil {
				return report, zerr.With(zerr.Wrap(err, "failed to remove library directory"), "path", dir)
			}
			m.logger.Info("removed untracked library directory " + rel)
			report.Removed = append(report.Removed, rel)
		}
	}

	if err := os.Remove(layout.LockFile); err != nil {
		return report, zerr.With(zerr.Wrap(err, "failed to remove lock file"), "path", layout.LockFile)
	}
	report.LockRemoved = true
	return report, nil
}

// untracked returns the untracked directories of root, or none when root is
// not inside a git repository.
func (m *Manager) untracked(ctx context.Context, root string) ([]string, error) {
	dirs, err := m.vcs.UntrackedDirs(ctx, root)
	if errors.Is(err, domain.ErrNotARepository) {
		m.logger.Warn("not a git repository, keeping materialized libraries")
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list untracked directories")
	}
	return dirs, nil
}

// joinInside joins name onto dir and fails when the result would leave dir.
func joinInside(dir, name string) (string, error) {
	p := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(zerr.New("path escapes its directory"), "path", name)
	}
	return p, nil
}
