package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeCopier = (*Copier)(nil)

// Copier replicates directory trees, preserving symlinks and file modes.
type Copier struct {
	walker *Walker
}

// NewCopier creates a new Copier.
func NewCopier(walker *Walker) *Copier {
	return &Copier{walker: walker}
}

// CopyTree copies the contents of src into dst, creating dst if needed.
func (c *Copier) CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("source is not a directory"), "path", src)
	}

	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dst)
	}

	for entry, err := range c.walker.Walk(src) {
		if err != nil {
			return err
		}

		target := filepath.Join(dst, filepath.FromSlash(entry.Rel))
		if err := copyEntry(entry, target); err != nil {
			return err
		}
	}

	return nil
}

func copyEntry(entry Entry, target string) error {
	switch entry.Kind {
	case KindDir:
		if err := os.MkdirAll(target, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", target)
		}
	case KindSymlink:
		link, err := os.Readlink(entry.Path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", entry.Path)
		}
		if err := os.Symlink(link, target); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create symlink"), "path", target)
		}
	case KindFile:
		return copyFile(entry.Path, target)
	}
	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat file"), "path", src)
	}

	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}

	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close file"), "path", dst)
	}
	return nil
}
