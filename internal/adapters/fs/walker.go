// Package fs provides file system adapters for walking, hashing and copying library trees.
package fs

import (
	"errors"
	"iter"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"go.trai.ch/zerr"
)

// EntryKind classifies a walked entry.
type EntryKind string

// Entry kinds.
const (
	KindDir     EntryKind = "dir"
	KindFile    EntryKind = "file"
	KindSymlink EntryKind = "symlink"
)

// Entry is a single file system node below a walked root.
type Entry struct {
	// Path is the OS path of the entry.
	Path string
	// Rel is the slash-separated path relative to the walked root.
	Rel  string
	Kind EntryKind
}

var errStopWalk = errors.New("walk stopped")

// Walker enumerates library trees, skipping version-control metadata.
type Walker struct {
	skip map[string]struct{}
}

// NewWalker creates a new Walker that skips .git and .jj directories.
func NewWalker() *Walker {
	return &Walker{skip: map[string]struct{}{".git": {}, ".jj": {}}}
}

// Walk yields every directory, regular file and symlink below root in lexical order.
// The root itself is not yielded. Symlinks are reported, never followed.
// Other node types (sockets, devices) are ignored.
func (w *Walker) Walk(root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		base := filepath.Clean(root)

		err := godirwalk.Walk(base, &godirwalk.Options{
			Callback: func(osPathname string, de *godirwalk.Dirent) error {
				if osPathname == base {
					return nil
				}

				if _, ok := w.skip[de.Name()]; ok && de.IsDir() {
					return godirwalk.SkipThis
				}

				entry, ok := newEntry(base, osPathname, de)
				if !ok {
					return nil
				}
				if !yield(entry, nil) {
					return errStopWalk
				}
				return nil
			},
		})

		if err != nil && !errors.Is(err, errStopWalk) {
			yield(Entry{}, zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", base))
		}
	}
}

func newEntry(root, osPathname string, de *godirwalk.Dirent) (Entry, bool) {
	var kind EntryKind
	switch {
	case de.IsDir():
		kind = KindDir
	case de.IsSymlink():
		kind = KindSymlink
	case de.IsRegular():
		kind = KindFile
	default:
		return Entry{}, false
	}

	rel, err := filepath.Rel(root, osPathname)
	if err != nil {
		return Entry{}, false
	}

	return Entry{Path: osPathname, Rel: filepath.ToSlash(rel), Kind: kind}, true
}
