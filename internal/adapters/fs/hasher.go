package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentHasher = (*Hasher)(nil)

// Hasher computes content-addressed digests of directory trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// Checksum returns the hex sha256 over the sorted entries of dir.
// Each regular file and symlink contributes "rel NUL kind NUL exec NUL size NUL xxhash64",
// where exec is the octal executable bits of a file and 0 for a symlink.
// Directories only contribute through their contents, so empty directories,
// timestamps and traversal order never affect the result.
func (h *Hasher) Checksum(dir string) (string, error) {
	var entries []Entry
	for entry, err := range h.walker.Walk(dir) {
		if err != nil {
			return "", err
		}
		if entry.Kind != KindDir {
			entries = append(entries, entry)
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Rel, b.Rel)
	})

	digest := sha256.New()
	for _, entry := range entries {
		exec, err := execBits(entry)
		if err != nil {
			return "", err
		}
		size, sum, err := h.digestEntry(entry)
		if err != nil {
			return "", err
		}

		_, _ = io.WriteString(digest, entry.Rel)
		_, _ = digest.Write([]byte{0})
		_, _ = io.WriteString(digest, string(entry.Kind))
		_, _ = digest.Write([]byte{0})
		_, _ = io.WriteString(digest, strconv.FormatUint(uint64(exec), 8))
		_, _ = digest.Write([]byte{0})
		_, _ = io.WriteString(digest, strconv.FormatInt(size, 10))
		_, _ = digest.Write([]byte{0})
		_, _ = io.WriteString(digest, strconv.FormatUint(sum, 16))
		_, _ = digest.Write([]byte{'\n'})
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

func execBits(entry Entry) (os.FileMode, error) {
	if entry.Kind == KindSymlink {
		return 0, nil
	}
	info, err := os.Lstat(entry.Path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", entry.Path)
	}
	return info.Mode().Perm() & 0o111, nil
}

func (h *Hasher) digestEntry(entry Entry) (int64, uint64, error) {
	if entry.Kind == KindSymlink {
		target, err := os.Readlink(entry.Path)
		if err != nil {
			return 0, 0, zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", entry.Path)
		}
		return int64(len(target)), xxhash.Sum64String(target), nil
	}

	return ComputeFileHash(entry.Path)
}

// ComputeFileHash returns the size and XXHash of a file's content.
func ComputeFileHash(path string) (int64, uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return n, hasher.Sum64(), nil
}
