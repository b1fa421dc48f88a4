// Package lockfile persists resolved dependency sets as Lingo.lock.
package lockfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

const header = "# This file is generated by lingo. Do not edit it by hand.\n\n"

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore with TOML files.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads and decodes the lock file at path.
func (s *Store) Load(path string) (*domain.Lock, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the project root
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read lock file"), "path", path)
	}

	lock, err := Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return lock, nil
}

// Save encodes lock and atomically replaces the file at path.
func (s *Store) Save(path string, lock *domain.Lock) error {
	data, err := Encode(lock)
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// Encode renders lock as TOML. Records keep their order.
func Encode(lock *domain.Lock) ([]byte, error) {
	file := File{Version: domain.LockFormatVersion}
	for _, r := range lock.Packages {
		file.Packages = append(file.Packages, PackageDTO{
			Name:     r.Name,
			Version:  r.Version.String(),
			Checksum: r.Checksum,
			Tag:      r.Tag,
			Rev:      r.Rev,
			Direct:   r.Direct,
			Source: SourceDTO{
				Type: string(r.Source.Type),
				URI:  r.Source.URI,
			},
		})
	}

	body, err := toml.Marshal(file)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode lock file")
	}

	return append([]byte(header), body...), nil
}

// Decode parses lock file bytes.
func Decode(data []byte) (*domain.Lock, error) {
	var file File

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Join(domain.ErrLockParse, err)
	}

	if file.Version != domain.LockFormatVersion {
		return nil, zerr.With(errors.Join(domain.ErrLockParse, zerr.New("unsupported format version")), "format_version", file.Version)
	}

	lock := &domain.Lock{Version: file.Version}
	for _, p := range file.Packages {
		record, err := toRecord(p)
		if err != nil {
			return nil, errors.Join(domain.ErrLockParse, zerr.With(err, "package", p.Name))
		}
		lock.Packages = append(lock.Packages, record)
	}

	return lock, nil
}

func toRecord(p PackageDTO) (domain.LockRecord, error) {
	if p.Name == "" {
		return domain.LockRecord{}, zerr.New("package name is required")
	}

	version, err := domain.ParseVersion(p.Version)
	if err != nil {
		return domain.LockRecord{}, err
	}

	kind, err := domain.ParseOriginKind(p.Source.Type)
	if err != nil {
		return domain.LockRecord{}, err
	}

	return domain.LockRecord{
		Name:     p.Name,
		Version:  version,
		Source:   domain.LockSource{Type: kind, URI: p.Source.URI},
		Tag:      p.Tag,
		Rev:      p.Rev,
		Checksum: p.Checksum,
		Direct:   p.Direct,
	}, nil
}

// atomicWriteFile writes data to a temp file in the target directory and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create lock file directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".lingo-lock-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp lock file"), "path", dir)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write lock file"), "path", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close temp lock file"), "path", tmpPath)
	}
	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set lock file permissions"), "path", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace lock file"), "path", path)
	}

	committed = true
	return nil
}
