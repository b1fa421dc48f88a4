// Package config loads lingo tool settings.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the settings file.
const (
	EnvCacheDir = "LINGO_CACHE_DIR"
	EnvCMake    = "LINGO_CMAKE"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader reads .lingo.yaml from a project root and applies environment overrides.
type Loader struct {
	Filename string
	lookup   func(string) (string, bool)
}

// NewLoader creates a new Loader reading the default settings file.
func NewLoader() *Loader {
	return &Loader{Filename: domain.SettingsFileName, lookup: os.LookupEnv}
}

// Load returns the settings of the project at root. A missing file yields defaults.
func (l *Loader) Load(root string) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	path := filepath.Join(root, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the project root
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read settings file"), "path", path)
	default:
		if err := decode(data, &settings); err != nil {
			return domain.Settings{}, zerr.With(err, "path", path)
		}
	}

	l.applyEnv(&settings)
	return settings, nil
}

func decode(data []byte, settings *domain.Settings) error {
	var file Settingsfile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(domain.ErrConfigParse, err)
	}

	if file.CacheDir != "" {
		settings.CacheDir = file.CacheDir
	}
	if file.VerifyLock != nil {
		settings.VerifyLock = *file.VerifyLock
	}
	if file.KeepGoing != nil {
		settings.KeepGoing = *file.KeepGoing
	}
	if file.Parallelism != nil {
		if *file.Parallelism < 1 {
			return zerr.With(domain.ErrConfigParse, "parallelism", *file.Parallelism)
		}
		settings.Parallelism = *file.Parallelism
	}
	if file.Tools.CMake != "" {
		settings.Tools.CMake = file.Tools.CMake
	}

	return nil
}

func (l *Loader) applyEnv(settings *domain.Settings) {
	if v, ok := l.lookup(EnvCacheDir); ok && v != "" {
		settings.CacheDir = v
	}
	if v, ok := l.lookup(EnvCMake); ok && v != "" {
		settings.Tools.CMake = v
	}
}
