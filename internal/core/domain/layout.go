package domain

import "path/filepath"

const (
	// ManifestFileName is the name of the project manifest.
	ManifestFileName = "Lingo.toml"

	// LockFileName is the name of the dependency lock file, stored next to the manifest.
	LockFileName = "Lingo.lock"

	// SettingsFileName is the name of the optional tool settings file.
	SettingsFileName = ".lingo.yaml"

	// TargetDirName is the directory holding all generated state of a project.
	TargetDirName = "target"

	// LibrariesDirName is the default content-addressed cache directory inside the target dir.
	LibrariesDirName = "libraries"

	// IncludeDirName is the materialized library directory handed to backends.
	IncludeDirName = "lfc_include"

	// BuildDirName is the per-target CMake build directory.
	BuildDirName = "build"

	// AggregatedCMakeFileName is the file collecting every dependency's CMake include.
	AggregatedCMakeFileName = "aggregated_cmake_include.cmake"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout holds every path derived from a project root.
type Layout struct {
	Root         string
	ManifestFile string
	LockFile     string
	TargetDir    string
	CacheDir     string
	IncludeDir   string
}

// NewLayout derives the default layout for the project at root.
func NewLayout(root string) Layout {
	root = filepath.Clean(root)
	target := filepath.Join(root, TargetDirName)
	return Layout{
		Root:         root,
		ManifestFile: filepath.Join(root, ManifestFileName),
		LockFile:     filepath.Join(root, LockFileName),
		TargetDir:    target,
		CacheDir:     filepath.Join(target, LibrariesDirName),
		IncludeDir:   filepath.Join(target, IncludeDirName),
	}
}

// WithCacheDir returns a copy of the layout using dir as cache root.
// Relative dirs are resolved against the project root.
func (l Layout) WithCacheDir(dir string) Layout {
	if dir == "" {
		return l
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(l.Root, dir)
	}
	l.CacheDir = filepath.Clean(dir)
	return l
}

// OutputRoot returns the directory a build target writes into.
func (l Layout) OutputRoot(target string) string {
	return filepath.Join(l.TargetDir, target)
}
