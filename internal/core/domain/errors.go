package domain

import "go.trai.ch/zerr"

var (
	// ErrFetchFailed is returned when a dependency's source could not be materialized from its origin.
	ErrFetchFailed = zerr.New("failed to fetch dependency")

	// ErrGitFailed is returned when cloning or checking out a git origin fails.
	ErrGitFailed = zerr.New("git operation failed")

	// ErrRegistryUnsupported is returned for registry origins, which have no protocol yet.
	ErrRegistryUnsupported = zerr.New("registry origins are not supported")

	// ErrUnsafeArchivePath is returned when a tarball entry would be extracted outside its destination.
	ErrUnsafeArchivePath = zerr.New("archive entry escapes destination")

	// ErrInvalidOrigin is returned when a dependency declares zero or several origins.
	ErrInvalidOrigin = zerr.New("dependency must declare exactly one origin")

	// ErrManifestMissing is returned when a fetched package has no Lingo.toml at its root.
	ErrManifestMissing = zerr.New("manifest not found")

	// ErrManifestParse is returned when a Lingo.toml cannot be decoded.
	ErrManifestParse = zerr.New("failed to parse manifest")

	// ErrNotALibrary is returned when a dependency's manifest has no library section.
	ErrNotALibrary = zerr.New("dependency does not declare a library section")

	// ErrVersionMismatch is returned when a fetched manifest declares a version the requirement rejects.
	ErrVersionMismatch = zerr.New("fetched version does not satisfy requirement")

	// ErrNoViableVersion is returned when no candidate satisfies every requirement levied on a package.
	ErrNoViableVersion = zerr.New("no version satisfies all requirements")

	// ErrInvalidVersion is returned when a version string is not valid semver.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidRequirement is returned when a requirement string cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid version requirement")

	// ErrLockParse is returned when Lingo.lock cannot be decoded.
	ErrLockParse = zerr.New("failed to parse lock file")

	// ErrLockValidationFailed is returned when a lock file no longer matches the cache or the manifest.
	ErrLockValidationFailed = zerr.New("lock file is stale")

	// ErrCacheLockFailed is returned when the cache root's advisory lock cannot be taken.
	ErrCacheLockFailed = zerr.New("failed to lock library cache")

	// ErrNotARepository is returned when a project does not live inside a version-controlled worktree.
	ErrNotARepository = zerr.New("not inside a git repository")

	// ErrCommandFailed is returned when an external tool exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrUnknownBackend is returned when a build target names a backend that is not registered.
	ErrUnknownBackend = zerr.New("unknown build backend")

	// ErrUnknownTarget is returned when a requested build target is not declared in the manifest.
	ErrUnknownTarget = zerr.New("unknown build target")

	// ErrNoTargets is returned when a build is requested but the manifest declares no apps.
	ErrNoTargets = zerr.New("no build targets declared")

	// ErrBuildFailed is returned when one or more build targets failed.
	ErrBuildFailed = zerr.New("build failed")

	// ErrConfigParse is returned when .lingo.yaml cannot be decoded.
	ErrConfigParse = zerr.New("failed to parse settings")
)
