package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// OriginKind identifies how a dependency's sources are obtained.
type OriginKind string

const (
	// OriginPath copies a directory from the local filesystem.
	OriginPath OriginKind = "path"
	// OriginGit clones a git repository.
	OriginGit OriginKind = "git"
	// OriginTarball downloads and extracts an archive.
	OriginTarball OriginKind = "tarball"
	// OriginRegistry names a package registry. Not implemented.
	OriginRegistry OriginKind = "registry"
)

// ParseOriginKind maps a lock file source type to an OriginKind.
// Lock files written by older tools use upper case names.
func ParseOriginKind(s string) (OriginKind, error) {
	switch OriginKind(strings.ToLower(s)) {
	case OriginPath:
		return OriginPath, nil
	case OriginGit:
		return OriginGit, nil
	case OriginTarball:
		return OriginTarball, nil
	case OriginRegistry:
		return OriginRegistry, nil
	default:
		return "", zerr.With(ErrInvalidOrigin, "type", s)
	}
}

// Origin describes where a dependency comes from.
type Origin struct {
	Kind     OriginKind
	Location string
	// Tag and Rev are only meaningful for git origins. Rev wins when both are set.
	Tag string
	Rev string
}

// Key identifies an origin for fetch memoization.
func (o Origin) Key() string {
	var b strings.Builder
	b.WriteString(string(o.Kind))
	b.WriteByte('+')
	b.WriteString(o.Location)
	if o.Tag != "" {
		b.WriteString("@tag:")
		b.WriteString(o.Tag)
	}
	if o.Rev != "" {
		b.WriteString("@rev:")
		b.WriteString(o.Rev)
	}
	return b.String()
}

func (o Origin) String() string {
	return o.Key()
}

// Resolve returns the origin with a relative path location joined onto base.
// Other kinds are returned unchanged.
func (o Origin) Resolve(base string) Origin {
	if o.Kind == OriginPath && o.Location != "" && !filepath.IsAbs(o.Location) {
		o.Location = filepath.Join(base, o.Location)
	}
	return o
}
