package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is a parsed semantic version. The zero value is invalid.
type Version struct {
	v *semver.Version
}

// ParseVersion parses a semantic version. A leading "v" is accepted.
func ParseVersion(s string) (Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return Version{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", s)
	}
	return Version{v: v}, nil
}

// MustParseVersion is ParseVersion for constants; it panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare returns -1, 0 or 1. A zero Version sorts before every parsed one.
func (v Version) Compare(o Version) int {
	switch {
	case v.v == nil && o.v == nil:
		return 0
	case v.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return v.v.Compare(o.v)
}

// String returns the version as it was written.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// Requirement is a predicate over versions, e.g. ">=1.0, <2.0".
type Requirement struct {
	raw string
	c   *semver.Constraints
}

// AnyVersion matches every release version.
const AnyVersion = "*"

// ParseRequirement parses a requirement. An empty string means AnyVersion.
func ParseRequirement(s string) (Requirement, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		raw = AnyVersion
	}
	c, err := semver.NewConstraint(raw)
	if err != nil {
		return Requirement{}, zerr.With(zerr.Wrap(err, ErrInvalidRequirement.Error()), "requirement", s)
	}
	return Requirement{raw: raw, c: c}, nil
}

// MustParseRequirement is ParseRequirement for constants; it panics on error.
func MustParseRequirement(s string) Requirement {
	r, err := ParseRequirement(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Allows reports whether v satisfies the requirement.
// The zero Requirement allows everything.
func (r Requirement) Allows(v Version) bool {
	if r.c == nil {
		return true
	}
	if v.v == nil {
		return false
	}
	return r.c.Check(v.v)
}

func (r Requirement) String() string {
	if r.raw == "" {
		return AnyVersion
	}
	return r.raw
}
