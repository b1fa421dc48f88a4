// Package manifest reads Lingo.toml project manifests.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultTarget   = "Cpp"
	defaultPlatform = "Native"
)

var _ ports.ManifestReader = (*Reader)(nil)

// Reader implements ports.ManifestReader for TOML manifests.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses dir/Lingo.toml.
func (r *Reader) Read(dir string) (*domain.Manifest, error) {
	file := filepath.Join(dir, domain.ManifestFileName)

	data, err := os.ReadFile(file) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(errors.Join(domain.ErrManifestMissing, err), "path", file)
		}
		return nil, zerr.With(errors.Join(domain.ErrManifestParse, err), "path", file)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", file)
	}
	return m, nil
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*domain.Manifest, error) {
	var dto File
	if err := toml.Unmarshal(data, &dto); err != nil {
		return nil, errors.Join(domain.ErrManifestParse, err)
	}

	m, err := toDomain(&dto)
	if err != nil {
		return nil, errors.Join(domain.ErrManifestParse, err)
	}
	return m, nil
}

func toDomain(dto *File) (*domain.Manifest, error) {
	if dto.Package.Name == "" {
		return nil, zerr.New("package name is required")
	}

	version, err := domain.ParseVersion(dto.Package.Version)
	if err != nil {
		return nil, zerr.With(err, "package", dto.Package.Name)
	}

	m := &domain.Manifest{
		Package: domain.PackageInfo{
			Name:        dto.Package.Name,
			Version:     version,
			Authors:     dto.Package.Authors,
			Description: dto.Package.Description,
		},
	}

	if dto.Lib != nil {
		lib, err := toLibrary(dto.Lib, dto.Package.Name)
		if err != nil {
			return nil, err
		}
		m.Library = lib
	}

	for i, app := range dto.Apps {
		if app.Name == "" {
			return nil, zerr.With(zerr.New("app name is required"), "index", i)
		}
		m.Apps = append(m.Apps, domain.AppSpec{
			Name:     app.Name,
			Main:     app.Main,
			Target:   withDefault(app.Target, defaultTarget),
			Platform: withDefault(app.Platform, defaultPlatform),
		})
	}

	for name, dep := range dto.Dependencies {
		ref, err := toPackageRef(name, dep)
		if err != nil {
			return nil, err
		}
		m.Dependencies = append(m.Dependencies, ref)
	}
	slices.SortFunc(m.Dependencies, func(a, b domain.PackageRef) int {
		return strings.Compare(a.Name, b.Name)
	})

	return m, nil
}

func toLibrary(dto *LibDTO, pkg string) (*domain.LibrarySpec, error) {
	location, err := cleanRelative(dto.Location)
	if err != nil {
		return nil, zerr.With(err, "field", "lib.location")
	}

	include := dto.Properties.CMakeInclude
	if include != "" {
		if include, err = cleanRelative(include); err != nil {
			return nil, zerr.With(err, "field", "lib.properties.cmake-include")
		}
	}

	return &domain.LibrarySpec{
		Name:     withDefault(dto.Name, pkg),
		Location: location,
		Target:   withDefault(dto.Target, defaultTarget),
		Platform: withDefault(dto.Platform, defaultPlatform),
		Properties: domain.LibraryProperties{
			CMakeInclude: include,
			LinkFlags:    dto.Properties.LinkFlags,
		},
	}, nil
}

func toPackageRef(name string, dep DependencyDTO) (domain.PackageRef, error) {
	req, err := domain.ParseRequirement(dep.Version)
	if err != nil {
		return domain.PackageRef{}, zerr.With(err, "package", name)
	}

	origin, err := toOrigin(dep)
	if err != nil {
		return domain.PackageRef{}, zerr.With(err, "package", name)
	}

	return domain.PackageRef{Name: name, Requirement: req, Origin: origin}, nil
}

func toOrigin(dep DependencyDTO) (domain.Origin, error) {
	var origins []domain.Origin
	if dep.Git != "" {
		origins = append(origins, domain.Origin{Kind: domain.OriginGit, Location: dep.Git, Tag: dep.Tag, Rev: dep.Rev})
	}
	if dep.Path != "" {
		origins = append(origins, domain.Origin{Kind: domain.OriginPath, Location: dep.Path})
	}
	if dep.Tarball != "" {
		origins = append(origins, domain.Origin{Kind: domain.OriginTarball, Location: dep.Tarball})
	}
	if dep.Registry != "" {
		origins = append(origins, domain.Origin{Kind: domain.OriginRegistry, Location: dep.Registry})
	}

	if len(origins) != 1 {
		return domain.Origin{}, zerr.With(domain.ErrInvalidOrigin, "origins", len(origins))
	}
	if origins[0].Kind != domain.OriginGit && (dep.Tag != "" || dep.Rev != "") {
		return domain.Origin{}, zerr.With(zerr.New("tag and rev require a git origin"), "origin", string(origins[0].Kind))
	}
	return origins[0], nil
}

// cleanRelative normalizes a manifest path that must stay inside the package.
// Empty means the package root.
func cleanRelative(p string) (string, error) {
	if p == "" {
		return ".", nil
	}
	slashed := filepath.ToSlash(p)
	if path.IsAbs(slashed) || filepath.IsAbs(p) {
		return "", zerr.With(zerr.New("path must be relative"), "path", p)
	}
	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", zerr.With(zerr.New("path escapes package"), "path", p)
	}
	return filepath.FromSlash(cleaned), nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
