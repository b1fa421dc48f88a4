package domain

// PackageRef is a requested dependency.
type PackageRef struct {
	Name        string
	Requirement Requirement
	Origin      Origin
	// Revision is the pinned revision once the origin has been fetched.
	Revision string
}

// PackageInfo is the identity section of a manifest.
type PackageInfo struct {
	Name        string
	Version     Version
	Authors     []string
	Description string
}

// LibrarySpec is the library section of a manifest. Only libraries can be depended on.
type LibrarySpec struct {
	Name     string
	Location string
	Target   string
	Platform string

	Properties LibraryProperties
}

// AppSpec declares one build target of a project.
type AppSpec struct {
	Name     string
	Main     string
	Target   string
	Platform string
}

// Manifest is a parsed Lingo.toml.
type Manifest struct {
	Package PackageInfo
	Library *LibrarySpec
	Apps    []AppSpec
	// Dependencies are sorted by name.
	Dependencies []PackageRef
}

// IsLibrary reports whether the manifest declares a library section.
func (m *Manifest) IsLibrary() bool {
	return m.Library != nil
}
