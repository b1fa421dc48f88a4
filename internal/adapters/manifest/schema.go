package manifest

// File represents the structure of a Lingo.toml manifest.
type File struct {
	Package      PackageDTO               `toml:"package"`
	Lib          *LibDTO                  `toml:"lib"`
	Apps         []AppDTO                 `toml:"app"`
	Dependencies map[string]DependencyDTO `toml:"dependencies"`
}

// PackageDTO is the [package] table.
type PackageDTO struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Authors     []string `toml:"authors"`
	Description string   `toml:"description"`
	Homepage    string   `toml:"homepage"`
	License     string   `toml:"license"`
}

// LibDTO is the optional [lib] table.
type LibDTO struct {
	Name       string        `toml:"name"`
	Location   string        `toml:"location"`
	Target     string        `toml:"target"`
	Platform   string        `toml:"platform"`
	Properties PropertiesDTO `toml:"properties"`
}

// PropertiesDTO is the [lib.properties] table.
type PropertiesDTO struct {
	CMakeInclude string   `toml:"cmake-include"`
	LinkFlags    []string `toml:"link-flags"`
}

// AppDTO is one [[app]] entry.
type AppDTO struct {
	Name     string `toml:"name"`
	Main     string `toml:"main"`
	Target   string `toml:"target"`
	Platform string `toml:"platform"`
}

// DependencyDTO is one entry of the [dependencies] table.
// Exactly one of Git, Path, Tarball and Registry must be set.
type DependencyDTO struct {
	Version  string `toml:"version"`
	Git      string `toml:"git"`
	Tag      string `toml:"tag"`
	Rev      string `toml:"rev"`
	Path     string `toml:"path"`
	Tarball  string `toml:"tarball"`
	Registry string `toml:"registry"`
}
