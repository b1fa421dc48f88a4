package lockfile

// File represents the structure of Lingo.lock.
type File struct {
	Version  int          `toml:"version"`
	Packages []PackageDTO `toml:"package,omitempty"`
}

// PackageDTO is one [[package]] entry.
type PackageDTO struct {
	Name     string    `toml:"name"`
	Version  string    `toml:"version"`
	Checksum string    `toml:"checksum"`
	Tag      string    `toml:"tag,omitempty"`
	Rev      string    `toml:"rev,omitempty"`
	Direct   bool      `toml:"direct,omitempty"`
	Source   SourceDTO `toml:"source"`
}

// SourceDTO is the [package.source] table.
type SourceDTO struct {
	Type string `toml:"type"`
	URI  string `toml:"uri"`
}
