package config

// Settingsfile represents the structure of the .lingo.yaml settings file.
// Pointer fields distinguish "unset" from zero values.
type Settingsfile struct {
	CacheDir    string   `yaml:"cache_dir"`
	VerifyLock  *bool    `yaml:"verify_lock"`
	KeepGoing   *bool    `yaml:"keep_going"`
	Parallelism *int     `yaml:"parallelism"`
	Tools       ToolsDTO `yaml:"tools"`
}

// ToolsDTO names external executables.
type ToolsDTO struct {
	CMake string `yaml:"cmake"`
}
