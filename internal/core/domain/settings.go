package domain

import "runtime"

// Settings are tool settings read from .lingo.yaml and the environment.
type Settings struct {
	// CacheDir overrides the content-addressed cache root.
	CacheDir string
	// VerifyLock re-hashes cached packages when a lock file is reused.
	VerifyLock  bool
	KeepGoing   bool
	Parallelism int
	Tools       ToolSettings
}

// ToolSettings names the external executables lingo invokes.
type ToolSettings struct {
	CMake string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		VerifyLock:  true,
		Parallelism: runtime.NumCPU(),
		Tools: ToolSettings{
			CMake: "cmake",
		},
	}
}
