// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lingo/internal/adapters/cas"
	_ "go.trai.ch/lingo/internal/adapters/cmake"
	_ "go.trai.ch/lingo/internal/adapters/config"
	_ "go.trai.ch/lingo/internal/adapters/fetch"
	_ "go.trai.ch/lingo/internal/adapters/fs"
	_ "go.trai.ch/lingo/internal/adapters/lockfile"
	_ "go.trai.ch/lingo/internal/adapters/logger"
	_ "go.trai.ch/lingo/internal/adapters/manifest"
	_ "go.trai.ch/lingo/internal/adapters/shell"
	_ "go.trai.ch/lingo/internal/adapters/telemetry"
	_ "go.trai.ch/lingo/internal/adapters/vcs"
	// Register app and engine nodes.
	_ "go.trai.ch/lingo/internal/app"
	_ "go.trai.ch/lingo/internal/engine/batch"
	_ "go.trai.ch/lingo/internal/engine/lockmgr"
	_ "go.trai.ch/lingo/internal/engine/resolver"
)
