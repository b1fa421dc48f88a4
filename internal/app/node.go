package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lingo/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lingo/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/lingo/internal/engine/batch"
	"go.trai.ch/lingo/internal/engine/lockmgr"
	"go.trai.ch/lingo/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the CLI entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			resolver.NodeID,
			lockmgr.NodeID,
			batch.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[*lockmgr.Manager](ctx)
	if err != nil {
		return nil, err
	}

	harness, err := graft.Dep[*batch.Harness](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, manifests, res, locks, harness, log), nil
}
