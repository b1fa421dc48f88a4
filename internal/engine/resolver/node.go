package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/fetch"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/lingo/internal/engine/lockmgr"
)

const (
	// BuilderNodeID is the unique identifier for the tree node builder Graft node.
	BuilderNodeID graft.ID = "engine.resolver.builder"
	// NodeID is the unique identifier for the resolver Graft node.
	NodeID graft.ID = "engine.resolver"
)

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        BuilderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fetch.NodeID, fs.HasherNodeID, manifest.NodeID, cas.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.ContentHasher](ctx)
			if err != nil {
				return nil, err
			}
			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[ports.LibraryCache](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(fetcher, hasher, manifests, cache), nil
		},
	})

	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			BuilderNodeID,
			lockmgr.NodeID,
			cas.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			builder, err := graft.Dep[*Builder](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[*lockmgr.Manager](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[ports.LibraryCache](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(builder, locks, cache, log, tracer), nil
		},
	})
}
