package lockmgr

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/adapters/cas"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/lockfile" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/manifest" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/vcs"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/core/ports"
)

// NodeID is the unique identifier for the lock manager Graft node.
const NodeID graft.ID = "engine.lockmgr"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.NodeID,
			manifest.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			fs.CopierNodeID,
			vcs.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			store, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}
			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.ContentHasher](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[ports.LibraryCache](ctx)
			if err != nil {
				return nil, err
			}
			copier, err := graft.Dep[ports.TreeCopier](ctx)
			if err != nil {
				return nil, err
			}
			vc, err := graft.Dep[ports.VersionControl](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(store, manifests, hasher, cache, copier, vc, log), nil
		},
	})
}
