package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/adapters/fs"
	"go.trai.ch/lingo/internal/core/ports"
)

// NodeID is the unique identifier for the source fetcher Graft node.
const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[ports.SourceFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.CopierNodeID},
		Run: func(ctx context.Context) (ports.SourceFetcher, error) {
			copier, err := graft.Dep[ports.TreeCopier](ctx)
			if err != nil {
				return nil, err
			}
			return New(copier), nil
		},
	})
}
