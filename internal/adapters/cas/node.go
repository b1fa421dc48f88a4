package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/core/ports"
)

// NodeID is the unique identifier for the library cache Graft node.
const NodeID graft.ID = "adapter.cas"

func init() {
	graft.Register(graft.Node[ports.LibraryCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LibraryCache, error) {
			return NewStore(), nil
		},
	})
}
