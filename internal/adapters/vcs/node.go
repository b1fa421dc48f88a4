package vcs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/core/ports"
)

// NodeID is the unique identifier for the version control Graft node.
const NodeID graft.ID = "adapter.vcs"

func init() {
	graft.Register(graft.Node[ports.VersionControl]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionControl, error) {
			return NewGit(), nil
		},
	})
}
