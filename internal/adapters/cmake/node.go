package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/adapters/shell"
	"go.trai.ch/lingo/internal/core/ports"
)

const NodeID graft.ID = "adapter.cmake"

func init() {
	graft.Register(graft.Node[ports.Backend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Backend, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner), nil
		},
	})
}
