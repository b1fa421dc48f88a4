package batch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lingo/internal/adapters/cmake"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lingo/internal/core/ports"
)

// NodeID is the unique identifier for the batch harness Graft node.
const NodeID graft.ID = "engine.batch"

func init() {
	graft.Register(graft.Node[*Harness]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.TracerNodeID, cmake.NodeID},
		Run: func(ctx context.Context) (*Harness, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			cpp, err := graft.Dep[ports.Backend](ctx)
			if err != nil {
				return nil, err
			}
			return New(tracer, cpp), nil
		},
	})
}
