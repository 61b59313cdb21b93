package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinmerge/internal/adapters/logger" //nolint:depguard // Wired in engine layer
	"go.trai.ch/pinmerge/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.WarningSinkNodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			sink, err := graft.Dep[ports.WarningSink](ctx)
			if err != nil {
				return nil, err
			}
			return New(sink), nil
		},
	})
}
