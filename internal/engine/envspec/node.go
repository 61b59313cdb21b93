package envspec

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinmerge/internal/adapters/logger" //nolint:depguard // Wired in engine layer
	"go.trai.ch/pinmerge/internal/core/ports"
)

// NodeID is the unique identifier for the environment builder Graft node.
const NodeID graft.ID = "engine.envspec"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.WarningSinkNodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			sink, err := graft.Dep[ports.WarningSink](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(sink), nil
		},
	})
}
