package envfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinmerge/internal/build"
	"go.trai.ch/pinmerge/internal/core/ports"
)

// NodeID is the unique identifier for the environment writer Graft node.
const NodeID graft.ID = "adapter.envfile"

func init() {
	graft.Register(graft.Node[ports.EnvironmentWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvironmentWriter, error) {
			return NewWriter(build.Version), nil
		},
	})
}
