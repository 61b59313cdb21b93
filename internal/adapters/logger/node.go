package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinmerge/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the logger Graft node.
	NodeID graft.ID = "adapter.logger"
	// WarningSinkNodeID is the unique identifier for the warning sink Graft node.
	WarningSinkNodeID graft.ID = "adapter.warnings"
)

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.WarningSink]{
		ID:        WarningSinkNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.WarningSink, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWarningSink(log), nil
		},
	})
}
