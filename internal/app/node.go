package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinmerge/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pinmerge/internal/adapters/envfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/pinmerge/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pinmerge/internal/core/ports"
	"go.trai.ch/pinmerge/internal/engine/envspec"
	"go.trai.ch/pinmerge/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			envfile.NodeID,
			logger.NodeID,
			resolver.NodeID,
			envspec.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.EnvironmentWriter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*envspec.Builder](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, writer, log, res, builder), nil
}
