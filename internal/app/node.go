package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindle/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kindle/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/kindle/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/kindle/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/kindle/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/kindle/internal/engine/activation"
	"go.trai.ch/kindle/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			activation.EvaluatorNodeID,
			logger.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			watcher.NodeID,
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
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	evaluator, err := graft.Dep[*activation.Evaluator](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RecordStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, sched, evaluator, log, store, hasher, w), nil
}
