package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindle/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/adapters/telemetry"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/kindle/internal/engine/activation"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			activation.SelectorNodeID,
			progrock.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			selector, err := graft.Dep[*activation.Selector](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(selector, recorder, tracer, log), nil
		},
	})
}
