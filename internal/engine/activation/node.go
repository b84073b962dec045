package activation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindle/internal/adapters/activators" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/adapters/fs"         //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/adapters/interp"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/adapters/logger"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/adapters/telemetry"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindle/internal/core/ports"
)

const (
	// EvaluatorNodeID is the unique identifier for the script evaluator Graft node.
	EvaluatorNodeID graft.ID = "engine.evaluator"
	// SelectorNodeID is the unique identifier for the profile selector Graft node.
	SelectorNodeID graft.ID = "engine.selector"
)

func init() {
	graft.Register(graft.Node[*Evaluator]{
		ID:        EvaluatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, fs.TranslatorNodeID, interp.NodeID},
		Run: func(ctx context.Context) (*Evaluator, error) {
			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			translator, err := graft.Dep[ports.PathTranslator](ctx)
			if err != nil {
				return nil, err
			}
			interpolator, err := graft.Dep[ports.Interpolator](ctx)
			if err != nil {
				return nil, err
			}
			return NewEvaluator(fileSystem, NewResolver(interpolator, translator)), nil
		},
	})

	graft.Register(graft.Node[*Selector]{
		ID:        SelectorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			EvaluatorNodeID,
			fs.NodeID,
			activators.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Selector, error) {
			eval, err := graft.Dep[*Evaluator](ctx)
			if err != nil {
				return nil, err
			}
			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			chain, err := graft.Dep[[]ports.ProfileActivator](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewSelector(eval, fileSystem, chain, log, tracer), nil
		},
	})
}
