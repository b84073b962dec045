package activators

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindle/internal/adapters/fs"
	"go.trai.ch/kindle/internal/adapters/interp"
	"go.trai.ch/kindle/internal/core/ports"
)

// NodeID is the unique identifier for the host activator chain Graft node.
const NodeID graft.ID = "adapter.activators"

func init() {
	graft.Register(graft.Node[[]ports.ProfileActivator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, fs.TranslatorNodeID, interp.NodeID},
		Run: func(ctx context.Context) ([]ports.ProfileActivator, error) {
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
			return Chain(fileSystem, interpolator, translator), nil
		},
	})
}

// Chain returns the default activator chain in evaluation order.
func Chain(fs ports.FileSystem, interp ports.Interpolator, paths ports.PathTranslator) []ports.ProfileActivator {
	return []ports.ProfileActivator{
		NewPropertyActivator(),
		NewFileActivator(fs, interp, paths),
	}
}
