package interp

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindle/internal/core/ports"
)

// NodeID is the unique identifier for the interpolator Graft node.
const NodeID graft.ID = "adapter.interpolator"

func init() {
	graft.Register(graft.Node[ports.Interpolator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Interpolator, error) {
			return New(), nil
		},
	})
}
