package algorithms

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/registry"
)

// NodeID is the unique identifier for the algorithm registry Graft node.
const NodeID graft.ID = "algorithms.registry"

func init() {
	graft.Register(graft.Node[*registry.Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*registry.Registry, error) {
			return NewRegistry(), nil
		},
	})
}
