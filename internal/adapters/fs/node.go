package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindle/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the activation file system Graft node.
	NodeID graft.ID = "adapter.fs"
	// TranslatorNodeID is the unique identifier for the path translator Graft node.
	TranslatorNodeID graft.ID = "adapter.fs.translator"
	// WalkerNodeID is the unique identifier for the directory walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ResolverNodeID is the unique identifier for the module glob resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// HasherNodeID is the unique identifier for the activation hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewFileSystem(), nil
		},
	})

	graft.Register(graft.Node[ports.PathTranslator]{
		ID:        TranslatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PathTranslator, error) {
			return NewPathTranslator(), nil
		},
	})

	// Walker Node (Concrete implementation needed by Hasher and the watcher)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Resolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})
}
