package driver

import (
	"context"

	"github.com/agenthands/travelmate/internal/core/model"
)

// GraphStore is a persistent directed graph keyed by entity key.
//
// AddNode and AddEdge are create-if-absent: a second create for an existing
// node or (source, target) pair is a no-op, not an error, so racing merges
// converge. GetNode and ReachableWithin return model.ErrNodeNotFound for
// unknown keys, GetEdge returns model.ErrEdgeNotFound and ShortestPath
// returns model.ErrNoPath when the target is unreachable.
type GraphStore interface {
	HasNode(ctx context.Context, key string) (bool, error)
	GetNode(ctx context.Context, key string) (model.Entity, error)
	AddNode(ctx context.Context, node model.Entity) (bool, error)

	HasEdge(ctx context.Context, src, dst string) (bool, error)
	GetEdge(ctx context.Context, src, dst string) (model.Relationship, error)
	AddEdge(ctx context.Context, edge model.Relationship) (bool, error)

	// ShortestPath returns the keys of a shortest directed path, src and dst
	// included.
	ShortestPath(ctx context.Context, src, dst string) ([]string, error)
	// ReachableWithin returns every key whose shortest directed distance from
	// src is at most hops, src itself included, nearest first.
	ReachableWithin(ctx context.Context, src string, hops int) ([]string, error)

	Stats(ctx context.Context) (Stats, error)
	Close(ctx context.Context) error
}

// Stats are the node and edge totals of a store.
type Stats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}
