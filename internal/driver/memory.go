package driver

import (
	"context"
	"sync"

	"github.com/agenthands/travelmate/internal/core/model"
)

type pair struct {
	src, dst string
}

// MemoryStore is an in-process GraphStore. It is safe for concurrent use
// and forgets everything on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	nodes map[string]model.Entity
	edges map[pair]model.Relationship
	out   map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[string]model.Entity),
		edges: make(map[pair]model.Relationship),
		out:   make(map[string][]string),
	}
}

func (s *MemoryStore) HasNode(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nodes[key]
	return ok, nil
}

func (s *MemoryStore) GetNode(_ context.Context, key string) (model.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[key]
	if !ok {
		return model.Entity{}, model.ErrNodeNotFound
	}
	return n, nil
}

func (s *MemoryStore) AddNode(_ context.Context, node model.Entity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[node.Key]; ok {
		return false, nil
	}
	s.nodes[node.Key] = node
	return true, nil
}

func (s *MemoryStore) HasEdge(_ context.Context, src, dst string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.edges[pair{src, dst}]
	return ok, nil
}

func (s *MemoryStore) GetEdge(_ context.Context, src, dst string) (model.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.edges[pair{src, dst}]
	if !ok {
		return model.Relationship{}, model.ErrEdgeNotFound
	}
	return e, nil
}

// AddEdge creates the edge if both endpoints exist and the pair is free.
func (s *MemoryStore) AddEdge(_ context.Context, edge model.Relationship) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[edge.SourceKey]; !ok {
		return false, model.ErrNodeNotFound
	}
	if _, ok := s.nodes[edge.TargetKey]; !ok {
		return false, model.ErrNodeNotFound
	}
	p := pair{edge.SourceKey, edge.TargetKey}
	if _, ok := s.edges[p]; ok {
		return false, nil
	}
	s.edges[p] = edge
	s.out[edge.SourceKey] = append(s.out[edge.SourceKey], edge.TargetKey)
	return true, nil
}

func (s *MemoryStore) ShortestPath(_ context.Context, src, dst string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.nodes[src]; !ok {
		return nil, model.ErrNodeNotFound
	}
	if _, ok := s.nodes[dst]; !ok {
		return nil, model.ErrNodeNotFound
	}
	return bfsPath(src, dst, s.successors)
}

func (s *MemoryStore) ReachableWithin(_ context.Context, src string, hops int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.nodes[src]; !ok {
		return nil, model.ErrNodeNotFound
	}
	return bfsWithin(src, hops, s.successors)
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Nodes: len(s.nodes), Edges: len(s.edges)}, nil
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}

func (s *MemoryStore) successors(key string) ([]string, error) {
	return s.out[key], nil
}
