package driver

import (
	"context"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/logger"
)

func newTestBoltStore(exec *MockExecutor, dialect Dialect) *BoltStore {
	s := NewBoltStore(exec, dialect, logger.Nop())
	s.tokens = func() string { return "token-1" }
	return s
}

func TestBoltStore_AddNode(t *testing.T) {
	exec := &MockExecutor{MockResult: records([]string{"created"}, []interface{}{true})}
	s := newTestBoltStore(exec, DialectNeo4j)

	created, err := s.AddNode(context.Background(), model.Entity{Key: "eiffel_tower", Name: "Eiffel Tower", Type: "Attraction"})
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, exec.Executed, 1)
	assert.Equal(t, SaveEntityQuery, exec.Executed[0].Query)
	assert.Equal(t, "eiffel_tower", exec.Executed[0].Params["key"])
	assert.Equal(t, "Eiffel Tower", exec.Executed[0].Params["name"])
	assert.Equal(t, "token-1", exec.Executed[0].Params["token"])
}

func TestBoltStore_AddEdgeMissingEndpoints(t *testing.T) {
	exec := &MockExecutor{}
	s := newTestBoltStore(exec, DialectNeo4j)

	_, err := s.AddEdge(context.Background(), model.Relationship{SourceKey: "a", TargetKey: "b", Relation: "NEAR"})
	assert.ErrorIs(t, err, model.ErrNodeNotFound)
	assert.Equal(t, "NEAR", exec.Executed[0].Params["relation"])
}

func TestBoltStore_GetNode(t *testing.T) {
	exec := &MockExecutor{MockResult: records([]string{"key", "name", "type"}, []interface{}{"paris", "Paris", "Location"})}
	s := newTestBoltStore(exec, DialectNeo4j)

	n, err := s.GetNode(context.Background(), "paris")
	require.NoError(t, err)
	assert.Equal(t, model.Entity{Key: "paris", Name: "Paris", Type: "Location"}, n)

	exec.MockResult = records([]string{"key", "name", "type"})
	_, err = s.GetNode(context.Background(), "london")
	assert.ErrorIs(t, err, model.ErrNodeNotFound)
}

func TestBoltStore_ShortestPath(t *testing.T) {
	exec := &MockExecutor{
		ResultQueue: []neo4j.EagerResult{
			countResult(1),
			countResult(1),
			records([]string{"keys"}, []interface{}{[]interface{}{"a", "b", "c"}}),
		},
	}
	s := newTestBoltStore(exec, DialectMemgraph)

	path, err := s.ShortestPath(context.Background(), "a", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, path)
	assert.Contains(t, exec.Executed[2].Query, "*BFS")
}

func TestBoltStore_ShortestPathNoPath(t *testing.T) {
	exec := &MockExecutor{
		ResultQueue: []neo4j.EagerResult{countResult(1), countResult(1), records([]string{"keys"})},
	}
	s := newTestBoltStore(exec, DialectNeo4j)

	_, err := s.ShortestPath(context.Background(), "a", "c")
	assert.ErrorIs(t, err, model.ErrNoPath)
	assert.Contains(t, exec.Executed[2].Query, "shortestPath")
}

func TestBoltStore_ReachableWithin(t *testing.T) {
	exec := &MockExecutor{
		ResultQueue: []neo4j.EagerResult{
			countResult(1),
			records([]string{"key", "dist"},
				[]interface{}{"b", int64(1)},
				[]interface{}{"a", int64(2)},
				[]interface{}{"c", int64(2)},
			),
		},
	}
	s := newTestBoltStore(exec, DialectNeo4j)

	keys, err := s.ReachableWithin(context.Background(), "a", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Contains(t, exec.Executed[1].Query, "*1..2]")
}

func TestBoltStore_ReachableWithinMissingSeed(t *testing.T) {
	exec := &MockExecutor{MockResult: countResult(0)}
	s := newTestBoltStore(exec, DialectNeo4j)

	_, err := s.ReachableWithin(context.Background(), "nowhere", 3)
	assert.ErrorIs(t, err, model.ErrNodeNotFound)
}

func TestBoltStore_PropagatesDriverErrors(t *testing.T) {
	exec := &MockExecutor{Err: fmt.Errorf("connection refused")}
	s := newTestBoltStore(exec, DialectNeo4j)

	_, err := s.HasNode(context.Background(), "a")
	assert.ErrorContains(t, err, "connection refused")

	_, err = s.Stats(context.Background())
	assert.Error(t, err)
}

func TestBoltStore_BuildIndicesIgnoresFailures(t *testing.T) {
	exec := &MockExecutor{Err: fmt.Errorf("index exists")}
	s := newTestBoltStore(exec, DialectMemgraph)

	require.NoError(t, s.BuildIndices(context.Background()))
	assert.Len(t, exec.Executed, 2)
}
