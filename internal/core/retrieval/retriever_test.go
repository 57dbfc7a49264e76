package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/travelmate/internal/core/merge"
	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/driver"
)

func triple(n1, rel, n2, t1, t2 string) model.Triple {
	return model.Triple{Node1: n1, Relation: rel, Node2: n2, Node1Type: t1, Node2Type: t2, Attributes: "{}"}
}

func seeded(t *testing.T, rows ...model.Triple) *driver.MemoryStore {
	t.Helper()
	store := driver.NewMemoryStore()
	_, err := merge.NewMerger(nil).Merge(context.Background(), store, "Paris", rows)
	require.NoError(t, err)
	return store
}

func texts(evidence []model.Evidence) []string {
	out := make([]string, len(evidence))
	for i, e := range evidence {
		out[i] = e.Text
	}
	return out
}

func TestFindEvidence_SeedNotFound(t *testing.T) {
	store := driver.NewMemoryStore()

	got, err := NewRetriever(nil).FindEvidence(context.Background(), store, "louvre", "Louvre", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Sentinel)
	assert.Equal(t, `Node "Louvre" was not found in the knowledge graph.`, got[0].Text)
}

func TestFindEvidence_EiffelTower(t *testing.T) {
	store := seeded(t,
		triple("Eiffel Tower", "LOCATED_IN", "Paris", "Attraction", "City"),
		triple("Eiffel Tower", "NEAR", "Seine", "Attraction", "River"),
	)

	got, err := NewRetriever(nil).FindEvidence(context.Background(), store, "eiffel_tower", "Eiffel Tower", 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		`Node "Eiffel Tower, a Attraction" is connected to Node "Paris, a City" by the relationships: "LOCATED_IN".`,
		`Node "Eiffel Tower, a Attraction" is connected to Node "Seine, a River" by the relationships: "NEAR".`,
	}, texts(got))
}

func TestFindEvidence_HopBudget(t *testing.T) {
	store := seeded(t,
		triple("A", "NEAR", "B", "Attraction", "Attraction"),
		triple("B", "PART_OF", "C", "Attraction", "District"),
	)
	r := NewRetriever(nil)

	one, err := r.FindEvidence(context.Background(), store, "a", "A", 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "B", one[0].TargetName)

	two, err := r.FindEvidence(context.Background(), store, "a", "A", 2)
	require.NoError(t, err)
	// B is reported at hop 1 and again at hop 2
	require.Len(t, two, 3)
	last := two[2]
	assert.Equal(t, "C", last.TargetName)
	assert.Equal(t, []string{"NEAR", "PART_OF"}, last.Relations)
	assert.Equal(t, 2, last.Hops)
	assert.Equal(t,
		`Node "A, a Attraction" is connected to Node "C, a District" by the relationships: "NEAR, PART_OF".`,
		last.Text)
}

func TestFindEvidence_DirectedOnly(t *testing.T) {
	store := seeded(t, triple("Louvre", "LOCATED_IN", "Paris", "Museum", "City"))

	got, err := NewRetriever(nil).FindEvidence(context.Background(), store, "paris", "Paris", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindEvidence_DefaultHops(t *testing.T) {
	store := seeded(t,
		triple("A", "R1", "B", "T", "T"),
		triple("B", "R2", "C", "T", "T"),
		triple("C", "R3", "D", "T", "T"),
		triple("D", "R4", "E", "T", "T"),
	)

	got, err := NewRetriever(nil).FindEvidence(context.Background(), store, "a", "A", 0)
	require.NoError(t, err)
	// 1 + 2 + 3 statements, E is four hops away
	assert.Len(t, got, 6)
	for _, e := range got {
		assert.NotEqual(t, "E", e.TargetName)
	}
}

type brokenStore struct {
	driver.GraphStore
	failKey string
	err     error
}

func (s *brokenStore) HasNode(ctx context.Context, key string) (bool, error) {
	if key == s.failKey {
		return false, s.err
	}
	return s.GraphStore.HasNode(ctx, key)
}

type vanishingStore struct {
	driver.GraphStore
}

func (s *vanishingStore) ReachableWithin(ctx context.Context, src string, hops int) ([]string, error) {
	if hops == 1 {
		return nil, model.ErrNodeNotFound
	}
	return s.GraphStore.ReachableWithin(ctx, src, hops)
}

type noPathStore struct {
	driver.GraphStore
	unreachable string
}

func (s *noPathStore) ShortestPath(ctx context.Context, src, dst string) ([]string, error) {
	if dst == s.unreachable {
		return nil, model.ErrNoPath
	}
	return s.GraphStore.ShortestPath(ctx, src, dst)
}

func TestFindEvidence_StoreReadError(t *testing.T) {
	store := &brokenStore{GraphStore: driver.NewMemoryStore(), failKey: "louvre", err: errors.New("connection refused")}

	_, err := NewRetriever(nil).FindEvidence(context.Background(), store, "louvre", "Louvre", 3)
	var readErr *model.StoreReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "has_node", readErr.Op)
}

func TestFindEvidence_SkipsHopWhenSeedVanishes(t *testing.T) {
	mem := seeded(t, triple("A", "NEAR", "B", "T", "T"))

	got, err := NewRetriever(nil).FindEvidence(context.Background(), &vanishingStore{GraphStore: mem}, "a", "A", 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].TargetName)
}

func TestFindEvidence_SkipsTargetWithoutPath(t *testing.T) {
	mem := seeded(t,
		triple("A", "NEAR", "B", "T", "T"),
		triple("A", "NEAR", "C", "T", "T"),
	)

	got, err := NewRetriever(nil).FindEvidence(context.Background(), &noPathStore{GraphStore: mem, unreachable: "c"}, "a", "A", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].TargetName)
}

func TestEvidenceBatch(t *testing.T) {
	mem := seeded(t, triple("Eiffel Tower", "LOCATED_IN", "Paris", "Attraction", "City"))
	store := &brokenStore{GraphStore: mem, failKey: "notre_dame", err: errors.New("timeout")}

	got := NewRetriever(nil).EvidenceBatch(context.Background(), store,
		[]string{`"Eiffel Tower"`, "Notre Dame", "Louvre"}, 1)

	require.Len(t, got, 3)
	assert.Equal(t, `Node "Eiffel Tower, a Attraction" is connected to Node "Paris, a City" by the relationships: "LOCATED_IN".`, got[0])
	assert.Contains(t, got[1], `Error processing relationships for "Notre Dame": `)
	assert.Contains(t, got[1], "timeout")
	assert.Equal(t, `Node "Louvre" was not found in the knowledge graph.`, got[2])
}

func TestEvidenceBatch_EmptySentinel(t *testing.T) {
	store := seeded(t, triple("Louvre", "LOCATED_IN", "Paris", "Museum", "City"))
	r := NewRetriever(nil)

	// Paris exists but has no outgoing edges
	assert.Equal(t, []string{model.NoEvidenceSentinel}, r.EvidenceBatch(context.Background(), store, []string{"Paris"}, 3))
	assert.Equal(t, []string{model.NoEvidenceSentinel}, r.EvidenceBatch(context.Background(), store, nil, 3))
}
