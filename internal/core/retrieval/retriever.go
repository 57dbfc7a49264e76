// Package retrieval turns the neighbourhood of a place in the knowledge graph
// into natural-language evidence statements.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/travelmate/internal/core/keys"
	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/driver"
	"github.com/agenthands/travelmate/internal/logger"
	"github.com/agenthands/travelmate/internal/metrics"
)

const (
	DefaultMaxHops = 3

	unknownName = "unknown"
	unknownType = "unknown type"
)

type Retriever struct {
	log *logger.Logger
}

func NewRetriever(log *logger.Logger) *Retriever {
	if log == nil {
		log = logger.Nop()
	}
	return &Retriever{log: log}
}

// FindEvidence walks outward from seedKey one hop budget at a time, 1 through
// maxHops, and renders one statement per reachable entity per budget. Targets
// found at a short distance are reported again at every larger budget.
// seedDisplay is the name used for the seed in every statement.
//
// A seed missing from the store yields a single not-found sentinel. Only
// store failures are returned as errors, wrapped in *model.StoreReadError.
func (r *Retriever) FindEvidence(ctx context.Context, store driver.GraphStore, seedKey, seedDisplay string, maxHops int) ([]model.Evidence, error) {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	ok, err := store.HasNode(ctx, seedKey)
	if err != nil {
		return nil, readError("has_node", seedKey, err)
	}
	if !ok {
		r.log.Debug("seed not in graph", "key", seedKey)
		metrics.EvidenceStatements.WithLabelValues("not_found").Inc()
		return []model.Evidence{model.NotFoundEvidence(seedDisplay)}, nil
	}

	seedType := unknownType
	seed, err := store.GetNode(ctx, seedKey)
	switch {
	case err == nil:
		if seed.Type != "" {
			seedType = seed.Type
		}
	case !errors.Is(err, model.ErrNodeNotFound):
		return nil, readError("get_node", seedKey, err)
	}

	var out []model.Evidence
	for hops := 1; hops <= maxHops; hops++ {
		found, err := r.hop(ctx, store, seedKey, seedDisplay, seedType, hops)
		out = append(out, found...)
		if errors.Is(err, model.ErrNodeNotFound) {
			r.log.Debug("seed vanished during traversal, skipping hop", "key", seedKey, "hops", hops)
			continue
		}
		if err != nil {
			return out, err
		}
	}

	metrics.EvidenceStatements.WithLabelValues("path").Add(float64(len(out)))
	return out, nil
}

func (r *Retriever) hop(ctx context.Context, store driver.GraphStore, seedKey, seedDisplay, seedType string, hops int) ([]model.Evidence, error) {
	reachable, err := store.ReachableWithin(ctx, seedKey, hops)
	if err != nil {
		if errors.Is(err, model.ErrNodeNotFound) {
			return nil, err
		}
		return nil, readError("reachable_within", seedKey, err)
	}

	var out []model.Evidence
	for _, target := range reachable {
		if target == seedKey {
			continue
		}

		path, err := store.ShortestPath(ctx, seedKey, target)
		if errors.Is(err, model.ErrNoPath) {
			continue
		}
		if err != nil {
			if errors.Is(err, model.ErrNodeNotFound) {
				return out, err
			}
			return out, readError("shortest_path", target, err)
		}

		relations, err := pathRelations(ctx, store, path)
		if err != nil {
			return out, err
		}

		name, typ := unknownName, unknownType
		node, err := store.GetNode(ctx, target)
		switch {
		case err == nil:
			if node.Name != "" {
				name = node.Name
			}
			if node.Type != "" {
				typ = node.Type
			}
		case !errors.Is(err, model.ErrNodeNotFound):
			return out, readError("get_node", target, err)
		}

		out = append(out, model.NewPathEvidence(seedDisplay, seedType, name, typ, relations, len(path)-1))
	}
	return out, nil
}

// pathRelations collects the relation label of every edge along path.
// Edges that cannot be found contribute nothing.
func pathRelations(ctx context.Context, store driver.GraphStore, path []string) ([]string, error) {
	relations := make([]string, 0, len(path))
	for i := 0; i+1 < len(path); i++ {
		edge, err := store.GetEdge(ctx, path[i], path[i+1])
		if errors.Is(err, model.ErrEdgeNotFound) {
			continue
		}
		if err != nil {
			return nil, readError("get_edge", path[i]+"->"+path[i+1], err)
		}
		if edge.Relation != "" {
			relations = append(relations, edge.Relation)
		}
	}
	return relations, nil
}

// EvidenceBatch gathers evidence for several places. A failure on one place
// is reported as a statement for that place and the batch carries on. When
// nothing at all was produced the batch is the single NoEvidenceSentinel.
func (r *Retriever) EvidenceBatch(ctx context.Context, store driver.GraphStore, places []string, maxHops int) []string {
	var out []string
	for _, place := range places {
		name := strings.ReplaceAll(place, `"`, "")
		evidence, err := r.FindEvidence(ctx, store, keys.Sanitize(name), name, maxHops)
		for _, e := range evidence {
			out = append(out, e.Text)
		}
		if err != nil {
			r.log.Warn("evidence retrieval failed", "place", name, "error", err)
			metrics.EvidenceStatements.WithLabelValues("error").Inc()
			out = append(out, fmt.Sprintf("Error processing relationships for \"%s\": %v", name, err))
		}
	}

	if len(out) == 0 {
		metrics.EvidenceStatements.WithLabelValues("empty_batch").Inc()
		return []string{model.NoEvidenceSentinel}
	}
	return out
}

func readError(op, key string, err error) error {
	metrics.StoreErrors.WithLabelValues(op).Inc()
	return &model.StoreReadError{Op: op, Key: key, Err: err}
}
