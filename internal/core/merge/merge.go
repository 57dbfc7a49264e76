// Package merge writes ingested triples into the graph store.
package merge

import (
	"context"

	"github.com/agenthands/travelmate/internal/core/keys"
	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/driver"
	"github.com/agenthands/travelmate/internal/logger"
	"github.com/agenthands/travelmate/internal/metrics"
)

// Counts reports what a merge created.
type Counts struct {
	NodesAdded int `json:"nodes_added"`
	EdgesAdded int `json:"edges_added"`
}

type Merger struct {
	log *logger.Logger
}

func NewMerger(log *logger.Logger) *Merger {
	if log == nil {
		log = logger.Nop()
	}
	return &Merger{log: log}
}

// Merge applies triples in order. Entities and relationships are
// first-write-wins: an existing node keeps its name and type, and an existing
// (source, target) relationship keeps its relation, whatever later rows say.
// The merge is not transactional; on error everything written before the
// failing row stays in the store.
func (m *Merger) Merge(ctx context.Context, store driver.GraphStore, destination string, triples []model.Triple) (Counts, error) {
	var counts Counts

	before, err := store.Stats(ctx)
	if err != nil {
		m.log.Warn("could not read store stats", "error", err)
	} else {
		m.log.Info("merging triples", "destination", destination, "rows", len(triples),
			"nodes", before.Nodes, "edges", before.Edges)
	}

	for _, t := range triples {
		if err := ctx.Err(); err != nil {
			return counts, err
		}

		src := model.Entity{Key: keys.Sanitize(t.Node1), Name: t.Node1, Type: t.Node1Type}
		dst := model.Entity{Key: keys.Sanitize(t.Node2), Name: t.Node2, Type: t.Node2Type}

		for _, n := range []model.Entity{src, dst} {
			created, err := store.AddNode(ctx, n)
			if err != nil {
				metrics.StoreErrors.WithLabelValues("add_node").Inc()
				return counts, &model.StoreWriteError{Op: "add_node", Key: n.Key, Err: err}
			}
			if created {
				counts.NodesAdded++
			}
		}

		created, err := store.AddEdge(ctx, model.Relationship{
			SourceKey:   src.Key,
			TargetKey:   dst.Key,
			Relation:    t.Relation,
			Attributes:  t.Attributes,
			Destination: destination,
		})
		if err != nil {
			metrics.StoreErrors.WithLabelValues("add_edge").Inc()
			return counts, &model.StoreWriteError{Op: "add_edge", Key: src.Key + "->" + dst.Key, Err: err}
		}
		if created {
			counts.EdgesAdded++
		} else {
			m.log.Debug("relationship already present, row dropped",
				"source", src.Key, "target", dst.Key, "relation", t.Relation)
		}
	}

	metrics.NodesAdded.Add(float64(counts.NodesAdded))
	metrics.EdgesAdded.Add(float64(counts.EdgesAdded))

	after, err := store.Stats(ctx)
	if err == nil {
		m.log.Info("merge finished", "destination", destination,
			"nodes_added", counts.NodesAdded, "edges_added", counts.EdgesAdded,
			"nodes", after.Nodes, "edges", after.Edges)
	}

	return counts, nil
}
