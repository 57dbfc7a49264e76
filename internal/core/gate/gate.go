// Package gate builds a destination's subgraph the first time it is seen.
package gate

import (
	"context"
	"fmt"

	"github.com/agenthands/travelmate/internal/core/ingest"
	"github.com/agenthands/travelmate/internal/core/merge"
	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/driver"
	"github.com/agenthands/travelmate/internal/logger"
	"github.com/agenthands/travelmate/internal/metrics"
)

// Extractor produces relationship rows describing a destination.
type Extractor interface {
	Extract(ctx context.Context, destination string) (model.Table, error)
}

// Outcome reports whether EnsureBuilt did any work.
type Outcome struct {
	Built  bool         `json:"built"`
	Counts merge.Counts `json:"counts"`
}

type Gate struct {
	extractor Extractor
	merger    *merge.Merger
	log       *logger.Logger
}

func NewGate(extractor Extractor, merger *merge.Merger, log *logger.Logger) *Gate {
	if log == nil {
		log = logger.Nop()
	}
	if merger == nil {
		merger = merge.NewMerger(log)
	}
	return &Gate{extractor: extractor, merger: merger, log: log}
}

// EnsureBuilt extracts, ingests and merges destination unless it is already
// one of known (exact match). It never records destination as known; the
// caller does that once the build succeeds. A failed build may leave part of
// the destination merged.
func (g *Gate) EnsureBuilt(ctx context.Context, store driver.GraphStore, destination string, known []string) (Outcome, error) {
	for _, k := range known {
		if k == destination {
			g.log.Debug("destination already built", "destination", destination)
			metrics.DestinationsBuilt.WithLabelValues("cached").Inc()
			return Outcome{}, nil
		}
	}

	g.log.Info("building destination subgraph", "destination", destination)

	table, err := g.extractor.Extract(ctx, destination)
	if err != nil {
		metrics.DestinationsBuilt.WithLabelValues("failed").Inc()
		return Outcome{}, fmt.Errorf("extract %q: %w", destination, err)
	}

	res, err := ingest.Ingest(table)
	if err != nil {
		metrics.DestinationsBuilt.WithLabelValues("failed").Inc()
		return Outcome{}, fmt.Errorf("ingest %q: %w", destination, err)
	}
	if res.Duplicates > 0 || res.Blank > 0 {
		g.log.Debug("ingest dropped rows", "destination", destination,
			"duplicates", res.Duplicates, "blank", res.Blank)
	}

	counts, err := g.merger.Merge(ctx, store, destination, res.Triples)
	if err != nil {
		metrics.DestinationsBuilt.WithLabelValues("failed").Inc()
		return Outcome{Counts: counts}, fmt.Errorf("merge %q: %w", destination, err)
	}

	metrics.DestinationsBuilt.WithLabelValues("built").Inc()
	return Outcome{Built: true, Counts: counts}, nil
}
