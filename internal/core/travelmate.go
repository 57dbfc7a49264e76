// Package core ties the knowledge graph pipeline to the recommendation flow:
// build a destination on first sight, gather graph evidence for candidate
// places and let the ranker pick among them.
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/travelmate/internal/core/gate"
	"github.com/agenthands/travelmate/internal/core/itinerary"
	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/core/rank"
	"github.com/agenthands/travelmate/internal/core/retrieval"
	"github.com/agenthands/travelmate/internal/driver"
	"github.com/agenthands/travelmate/internal/logger"
	"github.com/agenthands/travelmate/internal/registry"
)

type PlaceSearcher interface {
	PopularPlaces(ctx context.Context, destination string) ([]model.Place, error)
}

type Ranker interface {
	Rank(ctx context.Context, req rank.Request) ([]string, error)
}

type Planner interface {
	Plan(ctx context.Context, selectedPlaces, userInput string) ([]itinerary.Event, error)
}

// TripRequest is the user's description of a trip.
type TripRequest struct {
	Source        string `json:"source"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Budget        string `json:"budget"`
	Description   string `json:"description"`
}

type TravelMate struct {
	Store     driver.GraphStore
	Registry  registry.Registry
	Gate      *gate.Gate
	Retriever *retrieval.Retriever
	Places    PlaceSearcher
	Ranker    Ranker
	Planner   Planner
	MaxHops   int
	log       *logger.Logger
}

func NewTravelMate(
	store driver.GraphStore,
	reg registry.Registry,
	g *gate.Gate,
	places PlaceSearcher,
	ranker Ranker,
	planner Planner,
	maxHops int,
	log *logger.Logger,
) *TravelMate {
	if log == nil {
		log = logger.Nop()
	}
	return &TravelMate{
		Store:     store,
		Registry:  reg,
		Gate:      g,
		Retriever: retrieval.NewRetriever(log),
		Places:    places,
		Ranker:    ranker,
		Planner:   planner,
		MaxHops:   maxHops,
		log:       log,
	}
}

// KnownDestinations lists destinations whose subgraph has been built.
func (t *TravelMate) KnownDestinations(ctx context.Context) ([]string, error) {
	return t.Registry.List(ctx)
}

// TopPlaces recommends places at the request's destination. Returned places
// are those the ranker picked, marked Selected. If the ranker itself fails
// every candidate is returned unmarked.
func (t *TravelMate) TopPlaces(ctx context.Context, req TripRequest) ([]model.Place, error) {
	log := t.log.With("destination", req.Destination)

	known, err := t.Registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list known destinations: %w", err)
	}

	outcome, err := t.Gate.EnsureBuilt(ctx, t.Store, req.Destination, known)
	if err != nil {
		return nil, err
	}
	if outcome.Built {
		log.Info("destination built", "nodes_added", outcome.Counts.NodesAdded, "edges_added", outcome.Counts.EdgesAdded)
	}

	candidates, err := t.Places.PopularPlaces(ctx, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}

	names := make([]string, len(candidates))
	for i, p := range candidates {
		names[i] = strings.ReplaceAll(p.Name, `"`, "")
	}
	evidence := t.Retriever.EvidenceBatch(ctx, t.Store, names, t.MaxHops)

	result := candidates
	selected, err := t.Ranker.Rank(ctx, rank.Request{
		Source:        req.Source,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Budget:        req.Budget,
		Description:   req.Description,
		Places:        names,
		Evidence:      evidence,
	})
	if err != nil {
		log.Warn("ranking failed, returning every place", "error", err)
	} else {
		result = markSelected(candidates, selected)
	}

	if !registry.Contains(known, req.Destination) {
		if err := t.Registry.Append(ctx, req.Destination); err != nil {
			log.Error("could not record destination", "error", err)
		}
	}

	return result, nil
}

// Plan builds an itinerary for places the user already chose.
func (t *TravelMate) Plan(ctx context.Context, selectedPlaces, userInput string) ([]itinerary.Event, error) {
	return t.Planner.Plan(ctx, selectedPlaces, userInput)
}

// markSelected keeps the places named in selected, in search order.
func markSelected(places []model.Place, selected []string) []model.Place {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}

	out := make([]model.Place, 0, len(selected))
	for _, p := range places {
		if _, ok := want[p.Name]; ok {
			p.Selected = true
			out = append(out, p)
		}
	}
	return out
}
