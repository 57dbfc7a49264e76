package sources

import (
	"context"

	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/logger"
)

const DefaultPlacesPerDestination = 2

type PlaceSearcher interface {
	PopularPlaces(ctx context.Context, destination string) ([]model.Place, error)
}

type Describer interface {
	Describe(ctx context.Context, name string) (string, error)
}

// Gatherer collects a Wikipedia description for the top places of a
// destination.
type Gatherer struct {
	Places  PlaceSearcher
	Wiki    Describer
	PerCity int
	log     *logger.Logger
}

func NewGatherer(places PlaceSearcher, wiki Describer, perCity int, log *logger.Logger) *Gatherer {
	if perCity <= 0 {
		perCity = DefaultPlacesPerDestination
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Gatherer{Places: places, Wiki: wiki, PerCity: perCity, log: log}
}

func (g *Gatherer) Descriptors(ctx context.Context, destination string) ([]model.PlaceDescriptor, error) {
	places, err := g.Places.PopularPlaces(ctx, destination)
	if err != nil {
		return nil, err
	}

	n := min(g.PerCity, len(places))
	out := make([]model.PlaceDescriptor, 0, n)
	for _, p := range places[:n] {
		desc, err := g.Wiki.Describe(ctx, p.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, model.PlaceDescriptor{
			Place:       p.Name,
			Description: desc,
			Destination: destination,
		})
	}

	g.log.Debug("gathered place descriptors", "destination", destination, "count", len(out))
	return out, nil
}
