// Package itinerary turns a set of chosen places into a day plan.
package itinerary

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/travelmate/internal/core/common"
	"github.com/agenthands/travelmate/internal/llm"
	"github.com/agenthands/travelmate/internal/logger"
)

var ErrEmptyPlan = errors.New("planner returned no events")

type Event struct {
	PlaceID              int    `json:"place_id"`
	Name                 string `json:"name"`
	Details              string `json:"details"`
	Timing               string `json:"timing"`
	FamousActivity       string `json:"famous_activity"`
	TotalDuration        string `json:"total_duration"`
	RecommendedTransport string `json:"recommended_transport"`
	AdditionalNotes      string `json:"additional_notes"`
}

type Planner struct {
	LLM    llm.LLMClient
	Prompt string
	log    *logger.Logger
}

func NewPlanner(client llm.LLMClient, prompt string, log *logger.Logger) *Planner {
	if log == nil {
		log = logger.Nop()
	}
	return &Planner{LLM: client, Prompt: prompt, log: log}
}

// Plan asks for a schedule covering selectedPlaces. Both arguments are
// free text from the client.
func (p *Planner) Plan(ctx context.Context, selectedPlaces, userInput string) ([]Event, error) {
	prompt := fmt.Sprintf(p.Prompt, userInput, selectedPlaces)

	response, err := p.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("plan events: %w", err)
	}

	events, err := common.ParseJSONArray[Event](response)
	if err != nil {
		return nil, fmt.Errorf("plan events: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrEmptyPlan
	}

	p.log.Debug("planned itinerary", "events", len(events))
	return events, nil
}
