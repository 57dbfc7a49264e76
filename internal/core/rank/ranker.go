// Package rank asks the language model which candidate places suit a trip.
package rank

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/agenthands/travelmate/internal/core/common"
	"github.com/agenthands/travelmate/internal/llm"
	"github.com/agenthands/travelmate/internal/logger"
)

// Request is everything the ranker knows about a trip.
type Request struct {
	Source        string   `json:"source"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate"`
	Budget        string   `json:"budget"`
	Description   string   `json:"description"`
	Places        []string `json:"places"`
	Evidence      []string `json:"evidence"`
}

// LLMRanker renders Prompt with the request and reads back a JSON list of
// place names.
type LLMRanker struct {
	LLM    llm.LLMClient
	Prompt string
	log    *logger.Logger
}

func NewLLMRanker(client llm.LLMClient, prompt string, log *logger.Logger) *LLMRanker {
	if log == nil {
		log = logger.Nop()
	}
	return &LLMRanker{LLM: client, Prompt: prompt, log: log}
}

// Rank returns the names the model picked. An unparseable answer selects
// every candidate; a failed model call is returned as an error.
func (r *LLMRanker) Rank(ctx context.Context, req Request) ([]string, error) {
	places, err := json.Marshal(req.Places)
	if err != nil {
		return nil, err
	}
	evidence, err := json.Marshal(req.Evidence)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(r.Prompt,
		string(places),
		req.Source,
		req.Destination,
		req.DepartureDate,
		req.ReturnDate,
		req.Budget,
		req.Description,
		string(evidence),
	)

	response, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("rank places: %w", err)
	}

	selected, err := common.ParseStringList(response)
	if err != nil {
		r.log.Warn("could not parse ranking, keeping every place",
			"error", err, "response", truncate(response, 200))
		return append([]string(nil), req.Places...), nil
	}
	return selected, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
