package extraction

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/agenthands/travelmate/internal/core/ingest"
	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/llm"
	"github.com/agenthands/travelmate/internal/logger"
)

// DescriptorSource supplies the reference text the extraction prompt is
// built from.
type DescriptorSource interface {
	Descriptors(ctx context.Context, destination string) ([]model.PlaceDescriptor, error)
}

// Extractor asks the language model for a TSV table of relationships about
// a destination. Prompt is a fmt template: %[1]s is the destination and
// %[2]s the JSON encoded place descriptors.
type Extractor struct {
	LLM     llm.LLMClient
	Sources DescriptorSource
	Prompt  string
	log     *logger.Logger
}

func NewExtractor(llmClient llm.LLMClient, sources DescriptorSource, prompt string, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		LLM:     llmClient,
		Sources: sources,
		Prompt:  prompt,
		log:     log,
	}
}

func (e *Extractor) Extract(ctx context.Context, destination string) (model.Table, error) {
	descriptors, err := e.Sources.Descriptors(ctx, destination)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: gather sources: %w", model.ErrExtraction, err)
	}

	encoded, err := json.MarshalIndent(descriptors, "", "  ")
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: encode descriptors: %w", model.ErrExtraction, err)
	}

	prompt := fmt.Sprintf(e.Prompt, destination, string(encoded))

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: generate: %w", model.ErrExtraction, err)
	}

	table, err := ingest.ParseTSV(response)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: parse table: %w", model.ErrExtraction, err)
	}

	e.log.Info("extracted relationship table", "destination", destination,
		"places", len(descriptors), "rows", len(table.Rows))
	return table, nil
}
