package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/travelmate/internal/core/model"
)

type MockLLMClient struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

type MockSources struct {
	Result []model.PlaceDescriptor
	Err    error
}

func (m *MockSources) Descriptors(ctx context.Context, destination string) ([]model.PlaceDescriptor, error) {
	return m.Result, m.Err
}

const testPrompt = "Destination: %[1]s\nPlaces:\n%[2]s"

func TestExtract(t *testing.T) {
	mockLLM := &MockLLMClient{
		Response: "```tsv\n" +
			"Node_1\tRelation\tNode_2\tNode_1_Type\tNode_2_Type\tAttributes\n" +
			"Eiffel Tower\tLOCATED_IN\tParis\tAttraction\tCity\t{\"height_m\": 330}\n" +
			"Eiffel Tower\tDESIGNED_BY\tGustave Eiffel\tAttraction\tArchitect\t{}\n" +
			"```",
	}
	sources := &MockSources{Result: []model.PlaceDescriptor{
		{Place: "Eiffel Tower", Description: "Wrought-iron lattice tower.", Destination: "Paris"},
	}}

	extractor := NewExtractor(mockLLM, sources, testPrompt, nil)
	table, err := extractor.Extract(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, []string{"Node_1", "Relation", "Node_2", "Node_1_Type", "Node_2_Type", "Attributes"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Gustave Eiffel", table.Rows[1]["Node_2"])
	assert.Equal(t, `{"height_m": 330}`, table.Rows[0]["Attributes"])

	require.Len(t, mockLLM.Prompts, 1)
	assert.Contains(t, mockLLM.Prompts[0], "Destination: Paris")
	assert.Contains(t, mockLLM.Prompts[0], `"description": "Wrought-iron lattice tower."`)
}

func TestExtract_LLMError(t *testing.T) {
	extractor := NewExtractor(&MockLLMClient{Err: errors.New("quota exceeded")}, &MockSources{}, testPrompt, nil)

	_, err := extractor.Extract(context.Background(), "Paris")
	assert.ErrorIs(t, err, model.ErrExtraction)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestExtract_SourcesError(t *testing.T) {
	mockLLM := &MockLLMClient{}
	extractor := NewExtractor(mockLLM, &MockSources{Err: model.ErrUpstream}, testPrompt, nil)

	_, err := extractor.Extract(context.Background(), "Paris")
	assert.ErrorIs(t, err, model.ErrExtraction)
	assert.ErrorIs(t, err, model.ErrUpstream)
	assert.Empty(t, mockLLM.Prompts)
}

func TestExtract_EmptyResponse(t *testing.T) {
	extractor := NewExtractor(&MockLLMClient{Response: "   "}, &MockSources{}, testPrompt, nil)

	_, err := extractor.Extract(context.Background(), "Paris")
	assert.ErrorIs(t, err, model.ErrExtraction)
}
