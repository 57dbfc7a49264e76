package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/travelmate/internal/core/model"
)

var fullColumns = []string{"Node_1", "Relation", "Node_2", "Node_1_Type", "Node_2_Type", "Attributes"}

func row(n1, rel, n2, t1, t2 string, attrs any) map[string]any {
	return map[string]any{
		"Node_1": n1, "Relation": rel, "Node_2": n2,
		"Node_1_Type": t1, "Node_2_Type": t2, "Attributes": attrs,
	}
}

func TestIngest_DropsExactDuplicates(t *testing.T) {
	table := model.Table{
		Columns: fullColumns,
		Rows: []map[string]any{
			row("A", "R", "B", "Attraction", "Location", `{"price": 10}`),
			row("A", "R", "B", "Attraction", "Location", `{"price": 99}`),
		},
	}

	res, err := Ingest(table)
	require.NoError(t, err)
	require.Len(t, res.Triples, 1)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, `{"price": 10}`, res.Triples[0].Attributes)
}

func TestIngest_KeepsDifferentRelationsForSamePair(t *testing.T) {
	table := model.Table{
		Columns: fullColumns,
		Rows: []map[string]any{
			row("A", "R1", "B", "x", "y", ""),
			row("A", "R2", "B", "x", "y", ""),
		},
	}

	res, err := Ingest(table)
	require.NoError(t, err)
	require.Len(t, res.Triples, 2)
	assert.Equal(t, "R1", res.Triples[0].Relation)
	assert.Equal(t, "R2", res.Triples[1].Relation)
}

func TestIngest_MissingColumns(t *testing.T) {
	table := model.Table{Columns: []string{"Node_1", "Relation", "Node_2"}}

	_, err := Ingest(table)
	require.Error(t, err)

	var malformed *model.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, []string{"Node_1_Type", "Node_2_Type"}, malformed.Missing)
}

func TestIngest_AttributesColumnOptional(t *testing.T) {
	table := model.Table{
		Columns: fullColumns[:5],
		Rows:    []map[string]any{{"Node_1": "A", "Relation": "R", "Node_2": "B", "Node_1_Type": "x", "Node_2_Type": "y"}},
	}

	res, err := Ingest(table)
	require.NoError(t, err)
	require.Len(t, res.Triples, 1)
	assert.Equal(t, "{}", res.Triples[0].Attributes)
}

func TestIngest_DropsBlankNodes(t *testing.T) {
	table := model.Table{
		Columns: fullColumns,
		Rows: []map[string]any{
			row("  ", "R", "B", "x", "y", nil),
			row("A", "R", "B", "x", "y", nil),
		},
	}

	res, err := Ingest(table)
	require.NoError(t, err)
	assert.Len(t, res.Triples, 1)
	assert.Equal(t, 1, res.Blank)
}

func TestNormalizeAttributes(t *testing.T) {
	assert.Equal(t, "{}", NormalizeAttributes(nil))
	assert.Equal(t, "{}", NormalizeAttributes(""))
	assert.Equal(t, "{}", NormalizeAttributes("opening hours: 9-5"))
	assert.Equal(t, "{}", NormalizeAttributes(42))
	assert.Equal(t, `{"hours":"9-5"}`, NormalizeAttributes(`{"hours":"9-5"}`))
	assert.Equal(t, `[1, 2]`, NormalizeAttributes(`[1, 2]`))
	assert.JSONEq(t, `{"price":"free","tips":["go early"]}`,
		NormalizeAttributes(map[string]any{"price": "free", "tips": []any{"go early"}}))
}

func TestParseTSV(t *testing.T) {
	text := "```tsv\n" +
		"Node_1\tRelation\tNode_2\tNode_1_Type\tNode_2_Type\tAttributes\n" +
		"Eiffel Tower\tLOCATED_IN\tParis\tAttraction\tLocation\t{\"height\": \"330m\"}\n" +
		"Eiffel Tower\tBEST_VISITED_IN\tEvening\tAttraction\tTime\n" +
		"```"

	table, err := ParseTSV(text)
	require.NoError(t, err)
	assert.Equal(t, fullColumns, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, `{"height": "330m"}`, table.Rows[0]["Attributes"])
	_, hasAttrs := table.Rows[1]["Attributes"]
	assert.False(t, hasAttrs)

	res, err := Ingest(table)
	require.NoError(t, err)
	require.Len(t, res.Triples, 2)
	assert.Equal(t, "{}", res.Triples[1].Attributes)
}

func TestParseTSV_Empty(t *testing.T) {
	_, err := ParseTSV("```\n```")
	assert.Error(t, err)
}
