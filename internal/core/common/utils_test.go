package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "a\tb", StripCodeFence("```tsv\na\tb\n```", "tsv"))
	assert.Equal(t, "a\tb", StripCodeFence("Here you go:\n```\na\tb\n```\nEnjoy", "tsv"))
	assert.Equal(t, "plain", StripCodeFence("  plain \n", "tsv"))
}

func TestParseJSON(t *testing.T) {
	type summary struct {
		Summary string `json:"summary"`
	}
	got, err := ParseJSON[summary]("Sure! {\"summary\": \"ok\"} trailing")
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Summary)

	_, err = ParseJSON[summary]("no json here")
	assert.Error(t, err)
}

func TestParseJSONArray(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	got, err := ParseJSONArray[item]("```json\n[{\"name\": \"Ghats\"}, {\"name\": \"Fort\"}]\n```")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Fort", got[1].Name)
}

func TestParseStringList(t *testing.T) {
	got, err := ParseStringList("```json\n[\"Louvre Museum\", \"Eiffel Tower\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"Louvre Museum", "Eiffel Tower"}, got)

	got, err = ParseStringList(`I recommend ["Eiffel Tower"] for you.`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eiffel Tower"}, got)

	_, err = ParseStringList("nothing useful")
	assert.Error(t, err)
}
