package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Eiffel Tower":         "eiffel_tower",
		"  Louvre Museum  ":    "louvre_museum",
		"St. Peter's Basilica": "st__peter_s_basilica",
		"Ghat-42_ok":           "ghat-42_ok",
		"Café":                 "caf_",
		"":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "input %q", in)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	for _, in := range []string{"Eiffel Tower", "Taj Mahal (Agra)", "ÜBER café", "a/b\\c", "__x--"} {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once))
	}
}

func TestSanitize_CollapsesCaseAndPunctuation(t *testing.T) {
	assert.Equal(t, Sanitize("Eiffel Tower"), Sanitize("EIFFEL.TOWER"))
}
