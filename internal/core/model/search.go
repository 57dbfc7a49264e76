package model

import (
	"fmt"
	"strings"
)

const (
	// NoEvidenceSentinel replaces an empty evidence batch.
	NoEvidenceSentinel = "No relationship data could be retrieved from the knowledge graph for the given places."

	notFoundFormat = "Node \"%s\" was not found in the knowledge graph."
	pathFormat     = "Node \"%s, a %s\" is connected to Node \"%s, a %s\" by the relationships: \"%s\"."
)

// Evidence is one rendered path from a seed entity to a reachable entity.
// Sentinel evidence carries only Text.
type Evidence struct {
	SeedName   string   `json:"seed_name"`
	SeedType   string   `json:"seed_type"`
	TargetName string   `json:"target_name"`
	TargetType string   `json:"target_type"`
	Relations  []string `json:"relations"`
	Hops       int      `json:"hops"`
	Sentinel   bool     `json:"sentinel,omitempty"`
	Text       string   `json:"text"`
}

// NewPathEvidence renders the statement for a seed→target path.
func NewPathEvidence(seedName, seedType, targetName, targetType string, relations []string, hops int) Evidence {
	return Evidence{
		SeedName:   seedName,
		SeedType:   seedType,
		TargetName: targetName,
		TargetType: targetType,
		Relations:  relations,
		Hops:       hops,
		Text:       fmt.Sprintf(pathFormat, seedName, seedType, targetName, targetType, strings.Join(relations, ", ")),
	}
}

// NotFoundEvidence is the sentinel returned for a seed with no graph coverage.
func NotFoundEvidence(seedName string) Evidence {
	return Evidence{
		SeedName: seedName,
		Sentinel: true,
		Text:     fmt.Sprintf(notFoundFormat, seedName),
	}
}

func (e Evidence) String() string {
	return e.Text
}
