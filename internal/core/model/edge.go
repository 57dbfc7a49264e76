package model

// Relationship is a directed edge between two entity keys. At most one
// relationship exists per (SourceKey, TargetKey) pair.
type Relationship struct {
	SourceKey   string `json:"source_key"`
	TargetKey   string `json:"target_key"`
	Relation    string `json:"relation"`
	Attributes  string `json:"attributes"` // JSON object string, "{}" when empty
	Destination string `json:"destination,omitempty"`
}
