package model

// Entity is a node of the travel knowledge graph. Key is always
// keys.Sanitize(Name) of the name that first created it.
type Entity struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}
