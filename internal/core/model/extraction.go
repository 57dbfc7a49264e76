package model

// Column names of the extractor's tabular output.
const (
	ColumnNode1      = "Node_1"
	ColumnRelation   = "Relation"
	ColumnNode2      = "Node_2"
	ColumnNode1Type  = "Node_1_Type"
	ColumnNode2Type  = "Node_2_Type"
	ColumnAttributes = "Attributes"
)

// RequiredColumns must all be present in a Table handed to the ingestor.
var RequiredColumns = []string{
	ColumnNode1,
	ColumnRelation,
	ColumnNode2,
	ColumnNode1Type,
	ColumnNode2Type,
}

// Table is the raw output of a triple extractor: a column schema plus rows
// keyed by column name. Cell values are usually strings, but the Attributes
// cell may hold a structured object.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// HasColumn reports whether name is part of the table schema.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Triple is one validated relationship row.
type Triple struct {
	Node1      string `json:"node_1"`
	Relation   string `json:"relation"`
	Node2      string `json:"node_2"`
	Node1Type  string `json:"node_1_type"`
	Node2Type  string `json:"node_2_type"`
	Attributes string `json:"attributes"`
}

// PlaceDescriptor is the text gathered about one place before extraction.
type PlaceDescriptor struct {
	Place       string `json:"place"`
	Description string `json:"description"`
	Destination string `json:"destination"`
}
