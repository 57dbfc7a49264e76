// Package ingest validates and deduplicates relationship rows produced by a
// triple extractor.
package ingest

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/agenthands/travelmate/internal/core/model"
)

const emptyAttributes = "{}"

// Result is the outcome of Ingest.
type Result struct {
	Triples    []model.Triple
	Duplicates int
	Blank      int
}

type tripleKey struct {
	node1, relation, node2 string
}

// Ingest checks the table schema, normalises attributes and drops duplicate
// (Node_1, Relation, Node_2) rows, keeping the first occurrence. Rows with a
// blank Node_1 or Node_2 are dropped as well.
func Ingest(table model.Table) (Result, error) {
	var missing []string
	for _, col := range model.RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Result{}, &model.MalformedInputError{Missing: missing}
	}

	res := Result{Triples: make([]model.Triple, 0, len(table.Rows))}
	seen := make(map[tripleKey]struct{}, len(table.Rows))

	for _, row := range table.Rows {
		t := model.Triple{
			Node1:      cell(row, model.ColumnNode1),
			Relation:   cell(row, model.ColumnRelation),
			Node2:      cell(row, model.ColumnNode2),
			Node1Type:  cell(row, model.ColumnNode1Type),
			Node2Type:  cell(row, model.ColumnNode2Type),
			Attributes: NormalizeAttributes(row[model.ColumnAttributes]),
		}
		if strings.TrimSpace(t.Node1) == "" || strings.TrimSpace(t.Node2) == "" {
			res.Blank++
			continue
		}

		k := tripleKey{t.Node1, t.Relation, t.Node2}
		if _, dup := seen[k]; dup {
			res.Duplicates++
			continue
		}
		seen[k] = struct{}{}
		res.Triples = append(res.Triples, t)
	}

	return res, nil
}

// NormalizeAttributes turns an attributes cell into a JSON string. Missing,
// empty and unparseable values become "{}"; structured objects are encoded;
// valid JSON strings pass through unchanged.
func NormalizeAttributes(v any) string {
	switch a := v.(type) {
	case nil:
		return emptyAttributes
	case string:
		if a == "" || !json.Valid([]byte(a)) {
			return emptyAttributes
		}
		return a
	case map[string]any:
		b, err := json.Marshal(a)
		if err != nil {
			return emptyAttributes
		}
		return string(b)
	default:
		return emptyAttributes
	}
}

func cell(row map[string]any, col string) string {
	switch v := row[col].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
