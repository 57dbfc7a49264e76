package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/travelmate/internal/core/common"
	"github.com/agenthands/travelmate/internal/core/model"
)

// ParseTSV reads tab separated extractor output into a Table. The first
// line is the header. A surrounding markdown code fence is removed first.
func ParseTSV(text string) (model.Table, error) {
	body := common.StripCodeFence(text, "tsv")
	if body == "" {
		return model.Table{}, errors.New("empty tsv content")
	}

	r := csv.NewReader(strings.NewReader(body))
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to read tsv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := model.Table{Columns: header}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("failed to read tsv row: %w", err)
		}

		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
