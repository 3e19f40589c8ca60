package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser renders CSV rows as pipe-delimited lines, the same grid format
// the extractor emits for detected tables, so the structure parser groups
// the whole file into table nodes.
type CSVParser struct{}

func (p *CSVParser) Parse(_ context.Context, r io.Reader, _ string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		cells := make([]string, width)
		for i, cell := range rec {
			cells[i] = strings.TrimSpace(cell)
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return strings.Join(lines, "\n"), nil
}
