package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// formulaPrefixes start cells that spreadsheet applications evaluate as formulas.
const formulaPrefixes = "=+-@\t\r"

// CSVExporter writes a header line of column labels followed by one record per row.
// Free-text cells that would be read as spreadsheet formulas are prefixed with a quote.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.labels()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range data.Rows {
		record := data.record(row)
		for j := range record {
			record[j] = escapeFormula(record[j])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// escapeFormula leaves signed numbers alone so negative values stay numeric.
func escapeFormula(cell string) string {
	if cell == "" || !strings.ContainsRune(formulaPrefixes, rune(cell[0])) {
		return cell
	}
	if (cell[0] == '-' || cell[0] == '+') && isNumeric(cell[1:]) {
		return cell
	}
	return "'" + cell
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
