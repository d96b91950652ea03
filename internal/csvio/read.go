// Package csvio reads the raw observatory extract and writes the cleaned
// checkpoint. The source file is semicolon-delimited and Latin-1 encoded;
// the cleaned export is UTF-8.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"

	"github.com/example/obras/internal/core/cleanse"
)

// ReadFile loads the raw semicolon-delimited, Latin-1 encoded extract.
func ReadFile(path string) (cleanse.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return cleanse.Table{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return cleanse.Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return table, nil
}

// Read parses a raw extract from r, decoding Latin-1 into UTF-8.
func Read(r io.Reader) (cleanse.Table, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.Comma = ';'
	cr.LazyQuotes = true
	// Export rows are ragged; pad and trim against the header instead.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return cleanse.Table{}, fmt.Errorf("empty csv: missing header row")
	}
	if err != nil {
		return cleanse.Table{}, fmt.Errorf("failed to read header: %w", err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cleanse.Table{}, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, padRow(record, len(header)))
	}

	return cleanse.Table{Header: header, Rows: rows}, nil
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
