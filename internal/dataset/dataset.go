// Package dataset loads the two source CSV files into typed records.
// Loading is strict: a row that fails required-field parsing aborts the
// load with an error naming the file, line and offending value, rather
// than silently producing nulls or dropped rows.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/statevax/statevax-go/internal/errors"
)

// ErrMalformedRow is the sentinel for rows that fail required-field parsing.
var ErrMalformedRow = fmt.Errorf("malformed row")

// Party is the simplified party affiliation of an election row.
type Party string

const (
	PartyDemocrat   Party = "DEMOCRAT"
	PartyRepublican Party = "REPUBLICAN"
	PartyOther      Party = "OTHER"
)

// ParseParty maps a party_simplified value onto the Party enum. Anything
// that is not DEMOCRAT or REPUBLICAN collapses to OTHER, the source data
// also carries LIBERTARIAN and OTHER.
func ParseParty(s string) Party {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PartyDemocrat):
		return PartyDemocrat
	case string(PartyRepublican):
		return PartyRepublican
	default:
		return PartyOther
	}
}

// columnIndex maps required column names to their positions in the header
// row. Missing columns abort the load.
func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// forEachRow opens a CSV file and calls fn for every data row with its
// 1-based line number and the header index. The reader tolerates ragged
// rows so that header-index lookups decide what is required, not the
// column count.
func forEachRow(path string, required []string, fn func(line int, idx map[string]int, row []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return errors.New(fmt.Errorf("reading header: %w", err)).
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}

	idx, err := columnIndex(header, required)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return errors.New(fmt.Errorf("%w: %v", ErrMalformedRow, err)).
				Category(errors.CategoryFileParsing).
				Context("path", path).
				Context("line", line).
				Build()
		}
		if err := fn(line, idx, row); err != nil {
			return err
		}
	}
}

// malformed builds the MalformedRow error for a single bad cell.
func malformed(path string, line int, column, value string, cause error) error {
	return errors.New(fmt.Errorf("%w: column %s value %q: %v", ErrMalformedRow, column, value, cause)).
		Category(errors.CategoryFileParsing).
		Context("path", path).
		Context("line", line).
		Context("column", column).
		Context("value", value).
		Build()
}

// field returns the cell for a named column, or "" when the row is too
// short. Header presence is already guaranteed by columnIndex.
func field(row []string, idx map[string]int, name string) string {
	i := idx[name]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
