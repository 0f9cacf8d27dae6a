// Package dataset loads and writes the pipeline's flat-file inputs and
// outputs. Schemas are by convention: a header row names the columns, and
// missing values travel as empty fields, never as zeros.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// table gives header-keyed access to the rows of one CSV file.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return &table{path: path, columns: columns, rows: records[1:]}, nil
}

func (t *table) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return fmt.Errorf("%s: missing column %q", t.path, name)
		}
	}
	return nil
}

func (t *table) get(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// getInt parses an integer column; an empty field is a legitimate missing
// value and yields nil, never zero.
func (t *table) getInt(row []string, column string) (*int, error) {
	raw := t.get(row, column)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: column %q: %w", t.path, column, err)
	}
	return &value, nil
}

// getDate parses the loosely formatted date columns of the source exports;
// an empty field is a legitimate missing value and yields nil.
func (t *table) getDate(row []string, column string) (*time.Time, error) {
	raw := t.get(row, column)
	if raw == "" {
		return nil, nil
	}
	parsed, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: column %q: parse date %q: %w", t.path, column, raw, err)
	}
	parsed = parsed.UTC()
	return &parsed, nil
}

// WriteCSV writes a header row plus data rows to path. Report writers reuse
// it for the summary outputs.
func WriteCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
