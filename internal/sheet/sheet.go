// Package sheet loads tabular spreadsheet data into string tables.
//
// Workbooks (.xlsx, .xlsm) are read through excelize, first worksheet
// only; .csv files go through encoding/csv. Header lookup is trimmed and
// case-insensitive, matching how operators hand-edit export files.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sentinel errors for sheet operations.
var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrNoHeaderRow       = errors.New("sheet has no header row")
	ErrNoWorksheet       = errors.New("workbook has no worksheet")
)

// Table is one worksheet or CSV file materialized as string cells under a
// header row.
type Table struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

// ReadTable loads path into a Table. The format follows the extension:
// .xlsx/.xlsm workbooks or .csv files.
func ReadTable(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// NewTable builds a Table from a header row and data rows. Data rows are
// padded or truncated to the header width; rows whose cells are all blank
// are dropped (spreadsheet tools love to emit phantom rows below the real
// data). On duplicate headers the first column wins.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{
		headers: make([]string, len(headers)),
		index:   make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		t.headers[i] = strings.TrimSpace(h)
		key := normalizeKey(h)
		if _, ok := t.index[key]; !ok {
			t.index[key] = i
		}
	}

	for _, row := range rows {
		padded := make([]string, len(headers))
		copy(padded, row)
		if allBlank(padded) {
			continue
		}
		t.rows = append(t.rows, padded)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Headers returns the trimmed header cells in column order.
func (t *Table) Headers() []string {
	return t.headers
}

// HasColumn reports whether a column exists under the given name
// (trimmed, case-insensitive).
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[normalizeKey(name)]
	return ok
}

// Cell returns the raw cell at data row i in the named column, or the
// empty string when the column does not exist.
func (t *Table) Cell(i int, column string) string {
	idx, ok := t.index[normalizeKey(column)]
	if !ok || i < 0 || i >= len(t.rows) {
		return ""
	}
	return t.rows[i][idx]
}

// Row returns data row i padded to the header width.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Column returns every cell of the named column in row order, or nil when
// the column does not exist.
func (t *Table) Column(name string) []string {
	idx, ok := t.index[normalizeKey(name)]
	if !ok {
		return nil
	}
	cells := make([]string, len(t.rows))
	for i, row := range t.rows {
		cells[i] = row[idx]
	}
	return cells
}

// Merge appends the data rows of every table onto the first one's header
// layout, matching columns by name. Tables missing a column contribute
// blank cells for it.
func Merge(tables ...*Table) *Table {
	if len(tables) == 0 {
		return NewTable(nil, nil)
	}
	base := tables[0]
	merged := NewTable(base.headers, base.rows)
	for _, t := range tables[1:] {
		for i := 0; i < t.Len(); i++ {
			row := make([]string, len(base.headers))
			for col, h := range base.headers {
				row[col] = t.Cell(i, h)
			}
			if allBlank(row) {
				continue
			}
			merged.rows = append(merged.rows, row)
		}
	}
	return merged
}

func readWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path) // #nosec G304 -- operator-supplied input path
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", sheets[0], err)
	}
	return tableFromRows(rows)
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path) // #nosec G304 -- operator-supplied input path
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return tableFromRows(rows)
}

func tableFromRows(raw [][]string) (*Table, error) {
	if len(raw) == 0 {
		return nil, ErrNoHeaderRow
	}
	return NewTable(raw[0], raw[1:]), nil
}

// normalizeKey folds a header name for lookup.
func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func allBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
