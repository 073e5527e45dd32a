package titles

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// timestampLayout matches the checkpoint file-name convention the team's
// downstream tooling globs for.
const timestampLayout = "2006-01-02_15-04-05"

// Checkpoint writes classification results back onto a copy of the
// source workbook: two columns (Tier, Relevant) appended after the
// existing ones, saved under a timestamped name so successive runs never
// overwrite each other.
type Checkpoint struct {
	SourcePath  string           // Workbook the titles came from
	OutputDir   string           // Empty = alongside the source
	TitleColumn string           // Column holding job titles
	Now         func() time.Time // Injectable clock for tests
}

// Flush writes results onto a timestamped copy of the source workbook.
// Rows whose title has no verdict (including blank titles) get the
// NotRelevant default.
func (c *Checkpoint) Flush(results map[string]Classification, partial bool) error {
	f, err := excelize.OpenFile(c.SourcePath) // #nosec G304 -- operator-supplied input path
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrCheckpointSave, c.SourcePath, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("%w: workbook has no worksheet", ErrCheckpointSave)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("%w: reading worksheet: %v", ErrCheckpointSave, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: worksheet is empty", ErrCheckpointSave)
	}

	titleIdx, err := findColumn(rows[0], c.TitleColumn)
	if err != nil {
		return err
	}

	tierCol := len(rows[0]) + 1
	relevantCol := tierCol + 1
	if err := setCell(f, sheet, tierCol, 1, "Tier"); err != nil {
		return err
	}
	if err := setCell(f, sheet, relevantCol, 1, "Relevant"); err != nil {
		return err
	}

	for i, row := range rows[1:] {
		verdict := NotRelevant()
		if titleIdx < len(row) {
			if v, ok := results[row[titleIdx]]; ok {
				verdict = v
			}
		}
		rowNum := i + 2
		if err := setCell(f, sheet, tierCol, rowNum, verdict.Tier); err != nil {
			return err
		}
		if err := setCell(f, sheet, relevantCol, rowNum, verdict.Relevant); err != nil {
			return err
		}
	}

	out := c.path(partial)
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrCheckpointSave, out, err)
	}
	return nil
}

var _ Sink = (*Checkpoint)(nil)

// path builds the timestamped checkpoint file name:
// <base>_title_checked[_partial]_<timestamp>.xlsx
func (c *Checkpoint) path(partial bool) string {
	base := strings.TrimSuffix(filepath.Base(c.SourcePath), filepath.Ext(c.SourcePath))
	suffix := "_title_checked_"
	if partial {
		suffix = "_title_checked_partial_"
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	dir := c.OutputDir
	if dir == "" {
		dir = filepath.Dir(c.SourcePath)
	}
	return filepath.Join(dir, base+suffix+now().Format(timestampLayout)+".xlsx")
}

// findColumn locates a header cell, trimmed and case-insensitive like
// the rest of the spreadsheet handling.
func findColumn(headers []string, name string) (int, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrTitleColumn, name)
}

// setCell writes one cell by 1-based column and row numbers.
func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
	}
	if err := f.SetCellValue(sheet, name, value); err != nil {
		return fmt.Errorf("%w: %v", ErrCheckpointSave, err)
	}
	return nil
}
