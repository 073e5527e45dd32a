package apps

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Worksheet names the sales team expects in the tagged workbook.
const (
	sheetWithReturns     = "Brands With Return App"
	sheetMultipleReturns = "Brands With >1 Return App"
)

// Write saves the report as a two-sheet workbook: all matched brands,
// then the subset running more than one return app.
func (r *Report) Write(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSheet(f, sheetWithReturns, r.Headers, r.WithReturns); err != nil {
		return err
	}
	if err := writeSheet(f, sheetMultipleReturns, r.Headers, r.MultipleReturns); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	if err := writeRow(f, name, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	for j, cell := range cells {
		name, err := excelize.CoordinatesToCellName(j+1, rowNum)
		if err != nil {
			return fmt.Errorf("writing sheet %q: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, name, cell); err != nil {
			return fmt.Errorf("writing sheet %q: %w", sheet, err)
		}
	}
	return nil
}
