package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alnah/go-outreach/internal/config"
	"github.com/alnah/go-outreach/internal/sheet"
)

const exportCSV = `domain,merchant_name,installed_apps_names,technologies,platform_rank,estimated_yearly_sales
acme.com,Acme,Loop Returns & Exchanges:Klaviyo,Shopify,12,500000
plain.com,Plain,Klaviyo,Shopify,40,90000
`

func TestRunAppsCmd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(input, []byte(exportCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	env, stdout, _ := testEnv()

	if err := runAppsCmd([]string{input}, env); err != nil {
		t.Fatalf("runAppsCmd() error = %v", err)
	}

	out := filepath.Join(dir, "export_return_apps.xlsx")
	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("tagged workbook not written: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Brands With Return App")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "acme.com" {
		t.Errorf("tagged rows = %v, want header plus acme.com", rows)
	}
	if !strings.Contains(stdout.String(), "1 with a return app") {
		t.Errorf("stdout = %q, missing summary", stdout.String())
	}
}

func TestTaggedOutputPath(t *testing.T) {
	tests := []struct {
		flag, input, outputDir, want string
	}{
		{"custom.xlsx", "export.csv", "", "custom.xlsx"},
		{"", "data/export.csv", "", "data/export_return_apps.xlsx"},
		{"", "data/export.csv", "out", filepath.Join("out", "export_return_apps.xlsx")},
	}
	for _, tt := range tests {
		if got := taggedOutputPath(tt.flag, tt.input, tt.outputDir); got != tt.want {
			t.Errorf("taggedOutputPath(%q, %q, %q) = %q, want %q",
				tt.flag, tt.input, tt.outputDir, got, tt.want)
		}
	}
}

func TestResolveMapping_Default(t *testing.T) {
	m, err := resolveMapping("", config.DefaultConfig())
	if err != nil {
		t.Fatalf("resolveMapping() error = %v", err)
	}
	if len(m) == 0 {
		t.Fatal("resolveMapping() returned an empty default mapping")
	}
}

func TestResolveMapping_SpreadsheetOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "competitors.csv")
	csv := "Competitor,RC\nLoop Returns & Exchanges,Loop\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := resolveMapping(path, config.DefaultConfig())
	if err != nil {
		t.Fatalf("resolveMapping() error = %v", err)
	}
	if len(m) != 1 || m["loop returns & exchanges"] != "Loop" {
		t.Errorf("mapping = %v", m)
	}
}

func TestBatchSize(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := batchSize(10, cfg); got != 10 {
		t.Errorf("batchSize(10) = %d, want flag to win", got)
	}
	if got := batchSize(0, cfg); got != 50 {
		t.Errorf("batchSize(0) = %d, want config default 50", got)
	}
}

func TestRunClassifyCmd_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "leads.xlsx")
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "Name"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "A2", "Ada"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(input); err != nil {
		t.Fatal(err)
	}
	env, _, _ := testEnv()

	err := runClassifyCmd(context.Background(), []string{input}, env)
	if err == nil || !strings.Contains(err.Error(), "title column") {
		t.Fatalf("runClassifyCmd() error = %v, want missing title column", err)
	}
}

func TestRunClassifyCmd_RejectsCSV(t *testing.T) {
	// The checkpoint writes onto a copy of the source workbook, so a
	// .csv must be refused before any classification happens.
	dir := t.TempDir()
	input := filepath.Join(dir, "leads.csv")
	if err := os.WriteFile(input, []byte("Title\nCEO\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env, _, _ := testEnv()

	err := runClassifyCmd(context.Background(), []string{input}, env)
	if !errors.Is(err, sheet.ErrUnsupportedFormat) {
		t.Fatalf("runClassifyCmd() error = %v, want ErrUnsupportedFormat", err)
	}
}
