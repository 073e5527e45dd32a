package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	outreach "github.com/alnah/go-outreach"
	"github.com/alnah/go-outreach/internal/apps"
	"github.com/alnah/go-outreach/internal/config"
	"github.com/alnah/go-outreach/internal/sheet"
	"github.com/alnah/go-outreach/internal/smartlead"
	"github.com/alnah/go-outreach/internal/titles"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneral},
		{"api status", smartlead.ErrAPIStatus, ExitAPI},
		{"classify failure", titles.ErrClassify, ExitAPI},
		{"response parse", titles.ErrResponseParse, ExitAPI},
		{"file not found", os.ErrNotExist, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"checkpoint save", titles.ErrCheckpointSave, ExitIO},
		{"mapping read", apps.ErrMappingRead, ExitIO},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid field", config.ErrInvalidField, ExitUsage},
		{"bad step number", outreach.ErrMalformedStepNumber, ExitUsage},
		{"bad step delay", outreach.ErrMalformedStepDelay, ExitUsage},
		{"unsupported format", sheet.ErrUnsupportedFormat, ExitUsage},
		{"no header row", sheet.ErrNoHeaderRow, ExitUsage},
		{"missing column", apps.ErrMissingColumn, ExitUsage},
		{"title column", titles.ErrTitleColumn, ExitUsage},
		{"no titles", titles.ErrNoTitles, ExitUsage},
		{"missing gemini key", titles.ErrMissingAPIKey, ExitUsage},
		{"missing smartlead key", smartlead.ErrMissingAPIKey, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"missing flag", ErrMissingFlag, ExitUsage},
		{"no accounts for sp", ErrNoAccountsForSP, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_Wrapped(t *testing.T) {
	err := fmt.Errorf("campaign %q: %w", "Cold - x (Returns)", smartlead.ErrAPIStatus)
	if got := exitCodeFor(err); got != ExitAPI {
		t.Errorf("exitCodeFor(wrapped) = %d, want %d", got, ExitAPI)
	}
}
