package main

import (
	"errors"
	"os"

	outreach "github.com/alnah/go-outreach"
	"github.com/alnah/go-outreach/internal/apps"
	"github.com/alnah/go-outreach/internal/config"
	"github.com/alnah/go-outreach/internal/sheet"
	"github.com/alnah/go-outreach/internal/smartlead"
	"github.com/alnah/go-outreach/internal/titles"
)

// Exit codes for the outreach CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input data
	ExitIO      = 3 // File not found, permission denied, write failures
	ExitAPI     = 4 // Campaign platform or model API errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External API errors (exit 4)
	if errors.Is(err, smartlead.ErrAPIStatus) ||
		errors.Is(err, titles.ErrClassify) ||
		errors.Is(err, titles.ErrResponseParse) {
		return ExitAPI
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, titles.ErrCheckpointSave) ||
		errors.Is(err, apps.ErrMappingRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, outreach.ErrMalformedStepNumber) ||
		errors.Is(err, outreach.ErrMalformedStepDelay) ||
		errors.Is(err, sheet.ErrUnsupportedFormat) ||
		errors.Is(err, sheet.ErrNoHeaderRow) ||
		errors.Is(err, sheet.ErrNoWorksheet) ||
		errors.Is(err, apps.ErrMissingColumn) ||
		errors.Is(err, titles.ErrTitleColumn) ||
		errors.Is(err, titles.ErrNoTitles) ||
		errors.Is(err, titles.ErrMissingAPIKey) ||
		errors.Is(err, smartlead.ErrMissingAPIKey) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrMissingFlag) ||
		errors.Is(err, ErrNoAccountsForSP) {
		return ExitUsage
	}

	return ExitGeneral
}
