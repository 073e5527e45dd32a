package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	outreach "github.com/alnah/go-outreach"
	"github.com/alnah/go-outreach/internal/config"
	"github.com/alnah/go-outreach/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadInput       = errors.New("failed to read input")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrMissingFlag     = errors.New("required flag missing")
	ErrNoAccountsForSP = errors.New("no email accounts configured for sp selection")
)

// spreadsheetExtensions are the formats commands accept as input.
var spreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// resolveConfig loads the effective configuration: the --config flag
// wins, then OUTREACH_CONFIG, then built-in defaults.
func resolveConfig(flagConfig string, settings *envSettings) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = settings.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err,
				hints.ForConfigNotFound([]string{name}))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newCompiler builds the sequence compiler from config overrides.
func newCompiler(cfg *config.Config) *outreach.Compiler {
	var opts []outreach.Option
	if len(cfg.Compiler.Tokens) > 0 {
		opts = append(opts, outreach.WithTokenTable(cfg.Compiler.Tokens))
	}
	if cfg.Compiler.StrictEmphasis {
		opts = append(opts, outreach.WithStrictEmphasis())
	}
	return outreach.NewCompiler(opts...)
}

// resolveInputs returns the spreadsheets to process: positional args win,
// then the default input directory from config or environment.
func resolveInputs(positional []string, cfg *config.Config, settings *envSettings) ([]string, error) {
	if len(positional) > 0 {
		return positional, nil
	}

	dir := cfg.Input.DefaultDir
	if dir == "" {
		dir = settings.InputDir
	}
	if dir == "" {
		return nil, fmt.Errorf("%w: pass input files or set input.defaultDir", ErrNoInput)
	}

	inputs, err := discoverSpreadsheets(dir)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no spreadsheets found in %s", ErrNoInput, dir)
	}
	return inputs, nil
}

// discoverSpreadsheets lists the spreadsheet files directly under dir,
// sorted by name. Subdirectories are not walked; template folders are
// flat in practice.
func discoverSpreadsheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, dir, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if spreadsheetExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// resolveOutputDir picks the output directory: flag, then config, then
// environment. Empty means alongside each input.
func resolveOutputDir(flagOutput string, cfg *config.Config, settings *envSettings) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return settings.OutputDir
}
