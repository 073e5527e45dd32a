package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-outreach/internal/apps"
	"github.com/alnah/go-outreach/internal/config"
	"github.com/alnah/go-outreach/internal/fileutil"
	"github.com/alnah/go-outreach/internal/sheet"
)

// runAppsCmd executes the apps command.
func runAppsCmd(args []string, env *Environment) error {
	flags, positional, err := parseAppsFlags(args)
	if err != nil {
		return err
	}
	initLogging(env, flags.common)

	settings := loadEnvSettings(env.Getenv)
	cfg, err := resolveConfig(flags.common.config, settings)
	if err != nil {
		return err
	}

	if len(positional) != 1 {
		return fmt.Errorf("%w: exactly one store export expected", ErrNoInput)
	}
	input := positional[0]

	table, err := sheet.ReadTable(input)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadInput, input, err)
	}

	mapping, err := resolveMapping(flags.mapping, cfg)
	if err != nil {
		return err
	}

	report, err := apps.Tag(table, mapping)
	if err != nil {
		return err
	}

	output := taggedOutputPath(flags.output, input, resolveOutputDir("", cfg, settings))
	if err := report.Write(output); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d with a return app, %d with more than one)\n",
			output, len(report.WithReturns), len(report.MultipleReturns))
	}
	return nil
}

// resolveMapping picks the competitor mapping: flag override, then config
// override, then the embedded default. A .xlsx/.csv override is read as a
// Competitor/RC reference sheet; anything else as YAML.
func resolveMapping(flagMapping string, cfg *config.Config) (apps.Mapping, error) {
	path := flagMapping
	if path == "" {
		path = cfg.Apps.MappingPath
	}
	if path == "" {
		return apps.DefaultMapping()
	}

	if spreadsheetExtensions[strings.ToLower(filepath.Ext(path))] {
		table, err := sheet.ReadTable(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
		}
		return apps.MappingFromTable(table)
	}
	return apps.LoadMapping(path)
}

// taggedOutputPath resolves where the tagged workbook lands.
func taggedOutputPath(flagOutput, input, outputDir string) string {
	if flagOutput != "" {
		return flagOutput
	}
	out := fileutil.WithExt(input, "") + "_return_apps.xlsx"
	if outputDir == "" {
		return out
	}
	return filepath.Join(outputDir, filepath.Base(out))
}
