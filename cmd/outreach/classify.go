package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-outreach/internal/config"
	"github.com/alnah/go-outreach/internal/hints"
	"github.com/alnah/go-outreach/internal/logging"
	"github.com/alnah/go-outreach/internal/sheet"
	"github.com/alnah/go-outreach/internal/titles"
)

// runClassifyCmd executes the classify command.
func runClassifyCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseClassifyFlags(args)
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
		return fmt.Errorf("%w: exactly one lead workbook expected", ErrNoInput)
	}
	input := positional[0]

	// The checkpoint is written onto a copy of the source workbook, so
	// only workbook input works; a .csv would classify everything and
	// then fail at the final flush.
	if ext := strings.ToLower(filepath.Ext(input)); ext != ".xlsx" && ext != ".xlsm" {
		return fmt.Errorf("%w: classify needs an .xlsx or .xlsm workbook, got %q",
			sheet.ErrUnsupportedFormat, ext)
	}

	column := flags.column
	if column == "" {
		column = cfg.Classifier.TitleColumn
	}

	table, err := sheet.ReadTable(input)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadInput, input, err)
	}
	titleCells := table.Column(column)
	if titleCells == nil {
		return fmt.Errorf("%w: %q%s", titles.ErrTitleColumn, column,
			hints.ForMissingColumn(column, table.Headers()))
	}

	classifier, err := newClassifier(ctx, settings, cfg, flags.model)
	if err != nil {
		return err
	}

	sink := &titles.Checkpoint{
		SourcePath:  input,
		OutputDir:   resolveOutputDir(flags.output, cfg, settings),
		TitleColumn: column,
		Now:         env.Now,
	}

	runner := titles.NewRunner(classifier,
		titles.WithBatchSize(batchSize(flags.batch, cfg)),
		titles.WithPause(cfg.ClassifierPause()),
		titles.WithRunnerLogger(logging.Component("classify")),
	)

	results, err := runner.Run(ctx, titleCells, sink)
	if err != nil {
		if len(results) > 0 {
			fmt.Fprintf(env.Stderr, "partial checkpoint written with %d classified title(s)\n", len(results))
		}
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Classified %d distinct title(s)\n", len(results))
	}
	return nil
}

// newClassifier builds the Gemini classifier from environment key and
// config, honoring the prompt override file when configured.
func newClassifier(ctx context.Context, settings *envSettings, cfg *config.Config, flagModel string) (*titles.GeminiClassifier, error) {
	opts := []titles.GeminiOption{
		titles.WithClassifierLogger(logging.Component("gemini")),
	}

	model := flagModel
	if model == "" {
		model = cfg.Classifier.Model
	}
	opts = append(opts, titles.WithModel(model))

	if cfg.Classifier.PromptPath != "" {
		prompt, err := os.ReadFile(cfg.Classifier.PromptPath) // #nosec G304 -- operator-configured prompt path
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, cfg.Classifier.PromptPath, err)
		}
		opts = append(opts, titles.WithPromptTemplate(string(prompt)))
	}

	classifier, err := titles.NewGeminiClassifier(ctx, settings.GeminiKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForMissingAPIKey(envGeminiKey))
	}
	return classifier, nil
}

// batchSize picks the effective classifier batch size.
func batchSize(flagBatch int, cfg *config.Config) int {
	if flagBatch > 0 {
		return flagBatch
	}
	if cfg.Classifier.BatchSize > 0 {
		return cfg.Classifier.BatchSize
	}
	return titles.DefaultBatchSize
}
