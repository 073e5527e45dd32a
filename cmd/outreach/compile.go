package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	outreach "github.com/alnah/go-outreach"
	"github.com/alnah/go-outreach/internal/fileutil"
	"github.com/alnah/go-outreach/internal/sheet"
)

// mergedPayloadName is the output file name when --merge combines every
// input into one payload.
const mergedPayloadName = "sequences.json"

// CompileResult holds the outcome of compiling a single spreadsheet.
type CompileResult struct {
	InputPath  string
	OutputPath string
	Steps      int
	Err        error
	Duration   time.Duration
}

// runCompileCmd executes the compile command.
func runCompileCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCompileFlags(args)
	if err != nil {
		return err
	}
	initLogging(env, flags.common)

	settings := loadEnvSettings(env.Getenv)
	cfg, err := resolveConfig(flags.common.config, settings)
	if err != nil {
		return err
	}

	inputs, err := resolveInputs(positional, cfg, settings)
	if err != nil {
		return err
	}

	compiler := newCompiler(cfg)
	outputDir := resolveOutputDir(flags.output, cfg, settings)

	if flags.merge {
		result := compileMerged(ctx, compiler, inputs, mergedOutputPath(flags.output, outputDir))
		if printCompileResults([]CompileResult{result}, flags.common, env) > 0 {
			return result.Err
		}
		return nil
	}

	workers := resolveWorkers(flags.workers, settings.Workers, len(inputs))
	results := compileBatch(ctx, compiler, inputs, outputDir, workers)
	if failed := printCompileResults(results, flags.common, env); failed > 0 {
		return fmt.Errorf("%d compilation(s) failed", failed)
	}
	return nil
}

// compileBatch compiles inputs concurrently over a fixed worker pool.
func compileBatch(ctx context.Context, compiler *outreach.Compiler, inputs []string, outputDir string, workers int) []CompileResult {
	results := make([]CompileResult, len(inputs))
	jobs := make(chan int, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = CompileResult{InputPath: inputs[idx], Err: err}
					continue
				}
				results[idx] = compileOne(ctx, compiler, inputs[idx], payloadPath(inputs[idx], outputDir))
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// compileOne reads one template spreadsheet and writes its payload.
func compileOne(ctx context.Context, compiler *outreach.Compiler, input, output string) CompileResult {
	start := time.Now()
	result := CompileResult{InputPath: input, OutputPath: output}

	table, err := sheet.ReadTable(input)
	if err != nil {
		result.Err = fmt.Errorf("%w: %s: %v", ErrReadInput, input, err)
		result.Duration = time.Since(start)
		return result
	}

	steps, err := compiler.Compile(ctx, sheet.SequenceRows(table))
	if err != nil {
		result.Err = fmt.Errorf("compiling %s: %w", input, err)
		result.Duration = time.Since(start)
		return result
	}
	result.Steps = len(steps)

	result.Err = writePayload(output, steps)
	result.Duration = time.Since(start)
	return result
}

// compileMerged combines every input into one table before compiling, so
// steps split across template files land in a single payload.
func compileMerged(ctx context.Context, compiler *outreach.Compiler, inputs []string, output string) CompileResult {
	start := time.Now()
	result := CompileResult{InputPath: strings.Join(inputs, ", "), OutputPath: output}

	tables := make([]*sheet.Table, 0, len(inputs))
	for _, input := range inputs {
		table, err := sheet.ReadTable(input)
		if err != nil {
			result.Err = fmt.Errorf("%w: %s: %v", ErrReadInput, input, err)
			result.Duration = time.Since(start)
			return result
		}
		tables = append(tables, table)
	}

	steps, err := compiler.Compile(ctx, sheet.SequenceRows(sheet.Merge(tables...)))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Steps = len(steps)

	result.Err = writePayload(output, steps)
	result.Duration = time.Since(start)
	return result
}

// writePayload marshals the compiled steps and writes them, creating
// parent directories as needed. HTML escaping is off: the bodies carry
// <strong>/<br> tags and the payload should stay readable on disk.
func writePayload(path string, steps []outreach.SequenceStep) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(steps); err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	if err := fileutil.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

// readPayload loads a compiled payload back. Launch accepts either
// template spreadsheets or an already-compiled payload file.
func readPayload(path string) ([]outreach.SequenceStep, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied payload path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}
	var steps []outreach.SequenceStep
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing payload %s: %w", path, err)
	}
	return steps, nil
}

// payloadPath maps an input spreadsheet to its payload file.
func payloadPath(input, outputDir string) string {
	out := fileutil.WithExt(input, ".json")
	if outputDir == "" {
		return out
	}
	return filepath.Join(outputDir, filepath.Base(out))
}

// mergedOutputPath resolves the --merge output: an explicit .json flag
// value is taken as the file path, otherwise the payload lands in the
// output directory under the default name.
func mergedOutputPath(flagOutput, outputDir string) string {
	if strings.EqualFold(filepath.Ext(flagOutput), ".json") {
		return flagOutput
	}
	if outputDir == "" {
		return mergedPayloadName
	}
	return filepath.Join(outputDir, mergedPayloadName)
}

// resolveWorkers determines the compile pool size.
// Priority: explicit flag > OUTREACH_WORKERS > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers, envWorkers, inputs int) int {
	n := flagWorkers
	if n <= 0 {
		n = envWorkers
	}
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > inputs {
		n = inputs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// printCompileResults outputs per-file outcomes and returns the failure count.
func printCompileResults(results []CompileResult, common commonFlags, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if common.quiet {
			continue
		}
		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d steps, %v)\n",
				r.InputPath, r.OutputPath, r.Steps, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}
