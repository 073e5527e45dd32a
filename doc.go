// Package outreach compiles spreadsheets of email copy into cold-outreach
// sequence payloads for a Smartlead-compatible campaign platform.
//
// # Quick Start
//
// Create a compiler and feed it sequence rows:
//
//	comp := outreach.NewCompiler()
//
//	steps, err := comp.Compile(ctx, rows)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	payload, _ := json.Marshal(steps)
//
// Each SequenceStep marshals to the exact JSON shape the platform's
// sequence endpoint expects (seq_number, seq_delay_details, seq_variants).
//
// # Rewrite Pipeline
//
// Every row passes through four stages before aggregation:
//
//  1. Placeholder substitution (`name` and friends to {{merge_fields}})
//  2. Emphasis rewriting (**bold**/*italic* plus auxiliary term lists)
//  3. Link rewriting ([text](url) plus auxiliary "text|url" lists)
//  4. Line-break normalization (blank lines to <br><br>, newlines to <br>)
//
// Rows are then grouped by step number in first-encounter order; each
// step's delay comes from the first row carrying that step number.
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	comp := outreach.NewCompiler(
//	    outreach.WithTokenTable(customTable),
//	    outreach.WithStrictEmphasis(),
//	)
//
// The default token table (DefaultTokenTable) matches the vocabulary the
// copy team writes in; WithStrictEmphasis trades the historical literal
// auxiliary-term replacement for word-boundary, idempotent tagging.
//
// # Beyond the Compiler
//
// The outreach command (cmd/outreach) wraps this package with spreadsheet
// ingestion, campaign creation against the platform API, lead formatting,
// job-title classification, and return-app tagging.
package outreach
