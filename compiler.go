package outreach

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alnah/go-outreach/internal/pipeline"
)

// Compiler turns spreadsheet rows of email copy into the campaign
// platform's sequence payload.
type Compiler struct {
	cfg          compilerConfig
	placeholders pipeline.PlaceholderSubstituter
	emphasis     pipeline.EmphasisRewriter
	links        pipeline.LinkRewriter
	linebreaks   pipeline.LineBreakNormalizer
}

// NewCompiler creates a Compiler with the default token table.
// Use options to customize behavior (e.g., WithTokenTable).
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		cfg: compilerConfig{tokens: DefaultTokenTable()},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.placeholders = pipeline.NewTokenSubstitution(toPipelineMappings(c.cfg.tokens))
	if c.cfg.strictEmphasis {
		c.emphasis = pipeline.NewStrictMarkupEmphasis()
	} else {
		c.emphasis = pipeline.NewMarkupEmphasis()
	}
	c.links = pipeline.NewAnchorRewrite()
	c.linebreaks = pipeline.NewBreakNormalization()

	return c
}

// Compile renders every row through the rewrite stages and groups the
// results into sequence steps. Steps appear in first-encounter order of
// their step numbers; a step's delay comes from the first row seen for
// it and later rows never override it. Any row whose step number or delay
// does not parse fails the whole compile: the platform accepts sequence
// payloads only whole, so there is no partial result to salvage.
//
// An empty row set compiles to an empty step list without error; callers
// decide whether that is worth uploading.
func (c *Compiler) Compile(ctx context.Context, rows []SequenceRow) ([]SequenceStep, error) {
	steps := make([]SequenceStep, 0, len(rows))
	position := make(map[int]int, len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		number, err := parseStepNumber(row.StepNumber)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		delay, err := parseStepDelay(row.DelayDays)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		pos, ok := position[number]
		if !ok {
			steps = append(steps, SequenceStep{
				Number: number,
				Delay:  DelayDetails{InDays: delay},
			})
			pos = len(steps) - 1
			position[number] = pos
		}
		steps[pos].Variants = append(steps[pos].Variants, c.Render(ctx, row))
	}

	return steps, nil
}

// Render runs one row through stages 1-4: placeholder substitution on
// subject and body, then emphasis, link, and line-break rewriting on the
// body. Render never fails; malformed markup degrades per stage rules.
func (c *Compiler) Render(ctx context.Context, row SequenceRow) RenderedVariant {
	subject := c.placeholders.SubstitutePlaceholders(ctx, row.Subject)

	body := c.placeholders.SubstitutePlaceholders(ctx, row.Body)
	body = c.emphasis.RewriteEmphasis(ctx, body, row.BoldTerms, row.ItalicTerms)
	body = c.links.RewriteLinks(ctx, body, row.LinkTerms)
	body = c.linebreaks.NormalizeLineBreaks(ctx, body)

	return RenderedVariant{
		Subject:                subject,
		Body:                   body,
		VariantLabel:           row.VariantLabel,
		DistributionPercentage: VariantFullWeight,
	}
}

// parseStepNumber coerces a raw step-number cell to a positive integer.
func parseStepNumber(raw string) (int, error) {
	n, ok := parseIntCell(raw)
	if !ok || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedStepNumber, raw)
	}
	return n, nil
}

// parseStepDelay coerces a raw delay cell to a non-negative integer.
// A blank cell means no delay.
func parseStepDelay(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, ok := parseIntCell(raw)
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedStepDelay, raw)
	}
	return n, nil
}

// parseIntCell parses a spreadsheet cell as an integer. Numeric cells
// surface as "3" or "3.0" depending on the workbook's formatting, so
// integral floats are accepted; anything fractional is not.
func parseIntCell(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.Trunc(f) != f || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// toPipelineMappings converts the public TokenMapping slice to the
// pipeline's internal form.
func toPipelineMappings(table []TokenMapping) []pipeline.TokenMapping {
	mappings := make([]pipeline.TokenMapping, len(table))
	for i, m := range table {
		mappings[i] = pipeline.TokenMapping(m)
	}
	return mappings
}
