package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// A blank-line run: newline, optional whitespace, newline. The greedy
// whitespace class swallows interior newlines, so any number of
// consecutive blank lines collapses to one match.
var blankLineRun = regexp.MustCompile(`\n\s*\n`)

// LineBreakNormalizer defines the contract for newline-to-HTML rewriting.
type LineBreakNormalizer interface {
	NormalizeLineBreaks(ctx context.Context, body string) string
}

// BreakNormalization converts newlines into HTML line breaks.
type BreakNormalization struct{}

// NewBreakNormalization creates a BreakNormalization.
func NewBreakNormalization() *BreakNormalization {
	return &BreakNormalization{}
}

// NormalizeLineBreaks collapses every blank-line run to <br><br>, then
// converts each remaining newline to <br>. The collapse must run first:
// after the single-newline pass no blank-line pattern could ever match.
func (b *BreakNormalization) NormalizeLineBreaks(ctx context.Context, body string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return body
	}

	body = blankLineRun.ReplaceAllString(body, "<br><br>")
	return strings.ReplaceAll(body, "\n", "<br>")
}

var _ LineBreakNormalizer = (*BreakNormalization)(nil)
