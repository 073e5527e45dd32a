package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Delimited emphasis spans, non-greedy, within a single line.
var (
	boldSpan   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicSpan = regexp.MustCompile(`\*(.*?)\*`)
)

// EmphasisRewriter defines the contract for emphasis markup rewriting.
type EmphasisRewriter interface {
	RewriteEmphasis(ctx context.Context, body, boldTerms, italicTerms string) string
}

// MarkupEmphasis converts **bold** and *italic* spans into HTML emphasis
// tags. The bold pass runs before the italic pass so single-asterisk
// matching never consumes half of an unprocessed bold marker.
//
// Auxiliary term lists extend each pass: listed terms are tagged in their
// delimited form together with the detected spans, and then every bare
// occurrence of each listed term is tagged as well. The bare pass is
// deliberately literal: it re-tags text inside spans already tagged and
// matches inside URLs or attribute values when the term happens to occur
// there. Strict mode replaces the bare pass with word-boundary, idempotent
// tagging that skips occurrences already wrapped or inside another tag.
type MarkupEmphasis struct {
	strict bool
}

// NewMarkupEmphasis creates a MarkupEmphasis with the literal bare-term
// behavior.
func NewMarkupEmphasis() *MarkupEmphasis {
	return &MarkupEmphasis{}
}

// NewStrictMarkupEmphasis creates a MarkupEmphasis with word-boundary,
// idempotent bare-term tagging.
func NewStrictMarkupEmphasis() *MarkupEmphasis {
	return &MarkupEmphasis{strict: true}
}

// RewriteEmphasis applies the bold pass then the italic pass to body.
// The subject line of an email never goes through this rewrite.
func (m *MarkupEmphasis) RewriteEmphasis(ctx context.Context, body, boldTerms, italicTerms string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return body
	}

	body = m.rewritePass(body, boldSpan, "**", "strong", boldTerms)
	body = m.rewritePass(body, italicSpan, "*", "em", italicTerms)
	return body
}

// rewritePass applies one emphasis pass: tag the delimited form for every
// term detected in the body or named in the auxiliary list, tag bare
// auxiliary occurrences, then strip leftover delimiter characters of this
// pass's kind.
func (m *MarkupEmphasis) rewritePass(body string, span *regexp.Regexp, marker, tag, auxiliary string) string {
	aux := splitTerms(auxiliary)
	open, closing := "<"+tag+">", "</"+tag+">"

	for _, term := range unionTerms(detectTerms(span, body), aux) {
		body = strings.ReplaceAll(body, marker+term+marker, open+term+closing)
	}

	for _, term := range aux {
		if m.strict {
			body = tagBareOccurrences(body, term, open, closing)
		} else {
			body = strings.ReplaceAll(body, term, open+term+closing)
		}
	}

	return strings.ReplaceAll(body, marker, "")
}

// detectTerms collects the inner text of every delimited span in body,
// in match order, without duplicates.
func detectTerms(span *regexp.Regexp, body string) []string {
	matches := span.FindAllStringSubmatch(body, -1)
	if matches == nil {
		return nil
	}
	terms := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		term := match[1]
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// unionTerms merges detected and auxiliary terms, preserving first-seen
// order.
func unionTerms(detected, aux []string) []string {
	terms := make([]string, 0, len(detected)+len(aux))
	seen := make(map[string]struct{}, len(detected)+len(aux))
	for _, group := range [][]string{detected, aux} {
		for _, term := range group {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}
	return terms
}

// splitTerms splits a comma-separated auxiliary list into trimmed terms.
// A blank list yields nil; terms that trim to nothing are dropped, since a
// bare replacement of the empty string would insert tags between every
// character. Duplicate terms are kept: the source data decides how often a
// term is re-tagged.
func splitTerms(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		term := strings.TrimSpace(part)
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// tagBareOccurrences wraps whole-word occurrences of term in the given tag,
// skipping occurrences already wrapped in it and occurrences inside another
// tag's angle-bracket span. Running it twice yields the same body.
func tagBareOccurrences(body, term, open, closing string) string {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	locs := pattern.FindAllStringIndex(body, -1)
	if locs == nil {
		return body
	}

	var b strings.Builder
	b.Grow(len(body) + len(locs)*(len(open)+len(closing)))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if insideTag(body, start) || alreadyTagged(body, start, end, open, closing) {
			continue
		}
		b.WriteString(body[last:start])
		b.WriteString(open)
		b.WriteString(body[start:end])
		b.WriteString(closing)
		last = end
	}
	b.WriteString(body[last:])
	return b.String()
}

// insideTag reports whether position i falls between an unclosed < and its >.
func insideTag(body string, i int) bool {
	lastOpen := strings.LastIndex(body[:i], "<")
	if lastOpen == -1 {
		return false
	}
	return strings.LastIndex(body[:i], ">") < lastOpen
}

// alreadyTagged reports whether body[start:end] is directly wrapped in the
// open/closing pair.
func alreadyTagged(body string, start, end int, open, closing string) bool {
	if start < len(open) || end+len(closing) > len(body) {
		return false
	}
	return body[start-len(open):start] == open && body[end:end+len(closing)] == closing
}

var _ EmphasisRewriter = (*MarkupEmphasis)(nil)
