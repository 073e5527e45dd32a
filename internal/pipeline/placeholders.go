package pipeline

import (
	"context"
	"strings"
)

// TokenMapping binds one backtick-delimited token to its merge-field
// replacement.
type TokenMapping struct {
	Token       string
	Replacement string
}

// PlaceholderSubstituter defines the contract for merge-field substitution.
type PlaceholderSubstituter interface {
	SubstitutePlaceholders(ctx context.Context, content string) string
}

// TokenSubstitution rewrites backtick-delimited tokens into merge fields.
//
// Matching is case-sensitive and exact: the backticks are part of the match.
// Mappings apply sequentially in table order. Tokens absent from the table
// keep their backticks.
type TokenSubstitution struct {
	mappings []TokenMapping
}

// NewTokenSubstitution creates a TokenSubstitution over the given table.
// Mappings with an empty token are ignored.
func NewTokenSubstitution(mappings []TokenMapping) *TokenSubstitution {
	return &TokenSubstitution{mappings: mappings}
}

// SubstitutePlaceholders replaces every recognized `token` occurrence in
// content. Subject and body lines go through the same rewrite.
func (t *TokenSubstitution) SubstitutePlaceholders(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	for _, m := range t.mappings {
		if m.Token == "" {
			continue
		}
		content = strings.ReplaceAll(content, "`"+m.Token+"`", m.Replacement)
	}
	return content
}

var _ PlaceholderSubstituter = (*TokenSubstitution)(nil)
