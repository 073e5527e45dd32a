package pipeline

import (
	"context"
	"testing"
)

func TestRewriteLinks_Markdown(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "single link",
			body:     "[Shop](http://x.com)",
			expected: `<a href="http://x.com">Shop</a>`,
		},
		{
			name:     "link inside sentence",
			body:     "check [our store](https://store.example) out",
			expected: `check <a href="https://store.example">our store</a> out`,
		},
		{
			name:     "multiple links",
			body:     "[a](u1) and [b](u2)",
			expected: `<a href="u1">a</a> and <a href="u2">b</a>`,
		},
		{
			name:     "empty text and url",
			body:     "[]()",
			expected: `<a href=""></a>`,
		},
		{
			name:     "no links",
			body:     "plain text",
			expected: "plain text",
		},
		{
			name:     "bracket without parens untouched",
			body:     "[not a link]",
			expected: "[not a link]",
		},
	}

	r := NewAnchorRewrite()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RewriteLinks(context.Background(), tt.body, "")
			if got != tt.expected {
				t.Errorf("RewriteLinks(%q) = %q, want %q", tt.body, got, tt.expected)
			}
		})
	}
}

func TestRewriteLinks_AuxiliaryTerms(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		linkTerms string
		expected  string
	}{
		{
			name:      "bare text becomes anchor",
			body:      "visit our Shop today",
			linkTerms: "Shop|http://x.com",
			expected:  `visit our <a href="http://x.com">Shop</a> today`,
		},
		{
			name:      "multiple entries",
			body:      "Shop or Browse",
			linkTerms: "Shop|u1,Browse|u2",
			expected:  `<a href="u1">Shop</a> or <a href="u2">Browse</a>`,
		},
		{
			name:      "entry trimmed as a whole but parts kept verbatim",
			body:      "Shop now",
			linkTerms: " Shop |http://x.com ",
			expected:  `<a href="http://x.com">Shop </a>now`,
		},
		{
			name:      "entry without pipe skipped",
			body:      "visit Shop",
			linkTerms: "Shop",
			expected:  "visit Shop",
		},
		{
			name:      "entry with two pipes skipped",
			body:      "visit Shop",
			linkTerms: "Shop|u1|u2",
			expected:  "visit Shop",
		},
		{
			name:      "entry with empty text skipped",
			body:      "visit Shop",
			linkTerms: "|http://x.com",
			expected:  "visit Shop",
		},
		{
			name:      "blank list is a no-op",
			body:      "visit Shop",
			linkTerms: "   ",
			expected:  "visit Shop",
		},
		{
			name:      "term occurring twice linked twice",
			body:      "Shop here, Shop there",
			linkTerms: "Shop|u",
			expected:  `<a href="u">Shop</a> here, <a href="u">Shop</a> there`,
		},
	}

	r := NewAnchorRewrite()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RewriteLinks(context.Background(), tt.body, tt.linkTerms)
			if got != tt.expected {
				t.Errorf("RewriteLinks(%q, terms=%q) = %q, want %q", tt.body, tt.linkTerms, got, tt.expected)
			}
		})
	}
}

func TestRewriteLinks_MarkdownBeforeAuxiliary(t *testing.T) {
	// The markdown rewrite runs first, so an auxiliary term matching the
	// emitted anchor text is replaced inside it as well. Same literal
	// replacement fragility as the emphasis rewriter.
	r := NewAnchorRewrite()

	got := r.RewriteLinks(context.Background(), "[Shop](u1) elsewhere Shop", "Shop|u2")
	want := `<a href="u1"><a href="u2">Shop</a></a> elsewhere <a href="u2">Shop</a>`
	if got != want {
		t.Errorf("RewriteLinks() = %q, want %q", got, want)
	}
}

func TestRewriteLinks_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewAnchorRewrite()
	body := "[Shop](http://x.com)"
	if got := r.RewriteLinks(ctx, body, ""); got != body {
		t.Errorf("RewriteLinks() with canceled context = %q, want input unchanged %q", got, body)
	}
}
