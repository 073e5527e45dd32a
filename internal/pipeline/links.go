package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Markdown-style link spans: [text](url), non-greedy on both parts.
var markdownLink = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)

// LinkRewriter defines the contract for anchor-tag rewriting.
type LinkRewriter interface {
	RewriteLinks(ctx context.Context, body, linkTerms string) string
}

// AnchorRewrite converts markdown-style links and auxiliary "text|url"
// terms into anchor tags. It runs after emphasis rewriting so emphasis
// markers are never mistaken for link syntax.
type AnchorRewrite struct{}

// NewAnchorRewrite creates an AnchorRewrite.
func NewAnchorRewrite() *AnchorRewrite {
	return &AnchorRewrite{}
}

// RewriteLinks rewrites every [text](url) span into <a href="url">text</a>,
// then replaces bare occurrences of each auxiliary link text with its
// anchor form. Auxiliary entries are comma-separated "text|url" pairs; the
// entry is trimmed as a whole, the two parts are not re-trimmed. Entries
// that do not split into exactly two parts are skipped, as are entries
// whose text part is empty.
func (a *AnchorRewrite) RewriteLinks(ctx context.Context, body, linkTerms string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return body
	}

	body = markdownLink.ReplaceAllString(body, `<a href="$2">$1</a>`)

	for _, entry := range splitTerms(linkTerms) {
		parts := strings.Split(entry, "|")
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		text, url := parts[0], parts[1]
		body = strings.ReplaceAll(body, text, `<a href="`+url+`">`+text+`</a>`)
	}
	return body
}

var _ LinkRewriter = (*AnchorRewrite)(nil)
