// Package pipeline implements the email-copy rewrite stages.
//
// Each stage turns one aspect of the spreadsheet markup into the campaign
// platform's syntax:
//   - Placeholder substitution (backtick tokens to merge fields)
//   - Emphasis rewriting (**bold** and *italic* spans to HTML tags)
//   - Link rewriting (markdown links and "text|url" terms to anchors)
//   - Line-break normalization (blank lines and newlines to <br> tags)
//
// Stage order is fixed: placeholders, emphasis, links, line breaks. The
// emphasis rewriter strips leftover asterisks, so it must run before link
// rewriting sees the body; line-break normalization runs last because every
// earlier stage matches within single lines. Sequence aggregation is
// handled by the root outreach package on top of these stages.
package pipeline
