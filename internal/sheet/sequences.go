package sheet

import (
	outreach "github.com/alnah/go-outreach"
)

// SequenceRows maps a table to compiler input rows. Recognized columns:
// seq_number, seq_delay_details, variant_label, subject, email_body,
// bold_texts, italic_texts, link_texts. Missing optional columns yield
// empty fields; the compiler validates what it needs.
func SequenceRows(t *Table) []outreach.SequenceRow {
	rows := make([]outreach.SequenceRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rows = append(rows, outreach.SequenceRow{
			StepNumber:   t.Cell(i, "seq_number"),
			DelayDays:    t.Cell(i, "seq_delay_details"),
			VariantLabel: t.Cell(i, "variant_label"),
			Subject:      t.Cell(i, "subject"),
			Body:         t.Cell(i, "email_body"),
			BoldTerms:    t.Cell(i, "bold_texts"),
			ItalicTerms:  t.Cell(i, "italic_texts"),
			LinkTerms:    t.Cell(i, "link_texts"),
		})
	}
	return rows
}
