// Package leads shapes spreadsheet lead exports into the campaign
// platform's upload format.
//
// A lead export carries one row per contact with the columns the
// enrichment pipeline produces (Name, Email, Domain, merchant_name,
// SP Selection, Title, country, RC, country_name, first_template).
// Launch splits the export by sales-pitch selection: each SP gets its
// own campaign, named by the funnel convention.
package leads

import (
	"fmt"
	"strings"

	"github.com/alnah/go-outreach/internal/sheet"
	"github.com/alnah/go-outreach/internal/smartlead"
)

// Column names as the lead exports carry them. Lookup through
// sheet.Table is trimmed and case-insensitive.
const (
	colName          = "Name"
	colEmail         = "Email"
	colDomain        = "Domain"
	colMerchantName  = "merchant_name"
	colSPSelection   = "SP Selection"
	colTitle         = "Title"
	colCountry       = "country"
	colApp           = "RC"
	colCountryName   = "country_name"
	colFirstTemplate = "first_template"
)

// Select returns the platform leads for one sales-pitch selection, in
// row order. Rows whose SP Selection cell does not match exactly (after
// trimming) are skipped; an SP with no rows yields an empty slice, which
// launch reports and skips rather than treating as an error.
func Select(t *sheet.Table, sp string) []smartlead.Lead {
	var leads []smartlead.Lead
	for i := 0; i < t.Len(); i++ {
		if strings.TrimSpace(t.Cell(i, colSPSelection)) != sp {
			continue
		}
		leads = append(leads, fromRow(t, i))
	}
	return leads
}

// SPSelections returns the distinct sales-pitch values present in the
// export, in first-encounter order. Useful for operator feedback when a
// requested SP matches nothing.
func SPSelections(t *sheet.Table) []string {
	var sps []string
	seen := make(map[string]struct{})
	for i := 0; i < t.Len(); i++ {
		sp := strings.TrimSpace(t.Cell(i, colSPSelection))
		if sp == "" {
			continue
		}
		if _, ok := seen[sp]; ok {
			continue
		}
		seen[sp] = struct{}{}
		sps = append(sps, sp)
	}
	return sps
}

// CampaignName builds the funnel-convention campaign name:
// "<email type> - <base name> (<SP>)".
func CampaignName(emailType, baseName, sp string) string {
	return fmt.Sprintf("%s - %s (%s)", emailType, baseName, sp)
}

// fromRow maps one export row to the platform lead shape. Cells are
// trimmed; a missing column reads as the empty string.
func fromRow(t *sheet.Table, i int) smartlead.Lead {
	cell := func(column string) string {
		return strings.TrimSpace(t.Cell(i, column))
	}
	return smartlead.Lead{
		FirstName: cell(colName),
		Email:     cell(colEmail),
		Website:   cell(colDomain),
		CustomFields: smartlead.LeadCustomFields{
			MerchantName:  cell(colMerchantName),
			SPSelection:   cell(colSPSelection),
			Title:         cell(colTitle),
			Country:       cell(colCountry),
			App:           cell(colApp),
			CountryName:   cell(colCountryName),
			FirstTemplate: cell(colFirstTemplate),
		},
	}
}
