package leads

import (
	"testing"

	"github.com/alnah/go-outreach/internal/sheet"
)

func exportTable() *sheet.Table {
	headers := []string{"Name", "Email", "Domain", "merchant_name", "SP Selection", "Title", "country", "RC", "country_name", "first_template"}
	rows := [][]string{
		{"Ada", "ada@shop.com", "shop.com", "Shop", "SP 1", "Founder", "US", "AfterShip", "United States", "t1"},
		{"Ben", "ben@store.io", "store.io", "Store", "SP 2", "Ecommerce Manager", "CA", "", "Canada", "t1"},
		{" Cid ", "cid@brand.co", "brand.co", "Brand", " SP 1 ", "CEO", "GB", "ReturnGO", "United Kingdom", "t2"},
	}
	return sheet.NewTable(headers, rows)
}

func TestSelect(t *testing.T) {
	leads := Select(exportTable(), "SP 1")

	if len(leads) != 2 {
		t.Fatalf("Select() returned %d leads, want 2", len(leads))
	}
	first := leads[0]
	if first.FirstName != "Ada" || first.Email != "ada@shop.com" || first.Website != "shop.com" {
		t.Errorf("lead identity = %q/%q/%q", first.FirstName, first.Email, first.Website)
	}
	if first.CustomFields.SPSelection != "SP 1" || first.CustomFields.App != "AfterShip" {
		t.Errorf("custom fields = %+v", first.CustomFields)
	}
	// Cells trim: " Cid " and " SP 1 " still match and come out clean.
	if leads[1].FirstName != "Cid" {
		t.Errorf("second lead FirstName = %q, want Cid", leads[1].FirstName)
	}
}

func TestSelect_NoMatches(t *testing.T) {
	if leads := Select(exportTable(), "SP 9"); len(leads) != 0 {
		t.Errorf("Select() for unknown SP returned %d leads, want 0", len(leads))
	}
}

func TestSelect_MissingOptionalColumns(t *testing.T) {
	table := sheet.NewTable(
		[]string{"Name", "Email", "SP Selection"},
		[][]string{{"Ada", "ada@shop.com", "SP 1"}},
	)
	leads := Select(table, "SP 1")
	if len(leads) != 1 {
		t.Fatalf("Select() returned %d leads, want 1", len(leads))
	}
	if leads[0].Website != "" || leads[0].CustomFields.MerchantName != "" {
		t.Errorf("missing columns should read as empty, got %+v", leads[0])
	}
}

func TestSPSelections(t *testing.T) {
	got := SPSelections(exportTable())
	want := []string{"SP 1", "SP 2"}
	if len(got) != len(want) {
		t.Fatalf("SPSelections() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SPSelections()[%d] = %q, want %q (first-encounter order)", i, got[i], want[i])
		}
	}
}

func TestCampaignName(t *testing.T) {
	got := CampaignName("PIC", "US - Footwear - Set 1", "SP 1")
	want := "PIC - US - Footwear - Set 1 (SP 1)"
	if got != want {
		t.Errorf("CampaignName() = %q, want %q", got, want)
	}
}
