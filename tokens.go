package outreach

// DefaultTokenTable returns the built-in substitution vocabulary mapping
// the copywriters' backtick tokens to the platform's merge fields.
//
// Entries apply in order and matching is case-sensitive: `Brand` and
// `brand` both map to the merchant name so copy can start a sentence with
// either. The `brand’s` token exists because spreadsheet editors curl the
// apostrophe; its replacement restores a straight one after the merge
// field. The returned slice is a fresh copy the caller may modify.
func DefaultTokenTable() []TokenMapping {
	return []TokenMapping{
		{Token: "store/name", Replacement: "{{first_name}}"},
		{Token: "name", Replacement: "{{first_name}}"},
		{Token: "SP", Replacement: "{{SP_Selection}}"},
		{Token: "Brand", Replacement: "{{merchant_name}}"},
		{Token: "brand", Replacement: "{{merchant_name}}"},
		{Token: "brand’s", Replacement: "{{merchant_name}}'s"},
		{Token: "country", Replacement: "{{country}}"},
		{Token: "first name", Replacement: "{{first_name}}"},
		{Token: "App", Replacement: "{{app}}"},
		{Token: "country_name", Replacement: "{{country_name}}"},
	}
}
