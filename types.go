package outreach

// VariantFullWeight is the distribution percentage assigned to every
// rendered variant. The upstream platform takes each variant at full
// weight rather than a split summing to 100 across a step; preserve it
// literally unless the platform contract changes.
const VariantFullWeight = 100

// SequenceRow is one spreadsheet record of email copy.
//
// StepNumber and DelayDays carry the raw cell text; Compile coerces them
// and fails the whole batch when a step number does not parse. The term
// lists are comma-separated operator input passed through to the rewrite
// stages untouched.
type SequenceRow struct {
	StepNumber   string // required, positive integer
	DelayDays    string // optional, non-negative integer, blank = 0
	VariantLabel string // optional
	Subject      string
	Body         string
	BoldTerms    string // optional, comma-separated
	ItalicTerms  string // optional, comma-separated
	LinkTerms    string // optional, comma-separated "text|url" entries
}

// RenderedVariant is one finished subject/body pair competing within a
// sequence step.
type RenderedVariant struct {
	Subject                string `json:"subject"`
	Body                   string `json:"email_body"`
	VariantLabel           string `json:"variant_label"`
	DistributionPercentage int    `json:"variant_distribution_percentage"`
}

// DelayDetails carries the wait, in days, before a step fires.
type DelayDetails struct {
	InDays int `json:"delay_in_days"`
}

// SequenceStep groups the variants for one send position. Steps keep the
// order in which their numbers were first encountered in the source rows,
// and a step's delay comes from the first row seen for it.
type SequenceStep struct {
	Number   int               `json:"seq_number"`
	Delay    DelayDetails      `json:"seq_delay_details"`
	Variants []RenderedVariant `json:"seq_variants"`
}

// TokenMapping binds one backtick-delimited token to its merge-field
// replacement.
type TokenMapping struct {
	Token       string `yaml:"token"`
	Replacement string `yaml:"replacement"`
}

// Option configures a Compiler.
type Option func(*Compiler)

// compilerConfig holds internal configuration for Compiler.
type compilerConfig struct {
	tokens         []TokenMapping
	strictEmphasis bool
}

// WithTokenTable replaces the default substitution vocabulary. Mappings
// apply in slice order.
// Panics if a mapping has an empty token (programmer error, similar to
// time.NewTicker).
func WithTokenTable(table []TokenMapping) Option {
	for _, m := range table {
		if m.Token == "" {
			panic("outreach: WithTokenTable mapping has an empty token")
		}
	}
	return func(c *Compiler) {
		c.cfg.tokens = table
	}
}

// WithStrictEmphasis switches auxiliary emphasis terms to word-boundary,
// idempotent tagging. The default keeps the literal replacement behavior
// existing templates rely on, nested tags and all.
func WithStrictEmphasis() Option {
	return func(c *Compiler) {
		c.cfg.strictEmphasis = true
	}
}
