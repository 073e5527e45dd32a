// Package apps tags merchant rows with the return applications they
// already run.
//
// A store intelligence export lists every installed app and detected
// technology per merchant; the tagger matches those listings against a
// competitor mapping and reports which merchants already pay for a
// returns product. Those are exactly the brands with a budget for one.
package apps

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-outreach/internal/assets"
	"github.com/alnah/go-outreach/internal/sheet"
	"github.com/alnah/go-outreach/internal/yamlutil"
)

// Columns the export must carry.
const (
	colDomain       = "domain"
	colInstalled    = "installed_apps_names"
	colTechnologies = "technologies"
	colPlatformRank = "platform_rank"
	colYearlySales  = "estimated_yearly_sales"
)

// Columns appended to every report row.
const (
	colMatchCount = "return_app_count"
	colMatchNames = "return_app_names"
)

// Sentinel errors for tagging operations.
var (
	ErrMissingColumn = errors.New("required column not found")
	ErrMappingRead   = errors.New("failed to read mapping file")
)

// Mapping maps normalized (trimmed, lowercased) competitor listings to
// their short canonical names.
type Mapping map[string]string

// DefaultMapping returns the embedded competitor mapping, normalized for
// lookup.
func DefaultMapping() (Mapping, error) {
	raw, err := assets.ReturnAppMapping()
	if err != nil {
		return nil, err
	}
	return normalize(raw), nil
}

// LoadMapping reads a YAML mapping override of listing-to-name pairs.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied mapping path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingRead, err)
	}
	raw := make(map[string]string)
	if err := yamlutil.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingRead, err)
	}
	return normalize(raw), nil
}

// MappingFromTable builds a mapping from a reference spreadsheet with
// Competitor and RC columns, the shape the team's hand-maintained
// reference files use.
func MappingFromTable(t *sheet.Table) (Mapping, error) {
	for _, col := range []string{"Competitor", "RC"} {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	raw := make(map[string]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		competitor := t.Cell(i, "Competitor")
		if strings.TrimSpace(competitor) == "" {
			continue
		}
		raw[competitor] = strings.TrimSpace(t.Cell(i, "RC"))
	}
	return normalize(raw), nil
}

func normalize(raw map[string]string) Mapping {
	m := make(Mapping, len(raw))
	for listing, name := range raw {
		m[strings.ToLower(strings.TrimSpace(listing))] = name
	}
	return m
}

// Report is the tagging outcome: every surviving row with its match
// columns appended, split into the two sheets the team reviews.
type Report struct {
	Headers         []string
	WithReturns     [][]string // at least one return app
	MultipleReturns [][]string // more than one return app
}

// Tag processes an export against the mapping: rows sorted by platform
// rank then estimated yearly sales (both descending, blanks last),
// deduplicated by domain keeping the first, app listings matched against
// the mapping.
func Tag(t *sheet.Table, mapping Mapping) (*Report, error) {
	for _, col := range []string{colDomain, colInstalled, colTechnologies, colPlatformRank, colYearlySales} {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := order[a], order[b]
		if c := compareDesc(t.Cell(ra, colPlatformRank), t.Cell(rb, colPlatformRank)); c != 0 {
			return c < 0
		}
		return compareDesc(t.Cell(ra, colYearlySales), t.Cell(rb, colYearlySales)) < 0
	})

	report := &Report{
		Headers: append(append([]string{}, t.Headers()...), colMatchCount, colMatchNames),
	}

	seen := make(map[string]struct{}, t.Len())
	for _, i := range order {
		domain := strings.TrimSpace(t.Cell(i, colDomain))
		if _, ok := seen[domain]; ok {
			continue
		}
		seen[domain] = struct{}{}

		listings := t.Cell(i, colInstalled) + ":" + t.Cell(i, colTechnologies)
		matches := matchListings(listings, mapping)
		if len(matches) == 0 {
			continue
		}

		row := append(append([]string{}, t.Row(i)...),
			strconv.Itoa(len(matches)), strings.Join(matches, ", "))
		report.WithReturns = append(report.WithReturns, row)
		if len(matches) > 1 {
			report.MultipleReturns = append(report.MultipleReturns, row)
		}
	}

	return report, nil
}

// matchListings splits a colon-joined listing string and collects the
// canonical name of every mapped entry, in listing order. Duplicate
// listings count twice, as in the source reports.
func matchListings(listings string, mapping Mapping) []string {
	var matches []string
	for _, app := range strings.Split(listings, ":") {
		key := strings.ToLower(strings.TrimSpace(app))
		if key == "" {
			continue
		}
		if name, ok := mapping[key]; ok && name != "" {
			matches = append(matches, name)
		}
	}
	return matches
}

// compareDesc orders two numeric cells descending with blanks and
// unparseable values last. Returns <0 when a sorts before b.
func compareDesc(a, b string) int {
	fa, oka := parseNumber(a)
	fb, okb := parseNumber(b)
	switch {
	case oka && okb:
		if fa > fb {
			return -1
		}
		if fa < fb {
			return 1
		}
		return 0
	case oka:
		return -1
	case okb:
		return 1
	default:
		return 0
	}
}

func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
