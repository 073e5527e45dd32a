// Package titles classifies job titles into outreach relevance tiers.
//
// A Classifier answers one batch of titles at a time; the Runner walks a
// whole column of unique titles through it in fixed-size batches with a
// pause in between, and flushes progress through a Sink so an
// interrupted run still leaves a usable partial checkpoint on disk.
// Cancellation is cooperative: the runner checks its context between
// batches, never through signal handlers.
package titles

import "errors"

// Sentinel errors for classification operations.
var (
	ErrMissingAPIKey  = errors.New("classifier api key is required")
	ErrClassify       = errors.New("title classification failed")
	ErrResponseParse  = errors.New("could not parse classifier response")
	ErrNoTitles       = errors.New("no titles to classify")
	ErrTitleColumn    = errors.New("title column not found")
	ErrCheckpointSave = errors.New("failed to save checkpoint")
)

// Classification is the verdict for one job title.
type Classification struct {
	Tier     string `json:"tier"`
	Relevant string `json:"relevant"`
}

// NotRelevant is the default verdict for titles the model did not answer.
func NotRelevant() Classification {
	return Classification{Tier: "Not Relevant", Relevant: "No"}
}
