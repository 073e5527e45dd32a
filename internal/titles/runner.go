package titles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBatchSize is the number of titles sent per model request.
const DefaultBatchSize = 50

// DefaultPause is the wait between batches, pacing the model API.
const DefaultPause = 2 * time.Second

// Sink receives accumulated results. partial marks flushes triggered by
// cancellation or a failed batch, so the file name can say so.
type Sink interface {
	Flush(results map[string]Classification, partial bool) error
}

// Runner walks titles through a Classifier in batches.
type Runner struct {
	classifier Classifier
	batchSize  int
	pause      time.Duration
	log        zerolog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBatchSize overrides the default batch size. Values below 1 are
// ignored.
func WithBatchSize(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 1 {
			r.batchSize = n
		}
	}
}

// WithPause overrides the wait between batches. Negative values are
// ignored; zero disables pacing (tests).
func WithPause(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d >= 0 {
			r.pause = d
		}
	}
}

// WithRunnerLogger attaches a structured logger.
func WithRunnerLogger(log zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// NewRunner creates a Runner over the given classifier.
func NewRunner(classifier Classifier, opts ...RunnerOption) *Runner {
	r := &Runner{
		classifier: classifier,
		batchSize:  DefaultBatchSize,
		pause:      DefaultPause,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run classifies every distinct non-blank title and flushes the final
// results through the sink. On cancellation or a failed batch it flushes
// what it has as a partial checkpoint, then returns the error together
// with the partial results. Titles a batch response leaves unanswered
// default to NotRelevant rather than failing the run.
func (r *Runner) Run(ctx context.Context, titles []string, sink Sink) (map[string]Classification, error) {
	unique := dedupe(titles)
	if len(unique) == 0 {
		return nil, ErrNoTitles
	}

	results := make(map[string]Classification, len(unique))

	for start := 0; start < len(unique); start += r.batchSize {
		if err := ctx.Err(); err != nil {
			return r.abort(results, sink, err)
		}

		end := start + r.batchSize
		if end > len(unique) {
			end = len(unique)
		}
		batch := unique[start:end]

		classified, err := r.classifier.ClassifyTitles(ctx, batch)
		if err != nil {
			return r.abort(results, sink, err)
		}

		for _, title := range batch {
			verdict, ok := classified[title]
			if !ok {
				verdict = NotRelevant()
				r.log.Warn().Str("title", title).Msg("title not returned by model")
			}
			results[title] = verdict
		}

		r.log.Info().Int("processed", end).Int("total", len(unique)).Msg("classification progress")

		if end < len(unique) && r.pause > 0 {
			if err := sleep(ctx, r.pause); err != nil {
				return r.abort(results, sink, err)
			}
		}
	}

	if err := sink.Flush(results, false); err != nil {
		return results, err
	}
	return results, nil
}

// abort flushes partial progress and returns the causing error. A flush
// failure is attached rather than replacing the cause.
func (r *Runner) abort(results map[string]Classification, sink Sink, cause error) (map[string]Classification, error) {
	if len(results) > 0 {
		r.log.Info().Int("classified", len(results)).Msg("flushing partial results")
		if err := sink.Flush(results, true); err != nil {
			return results, fmt.Errorf("%v (partial flush also failed: %w)", cause, err)
		}
	}
	return results, cause
}

// dedupe returns the distinct non-blank titles in first-encounter order.
// Titles keep their raw spelling; only fully blank cells are dropped.
func dedupe(titles []string) []string {
	unique := make([]string, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		if strings.TrimSpace(title) == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		unique = append(unique, title)
	}
	return unique
}

// sleep waits for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
