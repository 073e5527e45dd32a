package titles

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/alnah/go-outreach/internal/assets"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Classifier answers one batch of job titles. Implementations return a
// verdict per title; titles missing from the result are treated as not
// relevant by the caller, never as an error.
type Classifier interface {
	ClassifyTitles(ctx context.Context, batch []string) (map[string]Classification, error)
}

// GeminiClassifier classifies titles through the Gemini API. The prompt
// template carries the tier definitions; the model returns a JSON object
// keyed by title.
type GeminiClassifier struct {
	client *genai.Client
	model  string
	prompt string
	log    zerolog.Logger
}

// GeminiOption configures a GeminiClassifier.
type GeminiOption func(*GeminiClassifier)

// WithModel overrides the default Gemini model.
func WithModel(model string) GeminiOption {
	return func(g *GeminiClassifier) {
		if model != "" {
			g.model = model
		}
	}
}

// WithPromptTemplate overrides the embedded prompt template. The
// template must contain the assets.TitlesMarker placeholder.
func WithPromptTemplate(prompt string) GeminiOption {
	return func(g *GeminiClassifier) {
		if prompt != "" {
			g.prompt = prompt
		}
	}
}

// WithClassifierLogger attaches a structured logger.
func WithClassifierLogger(log zerolog.Logger) GeminiOption {
	return func(g *GeminiClassifier) {
		g.log = log
	}
}

// NewGeminiClassifier creates a classifier authenticating with the given
// API key.
func NewGeminiClassifier(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	prompt, err := assets.TitlePrompt()
	if err != nil {
		return nil, err
	}

	g := &GeminiClassifier{
		client: client,
		model:  DefaultModel,
		prompt: prompt,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ClassifyTitles sends one batch to the model and decodes its verdicts.
func (g *GeminiClassifier) ClassifyTitles(ctx context.Context, batch []string) (map[string]Classification, error) {
	if len(batch) == 0 {
		return nil, ErrNoTitles
	}

	prompt := strings.ReplaceAll(g.prompt, assets.TitlesMarker, renderTitles(batch))
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassify, err)
	}

	results, err := ParseResponse(resp.Text())
	if err != nil {
		return nil, err
	}
	g.log.Debug().Int("batch", len(batch)).Int("answered", len(results)).Msg("batch classified")
	return results, nil
}

var _ Classifier = (*GeminiClassifier)(nil)

// renderTitles encodes the batch as a JSON array so titles containing
// quotes or commas survive into the prompt unambiguously.
func renderTitles(batch []string) string {
	encoded, err := json.Marshal(batch)
	if err != nil {
		return strings.Join(batch, ", ")
	}
	return string(encoded)
}

// ParseResponse decodes the model's JSON verdicts, tolerating the code
// fences chat models like to wrap JSON in.
func ParseResponse(text string) (map[string]Classification, error) {
	cleaned := stripCodeFences(strings.TrimSpace(text))

	results := make(map[string]Classification)
	if err := json.Unmarshal([]byte(cleaned), &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	return results, nil
}

// stripCodeFences unwraps ```json ... ``` blocks.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
