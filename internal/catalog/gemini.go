// internal/catalog/gemini.go
//
// Catalog source backed by Gemini on Vertex AI.
// Responsibilities:
//   - Ask the model for a themed word list suited to a level.
//   - Validate the JSON answer against the board alphabet and size.
//   - Delegate to a fallback source on any failure.
//
// Notes:
//   - Uses Application Default Credentials (GOOGLE_APPLICATION_CREDENTIALS).
//   - The fallback keeps levels playable when the model is slow or offline.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/robalobadob/wordsearch/internal/grid"
)

const (
	DefaultRegion = "europe-west1"
	DefaultModel  = "gemini-2.5-flash"

	// maxWordLen keeps generated words inside the smallest board.
	maxWordLen   = 8
	minWordLen   = 3
	minWordCount = 3
	maxWords     = 8
)

const promptTemplate = `You are building a word-search puzzle for level %d.
Pick a fun, family-friendly theme that has not obviously been used for levels before it.
Write every word in %s, in uppercase, with no spaces, digits or punctuation.
Each word must have between %d and %d letters. Return between 6 and %d words.
The theme name must also be in %s.
Answer ONLY with JSON of the form {"theme": "<theme>", "words": ["WORD", ...]}.`

// GeminiSource generates catalog entries with a language model.
type GeminiSource struct {
	client   *genai.Client
	model    string
	fallback Source
}

// NewGeminiSource creates a Vertex AI backed source.
// region and model default to DefaultRegion and DefaultModel.
func NewGeminiSource(ctx context.Context, projectID, region, model string, fallback Source) (*GeminiSource, error) {
	if projectID == "" {
		return nil, errors.New("gemini: project id required")
	}
	if region == "" {
		region = DefaultRegion
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiSource{client: client, model: model, fallback: fallback}, nil
}

// Entry asks the model for a list; index is the zero-based catalog index.
func (g *GeminiSource) Entry(ctx context.Context, lang Lang, index int) (Entry, error) {
	if _, err := ParseLang(string(lang)); err != nil {
		return Entry{}, err
	}
	e, err := g.generate(ctx, lang, index)
	if err == nil {
		return e, nil
	}
	if g.fallback == nil {
		return Entry{}, err
	}
	log.Warn().Err(err).Str("lang", string(lang)).Int("index", index).Msg("gemini catalog failed, using fallback")
	return g.fallback.Entry(ctx, lang, index)
}

func (g *GeminiSource) generate(ctx context.Context, lang Lang, index int) (Entry, error) {
	if g.client == nil {
		return Entry{}, errors.New("gemini: client not configured")
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt(lang, index)}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.9)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return Entry{}, fmt.Errorf("gemini generate: %w", err)
	}
	return parseEntry(resp.Text())
}

func prompt(lang Lang, index int) string {
	name := "English"
	if lang == Portuguese {
		name = "Brazilian Portuguese"
	}
	return fmt.Sprintf(promptTemplate, index+1, name, minWordLen, maxWordLen, maxWords, name)
}

// parseEntry validates a model answer. Words that normalize to something
// unusable are dropped; too few survivors is an error.
func parseEntry(text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, errors.New("empty gemini response")
	}
	var e Entry
	if err := json.Unmarshal([]byte(text), &e); err != nil {
		return Entry{}, fmt.Errorf("parse entry JSON: %w", err)
	}
	e.Theme = strings.TrimSpace(e.Theme)
	if e.Theme == "" {
		return Entry{}, errors.New("gemini entry has no theme")
	}

	seen := make(map[string]bool, len(e.Words))
	words := make([]string, 0, maxWords)
	for _, w := range e.Words {
		n := grid.Normalize(w)
		if l := utf8.RuneCountInString(n); l < minWordLen || l > maxWordLen || seen[n] {
			continue
		}
		seen[n] = true
		words = append(words, n)
		if len(words) == maxWords {
			break
		}
	}
	if len(words) < minWordCount {
		return Entry{}, fmt.Errorf("gemini entry has %d usable words", len(words))
	}
	e.Words = words
	return e, nil
}
