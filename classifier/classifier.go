package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"newscheck-backend/models"
	"newscheck-backend/storage"
)

var (
	ErrVocabularyMismatch = errors.New("vectorizer vocabulary and IDF weights disagree")
	ErrCoefficientCount   = errors.New("model coefficient count does not match vocabulary size")
)

// vectorizerArtifact is the pre-trained TF-IDF vectorizer. Vocabulary maps
// each term to its column index; IDF holds the per-column inverse document
// frequency weight.
type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// modelArtifact is the pre-trained logistic regression. Class 1 is REAL,
// class 0 is FAKE.
type modelArtifact struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Classifier wraps the two pre-trained artifacts. It is read-only after
// construction and safe for concurrent use.
type Classifier struct {
	vocabulary map[string]int
	idf        []float64
	coef       []float64
	intercept  float64
}

// New builds a classifier from already-decoded parameters.
func New(vocabulary map[string]int, idf, coef []float64, intercept float64) (*Classifier, error) {
	if len(idf) != len(vocabulary) {
		return nil, ErrVocabularyMismatch
	}
	if len(coef) != len(vocabulary) {
		return nil, ErrCoefficientCount
	}
	for term, idx := range vocabulary {
		if idx < 0 || idx >= len(idf) {
			return nil, fmt.Errorf("vocabulary index out of range for term %q: %d", term, idx)
		}
	}

	return &Classifier{
		vocabulary: vocabulary,
		idf:        idf,
		coef:       coef,
		intercept:  intercept,
	}, nil
}

// Load reads the vectorizer and model artifacts from storage and builds a
// classifier. Called once at process start; the artifacts are treated as
// opaque pre-trained parameters.
func Load(ctx context.Context, store storage.Storage, vectorizerKey, modelKey string) (*Classifier, error) {
	var vec vectorizerArtifact
	if err := decodeArtifact(ctx, store, vectorizerKey, &vec); err != nil {
		return nil, fmt.Errorf("failed to load vectorizer artifact: %w", err)
	}

	var model modelArtifact
	if err := decodeArtifact(ctx, store, modelKey, &model); err != nil {
		return nil, fmt.Errorf("failed to load model artifact: %w", err)
	}

	return New(vec.Vocabulary, vec.IDF, model.Coefficients, model.Intercept)
}

func decodeArtifact(ctx context.Context, store storage.Storage, key string, v interface{}) error {
	body, err := store.Download(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Classify returns the verdict for an article. Any string is valid input;
// an empty article is degenerate but still classified. Deterministic for
// fixed artifacts.
func (c *Classifier) Classify(article string) models.Label {
	features := c.transform(article)

	margin := c.intercept
	for idx, weight := range features {
		margin += c.coef[idx] * weight
	}

	if margin > 0 {
		return models.LabelReal
	}
	return models.LabelFake
}

// transform produces the sparse L2-normalized TF-IDF vector for a document.
func (c *Classifier) transform(article string) map[int]float64 {
	counts := make(map[int]float64)
	for _, term := range tokenize(article) {
		if idx, ok := c.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx := range counts {
		counts[idx] *= c.idf[idx]
		norm += counts[idx] * counts[idx]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}

	return counts
}

// tokenize lowercases and splits on non-alphanumeric runes, keeping tokens of
// at least two characters, matching the vectorizer's training tokenization.
func tokenize(text string) []string {
	split := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsNumber(r) }
	words := strings.FieldsFunc(strings.ToLower(text), split)

	tokens := words[:0]
	for _, w := range words {
		if len([]rune(w)) >= 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
