package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"newscheck-backend/cache"
	"newscheck-backend/models"
)

var (
	ErrMissingAPIKey    = errors.New("HF_API_KEY not set")
	ErrEmptyGeneration  = errors.New("inference API returned no generated text")
	ErrEmbeddedAPIError = errors.New("inference API returned an error")
)

const (
	inferenceAPI       = "https://api-inference.huggingface.co/models/facebook/blenderbot-400M-distill"
	inferenceTimeout   = 60 * time.Second
	defaultMaxTokens   = 500
	defaultTemperature = 0.7
)

// ExplainService produces a natural-language explanation for a verdict from
// the Hugging Face inference API, falling back to a fixed label-dependent
// template on any failure. Failures are never surfaced as errors: the
// fallback branch always yields a usable explanation.
type ExplainService struct {
	apiURL      string
	apiKey      string
	httpClient  *http.Client
	cache       cache.Cache
	maxTokens   int
	temperature float64
}

// ExplainServiceOption is a functional option for ExplainService
type ExplainServiceOption func(*ExplainService)

// ExplainWithAPIURL overrides the inference endpoint URL
func ExplainWithAPIURL(url string) ExplainServiceOption {
	return func(s *ExplainService) {
		s.apiURL = url
	}
}

// ExplainWithAPIKey sets the inference API credential
func ExplainWithAPIKey(key string) ExplainServiceOption {
	return func(s *ExplainService) {
		s.apiKey = key
	}
}

// ExplainWithHTTPClient overrides the HTTP client
func ExplainWithHTTPClient(client *http.Client) ExplainServiceOption {
	return func(s *ExplainService) {
		s.httpClient = client
	}
}

// ExplainWithCache sets the explanation memoization cache
func ExplainWithCache(c cache.Cache) ExplainServiceOption {
	return func(s *ExplainService) {
		s.cache = c
	}
}

// ExplainWithGenerationControls sets max_new_tokens and temperature
func ExplainWithGenerationControls(maxTokens int, temperature float64) ExplainServiceOption {
	return func(s *ExplainService) {
		s.maxTokens = maxTokens
		s.temperature = temperature
	}
}

// NewExplainService creates a new explain service
func NewExplainService(opts ...ExplainServiceOption) *ExplainService {
	s := &ExplainService{
		apiURL:      inferenceAPI,
		httpClient:  &http.Client{Timeout: inferenceTimeout},
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inferenceRequest is the Hugging Face inference API request body
type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

// Explain returns an explanation for the verdict on an article. The result
// source is remote when the inference API produced it and fallback when any
// failure (missing credential, network, timeout, malformed body, embedded
// error) collapsed to the canned template. A single attempt, no retry.
func (s *ExplainService) Explain(ctx context.Context, article string, label models.Label) models.Explanation {
	key := cache.Key{
		Article:     article,
		Label:       label,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}
	if s.cache != nil {
		if explanation, ok := s.cache.Get(ctx, key); ok {
			return explanation
		}
	}

	text, err := s.callInferenceAPI(ctx, buildPrompt(article, label))
	if err != nil {
		log.Printf("Warning: inference API failed, using fallback explanation: %v", err)
		return models.Explanation{
			Text:   fallbackExplanation(label),
			Source: models.SourceFallback,
			Reason: err.Error(),
		}
	}

	explanation := models.Explanation{Text: text, Source: models.SourceRemote}

	// Only remote results are memoized, so a transient failure does not pin
	// the fallback text for the rest of the session.
	if s.cache != nil {
		s.cache.Set(ctx, key, explanation)
	}

	return explanation
}

// buildPrompt embeds the article and verdict in a request for reasoning under
// the five named sections.
func buildPrompt(article string, label models.Label) string {
	return fmt.Sprintf(`Analyze the following news article and determine if it is %s.
Provide reasoning in points under each section:

1. Summary 📄
2. Tone ✍️
3. Credibility 🔍
4. Evidence 📊
5. Conclusion 🎯

Article:
%s

Format your response in points under each section.`, label, article)
}

// callInferenceAPI makes a single POST to the inference endpoint and extracts
// the generated text.
func (s *ExplainService) callInferenceAPI(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens: s.maxTokens,
			Temperature:  s.temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	// The API reports failures as a JSON object with an "error" field, with
	// or without a non-200 status.
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(bodyBytes, &errResp); err == nil && errResp.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrEmbeddedAPIError, errResp.Error)
	}

	var outputs []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(bodyBytes, &outputs); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
		}
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// An empty array or empty text is treated as a failure rather than an
	// empty remote explanation.
	if len(outputs) == 0 || outputs[0].GeneratedText == "" {
		return "", ErrEmptyGeneration
	}

	return outputs[0].GeneratedText, nil
}

// fallbackExplanation returns the fixed five-section template for a verdict.
func fallbackExplanation(label models.Label) string {
	if label == models.LabelReal {
		return "1. Summary 📄: ✅ Article is factually correct.\n" +
			"2. Tone ✍️: Neutral.\n" +
			"3. Credibility 🔍: Reliable sources.\n" +
			"4. Evidence 📊: Supported by data.\n" +
			"5. Conclusion 🎯: Likely real; trustworthy."
	}
	return "1. Summary 📄: 🚨 Misleading claims.\n" +
		"2. Tone ✍️: Sensational.\n" +
		"3. Credibility 🔍: Unreliable sources.\n" +
		"4. Evidence 📊: Unsupported.\n" +
		"5. Conclusion 🎯: Likely fake; verify before trusting."
}
