package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"newscheck-backend/models"

	"github.com/google/uuid"
)

var (
	ErrEmptyArticle     = errors.New("article is empty")
	ErrAnalysisNotFound = errors.New("analysis not found")
)

// Classifier produces a verdict for an article.
type Classifier interface {
	Classify(article string) models.Label
}

// Explainer produces reasoning for a verdict. It never fails: on any problem
// it falls back to a canned explanation.
type Explainer interface {
	Explain(ctx context.Context, article string, label models.Label) models.Explanation
}

// AnalysisStore persists analysis history.
type AnalysisStore interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
	List(ctx context.Context, limit, offset int) ([]*models.Analysis, error)
}

// AnalysisService orchestrates one evaluation: classify, explain, persist.
type AnalysisService struct {
	classifier Classifier
	explainer  Explainer
	store      AnalysisStore
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// AnalysisWithClassifier sets the classifier
func AnalysisWithClassifier(c Classifier) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.classifier = c
	}
}

// AnalysisWithExplainer sets the explainer
func AnalysisWithExplainer(e Explainer) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.explainer = e
	}
}

// AnalysisWithStore sets the analysis store
func AnalysisWithStore(store AnalysisStore) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.store = store
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeRequest represents a request to analyze an article
type AnalyzeRequest struct {
	Article string
}

// AnalyzeResult represents the result of analyzing an article
type AnalyzeResult struct {
	Analysis *models.Analysis
}

// Analyze classifies an article, attaches an explanation, and records the
// evaluation. For non-empty input it always produces a verdict and an
// explanation; a storage failure is downgraded to a warning.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if s.classifier == nil {
		return nil, errors.New("classifier not set")
	}
	if s.explainer == nil {
		return nil, errors.New("explainer not set")
	}

	if strings.TrimSpace(req.Article) == "" {
		return nil, ErrEmptyArticle
	}

	label := s.classifier.Classify(req.Article)
	explanation := s.explainer.Explain(ctx, req.Article, label)

	analysis := &models.Analysis{
		ID:                uuid.New(),
		Article:           req.Article,
		Label:             label,
		ExplanationText:   explanation.Text,
		ExplanationSource: explanation.Source,
	}
	if explanation.Reason != "" {
		reason := explanation.Reason
		analysis.FailureReason = &reason
	}

	if s.store != nil {
		if err := s.store.Create(ctx, analysis); err != nil {
			log.Printf("Warning: failed to store analysis: %v", err)
		}
	}

	return &AnalyzeResult{Analysis: analysis}, nil
}

// GetAnalysisRequest represents a request to get an analysis
type GetAnalysisRequest struct {
	ID uuid.UUID
}

// GetAnalysisResult represents the result of getting an analysis
type GetAnalysisResult struct {
	Analysis *models.Analysis
}

// GetAnalysis retrieves a stored analysis by ID
func (s *AnalysisService) GetAnalysis(ctx context.Context, req GetAnalysisRequest) (*GetAnalysisResult, error) {
	if s.store == nil {
		return nil, errors.New("analysis store not set")
	}

	analysis, err := s.store.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrAnalysisNotFound
	}

	return &GetAnalysisResult{Analysis: analysis}, nil
}

// ListAnalysesRequest represents a request to list analyses
type ListAnalysesRequest struct {
	Limit  int
	Offset int
}

// ListAnalysesResult represents the result of listing analyses
type ListAnalysesResult struct {
	Analyses []*models.Analysis
}

// ListAnalyses lists recent analyses
func (s *AnalysisService) ListAnalyses(ctx context.Context, req ListAnalysesRequest) (*ListAnalysesResult, error) {
	if s.store == nil {
		return nil, errors.New("analysis store not set")
	}

	analyses, err := s.store.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListAnalysesResult{Analyses: analyses}, nil
}
