package service

import (
	"context"
	"errors"
	"testing"

	"newscheck-backend/models"

	"github.com/google/uuid"
)

type stubClassifier struct {
	label models.Label
}

func (s stubClassifier) Classify(article string) models.Label { return s.label }

type stubExplainer struct {
	explanation models.Explanation
}

func (s stubExplainer) Explain(ctx context.Context, article string, label models.Label) models.Explanation {
	return s.explanation
}

type stubStore struct {
	created   []*models.Analysis
	createErr error
}

func (s *stubStore) Create(ctx context.Context, analysis *models.Analysis) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, analysis)
	return nil
}

func (s *stubStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	for _, a := range s.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.New("no rows")
}

func (s *stubStore) List(ctx context.Context, limit, offset int) ([]*models.Analysis, error) {
	return s.created, nil
}

func newTestService(store *stubStore, label models.Label, explanation models.Explanation) *AnalysisService {
	return NewAnalysisService(
		AnalysisWithClassifier(stubClassifier{label: label}),
		AnalysisWithExplainer(stubExplainer{explanation: explanation}),
		AnalysisWithStore(store),
	)
}

func TestAnalyzeRejectsBlankArticle(t *testing.T) {
	store := &stubStore{}
	s := newTestService(store, models.LabelReal, models.Explanation{Text: "x", Source: models.SourceRemote})

	for _, article := range []string{"", "   ", "\n\t "} {
		_, err := s.Analyze(context.Background(), AnalyzeRequest{Article: article})
		if err != ErrEmptyArticle {
			t.Fatalf("Analyze(%q) err = %v, want ErrEmptyArticle", article, err)
		}
	}
	if len(store.created) != 0 {
		t.Fatal("blank input must not be classified or stored")
	}
}

func TestAnalyzeProducesVerdictAndExplanation(t *testing.T) {
	store := &stubStore{}
	s := newTestService(store, models.LabelFake, models.Explanation{
		Text:   "1. Summary ...",
		Source: models.SourceRemote,
	})

	result, err := s.Analyze(context.Background(), AnalyzeRequest{Article: "some dubious claim"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	a := result.Analysis
	if a.Label != models.LabelFake {
		t.Fatalf("label = %s", a.Label)
	}
	if a.ExplanationText == "" || a.ExplanationSource != models.SourceRemote {
		t.Fatalf("explanation = %q / %s", a.ExplanationText, a.ExplanationSource)
	}
	if a.FailureReason != nil {
		t.Fatalf("failure reason = %v, want nil for remote explanation", *a.FailureReason)
	}
	if a.ID == uuid.Nil {
		t.Fatal("analysis ID not assigned")
	}
	if len(store.created) != 1 {
		t.Fatalf("stored %d analyses, want 1", len(store.created))
	}
}

func TestAnalyzeRecordsFallbackReason(t *testing.T) {
	store := &stubStore{}
	s := newTestService(store, models.LabelReal, models.Explanation{
		Text:   "1. Summary ...",
		Source: models.SourceFallback,
		Reason: "HF_API_KEY not set",
	})

	result, err := s.Analyze(context.Background(), AnalyzeRequest{Article: "plain report"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	a := result.Analysis
	if a.ExplanationSource != models.SourceFallback {
		t.Fatalf("source = %s", a.ExplanationSource)
	}
	if a.FailureReason == nil || *a.FailureReason != "HF_API_KEY not set" {
		t.Fatalf("failure reason = %v", a.FailureReason)
	}
}

func TestAnalyzeSurvivesStorageFailure(t *testing.T) {
	store := &stubStore{createErr: errors.New("connection refused")}
	s := newTestService(store, models.LabelReal, models.Explanation{Text: "x", Source: models.SourceRemote})

	result, err := s.Analyze(context.Background(), AnalyzeRequest{Article: "some article"})
	if err != nil {
		t.Fatalf("storage failure must not fail the analysis: %v", err)
	}
	if result.Analysis.Label != models.LabelReal {
		t.Fatalf("label = %s", result.Analysis.Label)
	}
}

func TestGetAnalysis(t *testing.T) {
	store := &stubStore{}
	s := newTestService(store, models.LabelReal, models.Explanation{Text: "x", Source: models.SourceRemote})

	created, err := s.Analyze(context.Background(), AnalyzeRequest{Article: "article"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	got, err := s.GetAnalysis(context.Background(), GetAnalysisRequest{ID: created.Analysis.ID})
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if got.Analysis.ID != created.Analysis.ID {
		t.Fatal("returned wrong analysis")
	}

	if _, err := s.GetAnalysis(context.Background(), GetAnalysisRequest{ID: uuid.New()}); err != ErrAnalysisNotFound {
		t.Fatalf("err = %v, want ErrAnalysisNotFound", err)
	}
}
