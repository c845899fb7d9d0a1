package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newscheck-backend/models"
	"newscheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fixedClassifier struct{}

func (fixedClassifier) Classify(article string) models.Label { return models.LabelFake }

type fixedExplainer struct{}

func (fixedExplainer) Explain(ctx context.Context, article string, label models.Label) models.Explanation {
	return models.Explanation{Text: "1. Summary ...", Source: models.SourceFallback, Reason: "HF_API_KEY not set"}
}

type memoryStore struct {
	analyses []*models.Analysis
}

func (m *memoryStore) Create(ctx context.Context, analysis *models.Analysis) error {
	m.analyses = append(m.analyses, analysis)
	return nil
}

func (m *memoryStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	for _, a := range m.analyses {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.New("no rows")
}

func (m *memoryStore) List(ctx context.Context, limit, offset int) ([]*models.Analysis, error) {
	return m.analyses, nil
}

func newTestRouter() (*gin.Engine, *memoryStore) {
	gin.SetMode(gin.TestMode)

	store := &memoryStore{}
	analysisService := service.NewAnalysisService(
		service.AnalysisWithClassifier(fixedClassifier{}),
		service.AnalysisWithExplainer(fixedExplainer{}),
		service.AnalysisWithStore(store),
	)
	h := NewAnalysisHandler(analysisService)

	r := gin.New()
	r.POST("/api/analyses", h.CreateAnalysis)
	r.GET("/api/analyses/:id", h.GetAnalysis)
	r.GET("/api/analyses", h.ListAnalyses)
	return r, store
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func TestCreateAnalysisEmptyArticle(t *testing.T) {
	r, store := newTestRouter()

	for _, body := range []string{`{"article":""}`, `{"article":"   "}`, `{}`} {
		code, env := doRequest(t, r, http.MethodPost, "/api/analyses", body)
		if code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, code)
		}
		if env.Error.Code != "EMPTY_ARTICLE" {
			t.Fatalf("body %s: error code = %s", body, env.Error.Code)
		}
	}
	if len(store.analyses) != 0 {
		t.Fatal("blank submissions must not be analyzed")
	}
}

func TestCreateAnalysis(t *testing.T) {
	r, store := newTestRouter()

	code, env := doRequest(t, r, http.MethodPost, "/api/analyses", `{"article":"Aliens endorse miracle diet"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if !env.Success {
		t.Fatalf("success = false: %+v", env.Error)
	}

	var analysis models.Analysis
	if err := json.Unmarshal(env.Data, &analysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if analysis.Label != models.LabelFake {
		t.Fatalf("label = %s", analysis.Label)
	}
	if analysis.ExplanationSource != models.SourceFallback || analysis.ExplanationText == "" {
		t.Fatalf("explanation = %+v", analysis)
	}
	if len(store.analyses) != 1 {
		t.Fatalf("stored %d analyses, want 1", len(store.analyses))
	}
}

func TestGetAnalysisByID(t *testing.T) {
	r, store := newTestRouter()

	doRequest(t, r, http.MethodPost, "/api/analyses", `{"article":"some article"}`)
	id := store.analyses[0].ID

	code, env := doRequest(t, r, http.MethodGet, "/api/analyses/"+id.String(), "")
	if code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, env = %+v", code, env)
	}

	code, env = doRequest(t, r, http.MethodGet, "/api/analyses/not-a-uuid", "")
	if code != http.StatusBadRequest || env.Error.Code != "INVALID_ID" {
		t.Fatalf("status = %d, code = %s", code, env.Error.Code)
	}

	code, env = doRequest(t, r, http.MethodGet, "/api/analyses/"+uuid.NewString(), "")
	if code != http.StatusNotFound || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("status = %d, code = %s", code, env.Error.Code)
	}
}

func TestListAnalyses(t *testing.T) {
	r, _ := newTestRouter()

	doRequest(t, r, http.MethodPost, "/api/analyses", `{"article":"first"}`)
	doRequest(t, r, http.MethodPost, "/api/analyses", `{"article":"second"}`)

	code, env := doRequest(t, r, http.MethodGet, "/api/analyses", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var analyses []models.Analysis
	if err := json.Unmarshal(env.Data, &analyses); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(analyses) != 2 {
		t.Fatalf("listed %d analyses, want 2", len(analyses))
	}

	code, env = doRequest(t, r, http.MethodGet, "/api/analyses?limit=abc", "")
	if code != http.StatusBadRequest || env.Error.Code != "INVALID_LIMIT" {
		t.Fatalf("status = %d, code = %s", code, env.Error.Code)
	}
}
