package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcost/internal/analysis"
	"archcost/internal/deploy"
	"archcost/internal/docgen"
	"archcost/internal/estimate"
	"archcost/internal/pricing"
	"archcost/internal/store"
)

type stubGenerator struct {
	err map[docgen.DocumentType]error
}

func (g stubGenerator) GenerateContent(_ context.Context, req docgen.Request) (string, error) {
	if err := g.err[req.Type]; err != nil {
		return "", err
	}
	return "# " + string(req.Type), nil
}

func okAnalyzer(services ...estimate.Service) analysis.Analyzer {
	return analysis.AnalyzerFunc(func(context.Context, []byte) (*analysis.Analysis, error) {
		return &analysis.Analysis{Services: services, Confidence: 0.9}, nil
	})
}

func newTestServer(t *testing.T, analyzer analysis.Analyzer, gen docgen.ContentGenerator) *Server {
	t.Helper()

	logger := zerolog.Nop()
	calc := estimate.NewCalculator(pricing.NewClient(logger), logger)
	batch := docgen.NewBatchGenerator(gen, docgen.NewMarkdownRenderer(), docgen.BatchConfig{
		MaxAttempts:   2,
		BaseDelay:     time.Millisecond,
		InterDocDelay: 0,
		CallTimeout:   time.Second,
	}, logger)

	s := New(context.Background(), Options{
		Region:          "us-east-1",
		MaxUploadBytes:  1 << 20,
		AnalysisTimeout: time.Second,
	}, calc, analyzer, batch, store.New(), NewMetrics(), logger)
	s.trackerSteps = []deploy.Step{{Name: "only step", Duration: time.Millisecond}}
	return s
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func uploadDiagram(t *testing.T, h http.Handler, field string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "diagram.png")
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader("fake png bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})
	w := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEstimateEndpoint(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/estimate", map[string]any{
		"services": []map[string]any{
			{"name": "EC2", "count": 2, "instance_type": "t3.medium"},
			{"name": "S3", "storage_size": 100},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decodeBody[estimateResult](t, w)
	assert.InDelta(t, 2*30.37, res.Breakdown.Compute, 1e-9)
	assert.InDelta(t, 100*0.023, res.Breakdown.Storage, 1e-9)
	assert.InDelta(t,
		res.Breakdown.Compute+res.Breakdown.Storage+res.Breakdown.Network+res.Breakdown.Database,
		res.Breakdown.Total, 1e-9)
	assert.Equal(t, "us-east-1", res.Breakdown.Region)
	assert.InDelta(t, res.Breakdown.Total*12*0.20, res.AnnualSavings, 1e-9)
}

func TestEstimateEndpoint_LooseServiceEntriesStillPrice(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})

	// Zero count and an unknown service must not fail the request.
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/estimate", map[string]any{
		"services": []map[string]any{
			{"name": "EC2", "count": 0},
			{"name": "Something Novel", "count": 3},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeBody[estimateResult](t, w)
	assert.InDelta(t, 30.37+3*25, res.Breakdown.Compute, 1e-9)
}

func TestEstimateEndpoint_BadBody(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t, okAnalyzer(
		estimate.Service{Name: "EC2", Count: 1},
		estimate.Service{Name: "RDS", Count: 1},
	), stubGenerator{})
	h := s.Handler()

	w := uploadDiagram(t, h, "image")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeBody[map[string]any](t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "diagram.png", created["file_name"])

	got := doJSON(t, h, http.MethodGet, "/api/analyses/"+id, nil)
	require.Equal(t, http.StatusOK, got.Code)

	rec := decodeBody[store.AnalysisRecord](t, got)
	assert.InDelta(t, 30.37, rec.Breakdown.Compute, 1e-9)
	assert.InDelta(t, 49.64, rec.Breakdown.Database, 1e-9)
}

func TestAnalyzeEndpoint_MissingFile(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})
	w := uploadDiagram(t, s.Handler(), "wrong_field")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint_MalformedModelOutput(t *testing.T) {
	failing := analysis.AnalyzerFunc(func(context.Context, []byte) (*analysis.Analysis, error) {
		return nil, &analysis.MalformedResponseError{Reason: "no services array"}
	})
	s := newTestServer(t, failing, stubGenerator{})

	w := uploadDiagram(t, s.Handler(), "image")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "malformed")
}

func TestGetAnalysis_NotFound(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/analyses/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeploymentLifecycle(t *testing.T) {
	s := newTestServer(t, okAnalyzer(estimate.Service{Name: "EC2"}), stubGenerator{})
	h := s.Handler()

	up := uploadDiagram(t, h, "image")
	require.Equal(t, http.StatusCreated, up.Code)
	analysisID := decodeBody[map[string]any](t, up)["id"].(string)

	created := doJSON(t, h, http.MethodPost, "/api/deployments", map[string]string{"analysis_id": analysisID})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	dep := decodeBody[map[string]any](t, created)
	depID := dep["id"].(string)
	require.NotEmpty(t, depID)

	require.Eventually(t, func() bool {
		w := doJSON(t, h, http.MethodGet, "/api/deployments/"+depID, nil)
		if w.Code != http.StatusOK {
			return false
		}
		res := decodeBody[deploymentResponse](t, w)
		return res.Progress.State == deploy.StateCompleted
	}, time.Second, 5*time.Millisecond)
}

func TestCreateDeployment_UnknownAnalysis(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/deployments", map[string]string{"analysis_id": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentGenerationFlow(t *testing.T) {
	s := newTestServer(t, okAnalyzer(estimate.Service{Name: "S3"}), stubGenerator{
		err: map[docgen.DocumentType]error{
			docgen.TypeMonitoring: errors.New("model refused"),
		},
	})
	h := s.Handler()

	up := uploadDiagram(t, h, "image")
	require.Equal(t, http.StatusCreated, up.Code)
	analysisID := decodeBody[map[string]any](t, up)["id"].(string)

	gen := doJSON(t, h, http.MethodPost, "/api/documents", map[string]any{
		"analysis_id":  analysisID,
		"project_name": "demo",
	})
	require.Equal(t, http.StatusCreated, gen.Code, gen.Body.String())

	var payload struct {
		Documents []store.DocumentRecord `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(gen.Body.Bytes(), &payload))
	require.Len(t, payload.Documents, 4)

	byType := make(map[docgen.DocumentType]store.DocumentRecord)
	for _, d := range payload.Documents {
		byType[d.Type] = d
	}
	assert.Equal(t, docgen.StatusCompleted, byType[docgen.TypePricing].Status)
	assert.Equal(t, docgen.StatusFailed, byType[docgen.TypeMonitoring].Status)

	list := doJSON(t, h, http.MethodGet, "/api/documents?analysis_id="+analysisID, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), string(docgen.TypeSolution))

	download := doJSON(t, h, http.MethodGet, "/api/documents/"+byType[docgen.TypePricing].ID+"/download", nil)
	require.Equal(t, http.StatusOK, download.Code)
	assert.Equal(t, "# pricing", download.Body.String())
	assert.Contains(t, download.Header().Get("Content-Disposition"), "pricing.md")

	blocked := doJSON(t, h, http.MethodGet, "/api/documents/"+byType[docgen.TypeMonitoring].ID+"/download", nil)
	assert.Equal(t, http.StatusConflict, blocked.Code)
}

func TestGenerateDocuments_UnknownType(t *testing.T) {
	s := newTestServer(t, okAnalyzer(estimate.Service{Name: "S3"}), stubGenerator{})
	h := s.Handler()

	up := uploadDiagram(t, h, "image")
	analysisID := decodeBody[map[string]any](t, up)["id"].(string)

	w := doJSON(t, h, http.MethodPost, "/api/documents", map[string]any{
		"analysis_id": analysisID,
		"types":       []string{"invoice"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDocuments_RequiresAnalysisID(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/documents", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ec2")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, okAnalyzer(), stubGenerator{})
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/estimate", map[string]any{"services": []any{}})

	w := doJSON(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "archcost_estimates_total 1")
}
