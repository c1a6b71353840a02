// Package server exposes the analyzer, calculator, recommendation
// engine, and document generator over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"archcost/internal/analysis"
	"archcost/internal/catalog"
	"archcost/internal/deploy"
	"archcost/internal/docgen"
	"archcost/internal/estimate"
	"archcost/internal/recommend"
	"archcost/internal/store"
)

// Options are the request-independent settings a Server runs with.
type Options struct {
	// Region labels every breakdown; it never changes the numbers.
	Region string

	// MaxUploadBytes caps diagram uploads.
	MaxUploadBytes int64

	// AnalysisTimeout bounds one vision-model call.
	AnalysisTimeout time.Duration
}

// Server wires the collaborators behind the HTTP API.
type Server struct {
	opts     Options
	logger   zerolog.Logger
	calc     *estimate.Calculator
	analyzer analysis.Analyzer
	batch    *docgen.BatchGenerator
	store    *store.Store
	metrics  *Metrics

	// lifeCtx outlives individual requests; deployment trackers run on
	// it so progress continues after the creating request returns.
	lifeCtx context.Context

	// trackerSteps overrides the default deployment step sequence;
	// tests use millisecond steps.
	trackerSteps []deploy.Step
}

// New assembles a Server. lifeCtx should be the process lifecycle
// context; cancelling it freezes running deployment simulations.
func New(
	lifeCtx context.Context,
	opts Options,
	calc *estimate.Calculator,
	analyzer analysis.Analyzer,
	batch *docgen.BatchGenerator,
	st *store.Store,
	metrics *Metrics,
	logger zerolog.Logger,
) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.AnalysisTimeout <= 0 {
		opts.AnalysisTimeout = 90 * time.Second
	}
	return &Server{
		opts:     opts,
		logger:   logger,
		calc:     calc,
		analyzer: analyzer,
		batch:    batch,
		store:    st,
		metrics:  metrics,
		lifeCtx:  lifeCtx,
	}
}

func (s *Server) newTracker() *deploy.Tracker {
	if len(s.trackerSteps) > 0 {
		return deploy.NewTrackerWithSteps(s.trackerSteps, s.logger)
	}
	return deploy.NewTracker(s.logger)
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze", s.withObservability("/api/analyze", s.handleAnalyze))
	mux.HandleFunc("GET /api/analyses/{id}", s.withObservability("/api/analyses/{id}", s.handleGetAnalysis))
	mux.HandleFunc("POST /api/estimate", s.withObservability("/api/estimate", s.handleEstimate))
	mux.HandleFunc("GET /api/categories", s.withObservability("/api/categories", s.handleCategories))
	mux.HandleFunc("POST /api/deployments", s.withObservability("/api/deployments", s.handleCreateDeployment))
	mux.HandleFunc("GET /api/deployments/{id}", s.withObservability("/api/deployments/{id}", s.handleGetDeployment))
	mux.HandleFunc("POST /api/documents", s.withObservability("/api/documents", s.handleGenerateDocuments))
	mux.HandleFunc("GET /api/documents", s.withObservability("/api/documents", s.handleListDocuments))
	mux.HandleFunc("GET /api/documents/{id}/download", s.withObservability("/api/documents/{id}/download", s.handleDownloadDocument))
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return mux
}

// estimateResult is the shared response shape for analyses and direct
// estimates.
type estimateResult struct {
	Breakdown       estimate.Breakdown `json:"breakdown"`
	Recommendations []string           `json:"recommendations"`
	AnnualSavings   float64            `json:"annual_savings"`
}

func (s *Server) estimateServices(services []estimate.Service) estimateResult {
	b := s.calc.Calculate(services, s.opts.Region)
	return estimateResult{
		Breakdown:       b,
		Recommendations: recommend.Recommend(b),
		AnnualSavings:   recommend.AnnualSavings(b.Total),
	}
}

// handleAnalyze accepts a multipart diagram upload under the "image"
// field, runs the vision analysis, estimates the result, and persists
// an analysis record.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "multipart field \"image\" is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "reading upload: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.AnalysisTimeout)
	defer cancel()

	a, err := s.analyzer.AnalyzeDiagram(ctx, image)
	if err != nil {
		var malformed *analysis.MalformedResponseError
		if errors.As(err, &malformed) {
			s.logger.Warn().Err(err).Msg("analysis produced malformed output")
			s.writeError(w, http.StatusBadGateway, malformed.Error())
			return
		}
		s.logger.Error().Err(err).Msg("diagram analysis failed")
		s.writeError(w, http.StatusBadGateway, "diagram analysis failed")
		return
	}

	s.metrics.AnalysesTotal.Inc()
	res := s.estimateServices(a.Services)
	s.metrics.EstimatesTotal.Inc()

	rec := s.store.CreateAnalysis(store.AnalysisRecord{
		FileName:  header.Filename,
		Analysis:  a,
		Breakdown: res.Breakdown,
	})

	s.writeJSON(w, http.StatusCreated, struct {
		store.AnalysisRecord
		Recommendations []string `json:"recommendations"`
		AnnualSavings   float64  `json:"annual_savings"`
	}{rec, res.Recommendations, res.AnnualSavings})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.GetAnalysis(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// estimateRequest is the direct-estimation payload: a service list as
// the analyzer would have produced, minus the image.
type estimateRequest struct {
	Services []estimate.Service `json:"services"`
	Region   string             `json:"region"`
}

// handleEstimate prices a posted service list. Malformed service
// entries never fail the request; the calculator's defaults absorb
// them. Only an unreadable body is a client error.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	region := req.Region
	if region == "" {
		region = s.opts.Region
	}

	b := s.calc.Calculate(req.Services, region)
	s.metrics.EstimatesTotal.Inc()

	s.writeJSON(w, http.StatusOK, estimateResult{
		Breakdown:       b,
		Recommendations: recommend.Recommend(b),
		AnnualSavings:   recommend.AnnualSavings(b.Total),
	})
}

// handleCategories serves the configuration UI's category menu.
func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, catalog.Categories())
}

type createDeploymentRequest struct {
	AnalysisID string `json:"analysis_id"`
}

type deploymentResponse struct {
	store.DeploymentRecord
	Progress deploy.Progress `json:"progress"`
}

func (s *Server) handleCreateDeployment(w http.ResponseWriter, r *http.Request) {
	var req createDeploymentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if _, ok := s.store.GetAnalysis(req.AnalysisID); !ok {
		s.writeError(w, http.StatusNotFound, "analysis not found")
		return
	}

	tracker := s.newTracker()
	tracker.Start(s.lifeCtx)

	rec := s.store.CreateDeployment(store.DeploymentRecord{
		AnalysisID: req.AnalysisID,
		Tracker:    tracker,
	})

	s.writeJSON(w, http.StatusCreated, deploymentResponse{rec, tracker.Progress()})
}

func (s *Server) handleGetDeployment(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.GetDeployment(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "deployment not found")
		return
	}
	s.writeJSON(w, http.StatusOK, deploymentResponse{rec, rec.Tracker.Progress()})
}

type generateDocumentsRequest struct {
	AnalysisID  string   `json:"analysis_id"`
	Types       []string `json:"types"`
	ProjectName string   `json:"project_name"`
}

// handleGenerateDocuments runs a synchronous batch generation for an
// analysis. An empty types list means the full document set. Individual
// document failures are reported per document, never as a request
// failure.
func (s *Server) handleGenerateDocuments(w http.ResponseWriter, r *http.Request) {
	var req generateDocumentsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	analysisRec, ok := s.store.GetAnalysis(req.AnalysisID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "analysis not found")
		return
	}

	types := docgen.AllDocumentTypes()
	if len(req.Types) > 0 {
		types = types[:0]
		for _, raw := range req.Types {
			dt, err := docgen.ParseDocumentType(raw)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			types = append(types, dt)
		}
	}

	reqs := make([]docgen.Request, 0, len(types))
	for _, dt := range types {
		reqs = append(reqs, docgen.Request{
			Type:        dt,
			Analysis:    analysisRec.Analysis,
			Breakdown:   analysisRec.Breakdown,
			ProjectName: req.ProjectName,
		})
	}

	results := s.batch.GenerateAll(r.Context(), reqs)

	records := make([]store.DocumentRecord, 0, len(results))
	for _, res := range results {
		s.metrics.DocumentsTotal.WithLabelValues(string(res.Type), string(res.Status)).Inc()
		records = append(records, s.store.CreateDocument(store.DocumentRecord{
			AnalysisID: req.AnalysisID,
			Type:       res.Type,
			Status:     res.Status,
			Filename:   res.Filename,
			Content:    res.Artifact,
		}))
	}

	s.writeJSON(w, http.StatusCreated, struct {
		Documents []store.DocumentRecord `json:"documents"`
	}{records})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	analysisID := r.URL.Query().Get("analysis_id")
	if analysisID == "" {
		s.writeError(w, http.StatusBadRequest, "analysis_id query parameter is required")
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Documents []store.DocumentRecord `json:"documents"`
	}{s.store.ListDocumentsByAnalysis(analysisID)})
}

func (s *Server) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.GetDocument(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "document not found")
		return
	}
	if rec.Status != docgen.StatusCompleted {
		s.writeError(w, http.StatusConflict, "document generation did not complete")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+rec.Filename+"\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rec.Content); err != nil {
		s.logger.Error().Err(err).Str("document_id", rec.ID).Msg("writing document body")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{"ok"})
}
