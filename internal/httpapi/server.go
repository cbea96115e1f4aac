// Package httpapi exposes the calculation engine over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"revops-engine/internal/commission"
	"revops-engine/internal/document"
	"revops-engine/internal/domain"
	"revops-engine/internal/engine"
	"revops-engine/internal/gtm"
	"revops-engine/internal/observability"
	"revops-engine/internal/scenario"
	"revops-engine/internal/sensitivity"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	engine      *engine.Engine
	scenarios   *scenario.Manager
	metrics     *observability.Metrics // optional
	logger      *slog.Logger
	bumpPct     float64
	corsOrigins []string
}

// NewServer creates a server over e and scenarios.
func NewServer(e *engine.Engine, scenarios *scenario.Manager, logger *slog.Logger) *Server {
	return &Server{
		engine:      e,
		scenarios:   scenarios,
		logger:      logger,
		bumpPct:     sensitivity.DefaultBumpPct,
		corsOrigins: []string{"*"},
	}
}

// WithMetrics exposes m at /metrics and records request counts.
func (s *Server) WithMetrics(m *observability.Metrics) *Server {
	s.metrics = m
	return s
}

// WithBumpPct sets the default sensitivity bump.
func (s *Server) WithBumpPct(pct float64) *Server {
	if pct > 0 {
		s.bumpPct = pct
	}
	return s
}

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func (s *Server) WithCORSOrigins(origins []string) *Server {
	if len(origins) > 0 {
		s.corsOrigins = origins
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestID)
	mux.Use(Logger(s.logger, s.metrics))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	mux.Route("/v1", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/sensitivity", s.handleSensitivity)
		r.Post("/reverse/leads", s.handleReverseLeads)
		r.Post("/ote", s.handleOTE)

		r.Get("/scenarios", s.handleListScenarios)
		r.Get("/scenarios/compare", s.handleCompareScenarios)
		r.Put("/scenarios/{name}", s.handlePutScenario)
		r.Get("/scenarios/{name}", s.handleGetScenario)
		r.Delete("/scenarios/{name}", s.handleDeleteScenario)

		r.Get("/presets", s.handleListPresets)
		r.Post("/presets/{preset}", s.handleApplyPreset)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(mux)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, err := s.readInputs(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.engine.Calculate(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type sensitivityRequest struct {
	Document json.RawMessage `json:"document"`
	BumpPct  float64         `json:"bump_pct"`
	Metrics  []string        `json:"metrics"`
}

type sensitivityResponse struct {
	BumpPct float64              `json:"bump_pct"`
	Tables  []sensitivity.Table  `json:"tables"`
	Drivers []sensitivity.Driver `json:"drivers"`
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	raw := []byte(req.Document)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	doc, err := document.Decode(raw, document.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := doc.ToInputs()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	for _, m := range req.Metrics {
		if !engine.KnownMetric(m) {
			s.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownMetric, m))
			return
		}
	}
	bump := req.BumpPct
	if bump == 0 {
		bump = s.bumpPct
	}

	start := time.Now()
	tables := engine.Sensitivity(in, bump, req.Metrics...)
	s.metrics.RecordCalculation("sensitivity", time.Since(start))
	writeJSON(w, http.StatusOK, sensitivityResponse{
		BumpPct: bump,
		Tables:  tables,
		Drivers: sensitivity.Summarize(tables),
	})
}

type reverseRequest struct {
	Target float64            `json:"target"`
	Stage  string             `json:"stage"`
	Rates  domain.FunnelRates `json:"rates"`
}

type reverseResponse struct {
	Target float64       `json:"target"`
	Stage  domain.Stage  `json:"stage"`
	Leads  float64       `json:"leads"`
	Plan   *gtm.LeadPlan `json:"plan,omitempty"`
}

func (s *Server) handleReverseLeads(w http.ResponseWriter, r *http.Request) {
	var req reverseRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	stage, err := domain.ParseStage(req.Stage)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Rates.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Target < 0 {
		s.writeError(w, r, fmt.Errorf("%w: target", domain.ErrNegativeAmount))
		return
	}

	start := time.Now()
	resp := reverseResponse{
		Target: req.Target,
		Stage:  stage,
		Leads:  gtm.ReverseEngineerLeads(req.Target, stage, req.Rates),
	}
	if stage == domain.StageSales {
		plan := gtm.PlanLeads(req.Target, req.Rates)
		resp.Plan = &plan
	}
	s.metrics.RecordCalculation("reverse_leads", time.Since(start))
	writeJSON(w, http.StatusOK, resp)
}

type oteRequest struct {
	TargetVariable        float64 `json:"target_variable"`
	CommissionPct         float64 `json:"commission_pct"`
	CommissionBasePerDeal float64 `json:"commission_base_per_deal"`
}

func (s *Server) handleOTE(w http.ResponseWriter, r *http.Request) {
	var req oteRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	comp := domain.RoleCompensation{Variable: req.TargetVariable, CommissionPct: req.CommissionPct}
	if err := comp.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.CommissionBasePerDeal < 0 {
		s.writeError(w, r, fmt.Errorf("%w: commission_base_per_deal", domain.ErrNegativeAmount))
		return
	}

	start := time.Now()
	ote := commission.CalculateOTERequirements(req.TargetVariable, req.CommissionPct, req.CommissionBasePerDeal)
	s.metrics.RecordCalculation("ote", time.Since(start))
	writeJSON(w, http.StatusOK, ote)
}

type scenarioSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SavedAt string `json:"saved_at"`
}

type scenarioDetail struct {
	scenarioSummary
	Params   domain.Params      `json:"params"`
	Document *document.Document `json:"document,omitempty"`
}

func summarize(sc *domain.Scenario) scenarioSummary {
	return scenarioSummary{ID: sc.ID, Name: sc.Name, SavedAt: sc.SavedAt.Format(time.RFC3339)}
}

func (s *Server) handlePutScenario(w http.ResponseWriter, r *http.Request) {
	in, err := s.readInputs(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := s.scenarios.SaveInputs(r.Context(), chi.URLParam(r, "name"), in, engine.Params(in))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, summarize(sc))
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenarios.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	detail := scenarioDetail{scenarioSummary: summarize(sc), Params: sc.Params}
	if sc.Inputs != nil {
		doc := document.FromInputs(*sc.Inputs, sc.SavedAt)
		detail.Document = &doc
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := s.scenarios.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]scenarioSummary, 0, len(list))
	for _, sc := range list {
		out = append(out, summarize(sc))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.scenarios.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompareScenarios(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if a == "" || b == "" {
		s.writeError(w, r, fmt.Errorf("%w: query parameters a and b are required", ErrBadRequest))
		return
	}

	deltas, err := s.scenarios.CompareWith(r.Context(), a, b, s.evaluateScenario)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deltas)
}

// evaluateScenario runs a saved scenario through the engine. Scenarios saved
// without structured inputs are applied over the default plan.
func (s *Server) evaluateScenario(ctx context.Context, sc *domain.Scenario) (map[string]float64, error) {
	var template domain.Inputs
	if sc.Inputs != nil {
		template = *sc.Inputs
	} else {
		def, err := document.Default().ToInputs()
		if err != nil {
			return nil, err
		}
		template = def
	}
	res, err := s.engine.Calculate(ctx, engine.ApplyParams(template, sc.Params))
	if err != nil {
		return nil, err
	}
	return res.Flatten(), nil
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.ScenarioPresets)
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	in, err := s.readInputs(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scaled, err := scenario.ApplyPresetByID(in, chi.URLParam(r, "preset"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.engine.Calculate(r.Context(), scaled)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readInputs decodes a plan document from the body. YAML is accepted when the
// content type says so; an empty body means the default plan.
func (s *Server) readInputs(r *http.Request) (domain.Inputs, error) {
	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return domain.Inputs{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	format := document.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = document.FormatYAML
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	doc, err := document.Decode(data, format)
	if err != nil {
		return domain.Inputs{}, err
	}
	return doc.ToInputs()
}

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("rid", RID(r.Context())), slog.String("err", err.Error()))
	}
	writeJSON(w, status, errorBody{Error: err.Error(), RequestID: RID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	_ = enc.Encode(v)
}
