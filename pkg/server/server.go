package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/config"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/results"
)

const maxBodyBytes = 32 << 20

// Server serves the coloring API.
type Server struct {
	env    Env
	runner *pipeline.Runner
	store  results.Store
	logger *log.Logger
}

// New returns a server. A nil store keeps records in memory; a nil logger
// logs to the default logger.
func New(env Env, runner *pipeline.Runner, store results.Store, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if store == nil {
		store = results.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if env.MaxVertices <= 0 {
		env.MaxVertices = DefaultMaxVertices
	}
	if env.Timeout <= 0 {
		env.Timeout = DefaultTimeout
	}
	return &Server{env: env, runner: runner, store: store, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/algorithms", s.handleAlgorithms)
		r.Post("/color", s.handleColor)
		r.Post("/validate", s.handleValidate)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.env.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.env.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", status, "duration", d, "request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type algorithmInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	names := config.Algorithms()
	out := make([]algorithmInfo, len(names))
	for i, name := range names {
		out[i] = algorithmInfo{Name: name, Description: config.Descriptions[name]}
	}
	writeJSON(w, http.StatusOK, map[string]any{"algorithms": out})
}

// GraphPayload is the wire form of a graph.
type GraphPayload struct {
	Vertices int      `json:"vertices"`
	Edges    [][2]int `json:"edges"`
}

func (p GraphPayload) build(maxVertices int) (*graph.Graph, error) {
	if p.Vertices > maxVertices {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "graph has %d vertices, limit is %d", p.Vertices, maxVertices)
	}
	edges := make([]graph.Edge, len(p.Edges))
	for i, e := range p.Edges {
		edges[i] = graph.Edge{U: e[0], V: e[1]}
	}
	return graph.New(p.Vertices, edges)
}

// ColorRequest is the body of POST /v1/color.
type ColorRequest struct {
	GraphPayload
	Name      string   `json:"name,omitempty"`
	Algorithm string   `json:"algorithm,omitempty"`
	K         int      `json:"k,omitempty"`
	Seed      int64    `json:"seed,omitempty"`
	TimeoutMS int      `json:"timeout_ms,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Palette   string   `json:"palette,omitempty"`
}

// ColorResponse is the body of a successful POST /v1/color.
type ColorResponse struct {
	RunID     string            `json:"run_id"`
	GraphHash string            `json:"graph_hash"`
	Cached    bool              `json:"cached"`
	Result    *coloring.Result  `json:"result"`
	Metrics   coloring.Metrics  `json:"metrics"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" {
		req.Name = "graph"
	}
	if err := cerrors.ValidateGraphName(req.Name); err != nil {
		writeError(w, err)
		return
	}
	if req.TimeoutMS < 0 {
		writeError(w, cerrors.New(cerrors.ErrCodeConfiguration, "timeout_ms must not be negative, got %d", req.TimeoutMS))
		return
	}
	g, err := req.build(s.env.MaxVertices)
	if err != nil {
		writeError(w, err)
		return
	}

	// The deadline lives on the context rather than in the engine config so
	// finished runs stay cacheable.
	timeout := s.env.Timeout
	if req.TimeoutMS > 0 {
		timeout = min(timeout, time.Duration(req.TimeoutMS)*time.Millisecond)
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	opts := pipeline.Options{
		Graph: g,
		Name:  req.Name,
		Config: config.Config{
			Algorithm: req.Algorithm,
			K:         req.K,
			Seed:      req.Seed,
		},
		Formats: req.Formats,
		Palette: req.Palette,
		Logger:  s.logger,
	}
	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), res.Record); err != nil {
		s.logger.Warn("failed to persist run", "run_id", res.Record.RunID, "error", err)
	}

	resp := ColorResponse{
		RunID:     res.Record.RunID,
		GraphHash: res.GraphHash,
		Cached:    res.CacheInfo.ColorHit,
		Result:    res.Coloring,
		Metrics:   coloring.Summarize(g, res.Coloring.Coloring),
	}
	if len(res.Artifacts) > 0 {
		resp.Artifacts = make(map[string]string, len(res.Artifacts))
		for f, data := range res.Artifacts {
			resp.Artifacts[f] = string(data)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	GraphPayload
	Coloring coloring.Coloring `json:"coloring"`
}

// ValidateResponse is the body of a successful POST /v1/validate.
type ValidateResponse struct {
	coloring.Metrics
	ConflictEdges [][2]int `json:"conflict_edges"`
	Conflicting   []int    `json:"conflicting_vertices"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	g, err := req.build(s.env.MaxVertices)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(req.Coloring) != g.N() {
		writeError(w, cerrors.New(cerrors.ErrCodeInvalidInput, "coloring has %d entries, graph has %d vertices", len(req.Coloring), g.N()))
		return
	}
	for v, col := range req.Coloring {
		if col < coloring.Uncolored || col >= g.N() {
			writeError(w, cerrors.New(cerrors.ErrCodeInvalidInput,
				"vertex %d has color %d; colors must lie in [-1, %d)", v, col, g.N()))
			return
		}
	}

	resp := ValidateResponse{
		Metrics:       coloring.Summarize(g, req.Coloring),
		ConflictEdges: [][2]int{},
		Conflicting:   coloring.ConflictVertices(g, req.Coloring),
	}
	for _, e := range coloring.Conflicts(g, req.Coloring) {
		resp.ConflictEdges = append(resp.ConflictEdges, [2]int{e.U, e.V})
	}
	if resp.Conflicting == nil {
		resp.Conflicting = []int{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := results.Filter{Graph: q.Get("graph"), Algorithm: q.Get("algorithm"), Limit: 50}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, cerrors.New(cerrors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		f.Limit = n
	}
	records, err := s.store.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []results.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": records})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, results.ErrNotFound) {
		writeError(w, cerrors.Wrap(cerrors.ErrCodeNotFound, err, "run %s", chi.URLParam(r, "id")))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// =============================================================================
// Encoding
// =============================================================================

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

type errorBody struct {
	Code    cerrors.Code `json:"code"`
	Message string       `json:"message"`
}

// StatusCode maps an error to an HTTP status.
func StatusCode(err error) int {
	switch cerrors.GetCode(err) {
	case cerrors.ErrCodeNotFound, cerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case cerrors.ErrCodeSearchTooLarge:
		return http.StatusUnprocessableEntity
	}
	if cerrors.IsCallerError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	code := cerrors.GetCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		code = cerrors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		_, _ = fmt.Fprintf(w, `{"error":{"code":%q}}`, cerrors.ErrCodeInternal)
	}
}
