// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layout?format=bpmn&strategy=levels   body: BPMN XML
//	GET  /v1/formats
//	GET  /healthz
//
// Every response carries an X-Request-ID header. Successful layouts also
// carry X-Layout-Strategy, X-Layout-Cache (hit or miss) and the layout
// statistics as X-Layout-* headers. Errors are JSON objects with code and
// message fields, mapped to a status by [errs.HTTPStatus].
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/bpmnlayout/pkg/buildinfo"
	"github.com/matzehuels/bpmnlayout/pkg/config"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
)

// RequestIDHeader carries the per-request UUID.
const RequestIDHeader = "X-Request-ID"

// Server handles layout requests.
type Server struct {
	runner *pipeline.Runner
	layout layout.Config
	cfg    config.Server
	logger *log.Logger
}

// New creates a server. layoutCfg is the default layout configuration;
// requests may override its strategy.
func New(runner *pipeline.Runner, layoutCfg layout.Config, cfg config.Server, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, layout: layoutCfg, cfg: cfg, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)
	if s.cfg.Timeout > 0 {
		r.Use(middleware.Timeout(s.cfg.Timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"formats":    pipeline.Formats(),
		"strategies": layout.StrategyNames(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Strategy: q.Get("strategy"),
		Layout:   s.layout,
		Refresh:  q.Get("refresh") == "true",
		Lanes:    q.Get("lanes") == "true",
		Detailed: q.Get("detailed") == "true",
	}
	if scale := q.Get("scale"); scale != "" {
		v, err := strconv.ParseFloat(scale, 64)
		if err != nil {
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid scale %q", scale))
			return
		}
		opts.Scale = v
	}

	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	input, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Code:    string(errs.ErrCodeInvalidInput),
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	if len(input) == 0 {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "empty request body"))
		return
	}

	res, err := s.runner.Execute(r.Context(), input, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("X-Layout-Strategy", res.Strategy)
	h.Set("X-Layout-Cache", cacheStatus(res.CacheHit))
	h.Set("X-Layout-Nodes", strconv.Itoa(res.Stats.NodesPlaced))
	h.Set("X-Layout-Edges", strconv.Itoa(res.Stats.EdgesRouted))
	h.Set("X-Layout-Dropped", strconv.Itoa(res.Stats.EdgesDropped))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{
		Code:      string(code),
		Message:   errs.UserMessage(err),
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestID keeps a caller-supplied request ID or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// observe reports requests to the registered HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
