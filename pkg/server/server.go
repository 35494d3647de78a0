// Package server exposes the rendering pipeline over HTTP.
//
// Routes:
//
//	GET  /api/v1/health     build info and cache backend
//	POST /api/v1/render     compile result JSON in, one artifact out
//	POST /api/v1/functions  compile result JSON in, function names out
//
// The render query string takes format, function, arrow, style, scale,
// font_size and refresh. A compile result without a cfg is answered with
// 204 No Content.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cfgview/pkg/buildinfo"
	"github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/httputil"
	"github.com/matzehuels/cfgview/pkg/pipeline"
)

// DefaultMaxBody bounds request bodies.
const DefaultMaxBody = 8 << 20

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// Server serves the rendering API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
	backend  string
	router   chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithDefaults sets the options requests start from before their query
// string is applied.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithMaxBody sets the request body limit in bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// WithCacheBackend names the cache backend reported by the health route.
func WithCacheBackend(name string) Option {
	return func(s *Server) { s.backend = name }
}

// New returns a server rendering with runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{runner: runner, logger: logger, maxBody: DefaultMaxBody}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/render", s.handleRender)
		r.Post("/functions", s.handleFunctions)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", fmt.Sprintf("http://%s/api/v1/health", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
	Cache  string         `json:"cache,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get(), Cache: s.backend})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), body, opts)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if res.Skipped {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-CFG-Function", res.Function)
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo))
	if len(res.Dropped) > 0 {
		w.Header().Set("X-CFG-Dropped-Edges", strconv.Itoa(len(res.Dropped)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type functionsResponse struct {
	Functions []string `json:"functions"`
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	p, ok, err := pipeline.Parse(body, "")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, functionsResponse{Functions: p.Result.Names()})
}

// options applies the query string to the server defaults. Exactly one
// format is rendered per request.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults.Clone()
	opts.Logger = s.logger
	q := r.URL.Query()

	opts.Formats = []string{pipeline.FormatSVG}
	if f := q.Get("format"); f != "" {
		if err := pipeline.ValidateFormat(f); err != nil {
			return opts, err
		}
		opts.Formats = []string{f}
	}
	if v := q.Get("function"); v != "" {
		opts.Function = v
	}
	if v := q.Get("arrow"); v != "" {
		opts.Arrow = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("edge_colors"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "edge_colors: %q is not a boolean", v)
		}
		opts.EdgeColors = b
	}
	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh: %q is not a boolean", v)
		}
		opts.Refresh = b
	}
	for name, dst := range map[string]*float64{"scale": &opts.Scale, "font_size": &opts.FontSize} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a positive number", name, v)
		}
		*dst = f
	}
	return opts, opts.ValidateAndSetDefaults()
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body, expected a compile result")
	}
	return body, nil
}

func cacheHeader(ci pipeline.CacheInfo) string {
	switch {
	case ci.RenderHit:
		return "hit"
	case ci.LayoutHit:
		return "layout"
	}
	return "miss"
}

