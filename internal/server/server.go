// Package server serves the single-page web UI for a [shell.Shell].
//
// The page is rendered on the server: a sidebar with the contract input,
// the generate button and the sheet list, and a canvas area showing the
// empty state, the loading state, the failure message or the active sheet's
// canvas inlined as SVG. While a generation runs the page refreshes itself.
//
// Routes:
//
//	GET  /                      page
//	GET  /state.json            current state
//	POST /generate              submit contract text (form field "text")
//	POST /sheets/{id}           select a sheet
//	GET  /canvas.svg            active canvas
//	POST /export                active canvas as PNG download
//	GET  /sheets/{id}/graph.svg connection graph of a sheet
//	GET  /suite.json            generated suite
//	GET  /healthz               liveness
//	GET  /metrics               Prometheus metrics, when configured
//
// Form posts redirect back to the page. Requests that accept
// application/json get the resulting state instead; for /generate this also
// makes the request wait for the model.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/legalcanvas/pkg/buildinfo"
	"github.com/matzehuels/legalcanvas/pkg/shell"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTimeout bounds one generation started from the web UI.
const DefaultTimeout = 5 * time.Minute

// Config configures a Server.
type Config struct {
	// Timeout bounds each generation. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler

	// Logger receives request and generation logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server is the HTTP front end of a shell.
type Server struct {
	shell     *shell.Shell
	cfg       Config
	logger    *log.Logger
	templates *template.Template
	router    chi.Router

	// background generations started by form posts
	wg sync.WaitGroup
}

// New builds the router for sh.
func New(sh *shell.Shell, cfg Config) (*Server, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		shell:     sh,
		cfg:       cfg,
		logger:    cfg.Logger,
		templates: tmpl,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", buildinfo.UserAgent())
			next.ServeHTTP(w, r)
		})
	})
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/", s.handleIndex)
	r.Get("/state.json", s.handleState)
	r.Post("/generate", s.handleGenerate)
	r.Post("/sheets/{id}", s.handleSelect)
	r.Get("/canvas.svg", s.handleCanvas)
	r.Post("/export", s.handleExport)
	r.Get("/sheets/{id}/graph.svg", s.handleGraph)
	r.Get("/suite.json", s.handleSuite)
	r.Get("/healthz", s.handleHealth)

	if s.cfg.Metrics != nil {
		r.Handle("/metrics", s.cfg.Metrics)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Wait blocks until background generations have finished.
func (s *Server) Wait() { s.wg.Wait() }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and waits for running generations.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Wait()
	return err
}

// requestLogger logs one line per request at debug level, and at warn level
// for server errors.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Warn("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	})
}
