// Package server serves the landing page forms over HTTP. Each POST runs the
// form controller against a request-scoped in-memory form and renders the
// resulting state back into the page.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	theme "github.com/goliatone/go-theme"
)

// Server hosts the form routes.
type Server struct {
	cfg     config.Config
	addr    string
	title   string
	logger  *zap.Logger
	html    *render.HTML
	themes  *render.Themes
	theme   *theme.RendererConfig
	origins []string

	contact    model.FormModel
	newsletter model.FormModel
	extra      map[string]model.FormModel

	router     chi.Router
	httpServer *http.Server
}

// New builds a server with its routes.
func New(options ...Option) (*Server, error) {
	s := &Server{
		cfg:    config.Default(),
		addr:   ":8080",
		title:  "Bistro",
		logger: zap.NewNop(),
		extra:  make(map[string]model.FormModel),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.html == nil {
		html, err := render.NewHTML(
			render.WithLanguage(s.cfg.Locale),
			render.WithTemplateDir(s.cfg.Theme.Templates),
		)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.html = html
	}
	if s.themes == nil {
		themes, err := render.NewThemes(render.BistroManifest())
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.themes = themes
	}
	sel, err := s.themes.Select(s.cfg.Theme.Name, s.cfg.Theme.Variant)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.theme = render.RendererConfig(sel)

	decorate := s.cfg.Decorator()
	s.contact = model.ContactForm()
	s.newsletter = model.NewsletterForm()
	for _, form := range []*model.FormModel{&s.contact, &s.newsletter} {
		if err := model.Apply(form, decorate); err != nil {
			return nil, fmt.Errorf("server: decorate %s: %w", form.ID, err)
		}
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Post("/contact", s.handleSubmit(func() model.FormModel { return s.contact }))
	r.Post("/newsletter", s.handleSubmit(func() model.FormModel { return s.newsletter }))

	r.Route("/forms/{id}", func(r chi.Router) {
		r.Get("/", s.handleExtraForm)
		r.Post("/", s.handleExtraSubmit)
	})
	return r
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe starts listening on the configured address. It returns nil
// once Shutdown has been called, including before it started.
func (s *Server) ListenAndServe() error {
	s.logger.Info("formflow server listening", zap.String("addr", s.addr))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
