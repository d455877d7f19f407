package server

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
)

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the form configuration (messages, timings, labels, theme).
func WithConfig(cfg config.Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithAddr sets the listen address used by ListenAndServe.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			s.addr = trimmed
		}
	}
}

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer replaces the HTML renderer.
func WithRenderer(r *render.HTML) Option {
	return func(s *Server) {
		if r != nil {
			s.html = r
		}
	}
}

// WithThemes replaces the theme set; the configured theme is selected from it.
func WithThemes(t *render.Themes) Option {
	return func(s *Server) {
		if t != nil {
			s.themes = t
		}
	}
}

// WithForms serves additional forms under /forms/{id}.
func WithForms(forms ...model.FormModel) Option {
	return func(s *Server) {
		for _, f := range forms {
			if f.ID == "" {
				continue
			}
			s.extra[f.ID] = f
		}
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}
