package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// Options configures a Server.
type Options struct {
	// BaseURL is the public-facing URL used for self-referential links.
	BaseURL string

	// Title names the catalog served at the landing page.
	// Default: "stac-go".
	Title string

	// Source answers search requests. Required.
	Source ItemSource

	// Logger receives request and error logs. Default: slog.Default().
	Logger *slog.Logger
}

// Server is the thin HTTP boundary adapter described in spec.md §6: it
// exposes the landing page, conformance, and search surface a SearchClient
// consumes, backed by a caller-supplied ItemSource.
type Server struct {
	router chi.Router
}

// New builds a Server from opts.
func New(opts Options) (*Server, error) {
	if opts.Title == "" {
		opts.Title = "stac-go"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := &Handlers{
		baseURL: opts.BaseURL,
		title:   opts.Title,
		source:  opts.Source,
		logger:  opts.Logger,
	}
	return &Server{router: NewRouter(h, opts.Logger)}, nil
}

// Router returns the chi.Router for mounting in a host application.
func (s *Server) Router() chi.Router {
	return s.router
}
