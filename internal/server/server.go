package server

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/TimeAway/blog-design/components"
	"github.com/TimeAway/blog-design/internal/config"
	"github.com/TimeAway/blog-design/internal/gallery"
	"github.com/TimeAway/blog-design/internal/middleware"
	"github.com/TimeAway/blog-design/internal/registry"
)

type Server struct {
	cfg        *config.Config
	registry   *registry.Registry
	httpServer *http.Server
	router     *http.ServeMux
}

func New(cfg *config.Config, reg *registry.Registry, entries []gallery.Entry, staticFS fs.FS) *Server {
	secure := strings.HasPrefix(cfg.BaseURL, "https")

	var banner *components.Banner
	if cfg.BannerMessage != "" {
		banner = &components.Banner{Level: cfg.BannerLevel, Message: cfg.BannerMessage}
	}
	h := NewHandler(reg, entries, banner, middleware.GetCSRFToken)

	// app routes go through Theme + CSRF
	appMux := http.NewServeMux()
	appMux.HandleFunc("GET /{$}", h.HandleGallery)
	appMux.HandleFunc("GET /alerts/{id}", h.HandleAlert)
	appMux.HandleFunc("POST /alerts/{id}/close", h.HandleClose)
	appMux.HandleFunc("POST /alerts/{id}/transition-end", h.HandleTransitionEnd)

	var appHandler http.Handler = appMux
	appHandler = middleware.CSRF(cfg.CSRFKey, secure)(appHandler)
	appHandler = middleware.Theme(cfg.ClassPrefix)(appHandler)

	// top-level mux: /health and /static bypass Theme + CSRF
	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/", appHandler)

	// shared middleware: Recover → RequestID → SecurityHeaders → Logging → mux
	var handler http.Handler = mux
	handler = middleware.Logging(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recover(handler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		cfg:        cfg,
		registry:   reg,
		httpServer: httpServer,
		router:     mux,
	}
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
