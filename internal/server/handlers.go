package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/conneroisu/livedoc/internal/registry"
	"github.com/conneroisu/livedoc/internal/site"
	"github.com/conneroisu/livedoc/internal/version"
)

// Handler returns the router serving pages, the example API, health and
// the live reload socket.
func (s *DocServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(DefaultCSP()))

	// The socket bypasses request logging; the wrapped writer would
	// outlive the request.
	r.Get("/ws", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(s.logRequests)

		r.Get("/", s.handleHome)
		r.Get("/docs/{slug}", s.handlePage)
		r.Get("/docs/{slug}/", s.handlePage)
		r.Get("/health", s.handleHealth)

		r.Route("/api", func(r chi.Router) {
			r.Get("/examples", s.handleExamples)
			r.Get("/examples/{id}", s.handleExample)
			r.Get("/widgets", s.handleWidgets)
		})
	})

	return r
}

func (s *DocServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *DocServer) layoutOptions() site.LayoutOptions {
	opts := site.LayoutOptions{LiveReload: s.config.Development.HotReload}
	if s.config.Development.ErrorOverlay {
		opts.Overlay = s.errors.ErrorOverlay()
	}
	return opts
}

func (s *DocServer) handleHome(w http.ResponseWriter, r *http.Request) {
	current := s.Site()
	if current == nil {
		s.handleUnavailable(w, r)
		return
	}
	s.renderPage(w, r, current, current.Home())
}

func (s *DocServer) handlePage(w http.ResponseWriter, r *http.Request) {
	current := s.Site()
	if current == nil {
		s.handleUnavailable(w, r)
		return
	}

	slug := chi.URLParam(r, "slug")
	page, ok := current.Page(slug)
	if !ok || slug == site.HomeSlug {
		http.NotFound(w, r)
		return
	}
	s.renderPage(w, r, current, page)
}

func (s *DocServer) renderPage(w http.ResponseWriter, r *http.Request, current *site.Site, page *site.Page) {
	templ.Handler(site.Layout(current, page, s.layoutOptions())).ServeHTTP(w, r)
}

// handleUnavailable answers page requests made before any build succeeded.
func (s *DocServer) handleUnavailable(w http.ResponseWriter, r *http.Request) {
	opts := s.layoutOptions()
	overlay := s.errors.ErrorOverlay()
	if overlay == "" {
		overlay = "<p>The site has not been built yet.</p>"
	}
	templ.Handler(
		site.ErrorPage(s.config.Site.Title, overlay, opts),
		templ.WithStatus(http.StatusServiceUnavailable),
	).ServeHTTP(w, r)
}

func (s *DocServer) handleExamples(w http.ResponseWriter, r *http.Request) {
	var examples []*registry.ExampleInfo
	switch {
	case r.URL.Query().Get("widget") != "":
		examples = s.registry.Using(r.URL.Query().Get("widget"))
	case r.URL.Query().Get("page") != "":
		examples = s.registry.ByPage(r.URL.Query().Get("page"))
	default:
		examples = s.registry.GetAll()
	}
	if examples == nil {
		examples = []*registry.ExampleInfo{}
	}
	s.writeJSON(r.Context(), w, http.StatusOK, examples)
}

func (s *DocServer) handleExample(w http.ResponseWriter, r *http.Request) {
	example, ok := s.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		s.writeJSON(r.Context(), w, http.StatusNotFound, map[string]string{"error": "example not found"})
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, example)
}

func (s *DocServer) handleWidgets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, s.registry.WidgetIndex())
}

// handleHealth returns the server health status for health checks
func (s *DocServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	build := map[string]interface{}{"errors": len(s.errors.GetErrors())}
	if current := s.Site(); current != nil {
		build["pages"] = len(current.Pages)
		build["built"] = current.Built.UTC()
		build["duration"] = current.Duration.String()
	} else {
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if s.errors.HasErrors() && code == http.StatusOK {
		status = "degraded"
	}

	health := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"version":   version.GetShortVersion(),
		"checks": map[string]interface{}{
			"build":     build,
			"registry":  map[string]interface{}{"examples": s.registry.Count()},
			"websocket": map[string]interface{}{"clients": s.hub.Count()},
		},
	}
	s.writeJSON(r.Context(), w, code, health)
}

func (s *DocServer) writeJSON(ctx context.Context, w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(ctx, err, "failed to encode response")
	}
}
