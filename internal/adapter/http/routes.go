package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MountRoutes registers the proxy surface on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/models", h.ListModels)
		r.Post("/chat", h.ChatCompletion)
	})

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())
}

// MountStatic serves the web UI from dir at the router root. An empty dir
// disables static serving.
func MountStatic(r chi.Router, dir string) {
	if dir == "" {
		return
	}
	fs := http.FileServer(http.Dir(dir))
	r.Handle("/*", fs)
}
