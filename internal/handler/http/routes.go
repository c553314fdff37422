package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	// Liveness probe: no auth, no rate limit, reachable even when the
	// storage backend is down.
	router.Group(func(r chi.Router) {
		r.Get("/health", h.getHealth)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.withTraceID)
		r.Use(h.withLogging)
		r.Use(middleware.Timeout(h.requestTimeout))
		r.Use(h.auth)
		r.Use(h.rateLimit)

		r.Get("/sync/data", h.getData)
		r.Post("/sync/push", h.pushData)
		r.Post("/sync/pull", h.pullData)
		r.Delete("/sync/data", h.deleteData)
	})

	return router
}
