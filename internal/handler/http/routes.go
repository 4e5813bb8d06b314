package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/healthz", h.healthz)
		r.Get("/api/version/", h.getServerVersion)
	})

	// device-facing routes, token required
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/ota/restore", h.restore)
		r.Post("/api/case-transactions", h.applyTransaction)
		r.Post("/api/sync-logs/{syncLogID}/archive-case/{caseID}", h.archiveCase)
		r.Get("/api/flags/{domain}/{ownerID}", h.getFlag)
		r.Post("/api/flags/{domain}/{ownerID}/recompute", h.recomputeFlag)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
