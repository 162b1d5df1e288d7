package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/version/build", h.getBuildInfo)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout", h.logout)

		r.Get("/api/categories", h.listCategories)

		r.Get("/api/documents", h.listDocuments)
		r.Get("/api/documents/{id}", h.documentDetail)
		r.Post("/api/documents/upload", h.uploadDocuments)
		r.Post("/api/documents/export", h.exportDocuments)
		r.Post("/api/documents/export/xlsx", h.exportDocumentsXLSX)
		r.Post("/api/documents/delete", h.deleteDocument)
		r.Post("/api/documents/bulk-delete", h.bulkDeleteDocuments)

		r.Post("/api/tags/add", h.addTag)
		r.Post("/api/tags/update", h.updateTag)
		r.Post("/api/tags/delete", h.deleteTag)

		r.Group(func(r chi.Router) {
			r.Use(h.adminOnly)

			r.Post("/api/admin/tags/trim", h.trimTags)
			r.Post("/api/admin/categories/seed", h.seedCategories)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	router.NotFound(routeNotFound)

	return router
}
