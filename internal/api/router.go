package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	// Route table is public.
	r.Get("/pages", h.ListPages)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))

		// Collections.
		r.Get("/collections", h.ListCollections)
		r.Get("/collections/{name}", h.ListCollection)
		r.Get("/collections/{name}/{id}", h.GetRecord)
		r.Get("/skillshares", h.ListSkillShares)

		// Sessions and analyses.
		r.Post("/sessions", h.CreateSession)
		r.Get("/sessions/{id}", h.GetSession)
		r.Delete("/sessions/{id}", h.DeleteSession)
		r.Post("/sessions/{id}/reset", h.ResetSession)
		r.Post("/sessions/{id}/analyses/{kind}", h.StartAnalysis)

		r.Post("/feedback", h.SubmitFeedback)

		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	r.NotFound(PageRoutes)
	return r
}
