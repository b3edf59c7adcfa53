package audithttp

import "github.com/go-chi/chi/v5"

// MountRoutes attaches audit routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/audit", h.Timeline)
}
