package traininghttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers the transition endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/teachers/register", h.Register)
	r.Route("/placements/{placementID}", func(r chi.Router) {
		r.Post("/training-mode", h.SwitchTrainingMode)
		r.Post("/mentor", h.SwitchMentor)
		r.Post("/lead-provider", h.ChangeLeadProvider)
		r.Post("/defer", h.DeferTraining)
		r.Post("/resume", h.ResumeTraining)
		r.Post("/withdraw", h.WithdrawTraining)
	})
}
