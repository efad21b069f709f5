package rosterrouter

import (
	"github.com/go-chi/chi/v5"

	rosterhandlers "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/handlers"
)

// AdminRoutes registers the admin roster routes on r. Callers mount r behind
// admin authentication.
func AdminRoutes(r chi.Router, h *rosterhandlers.RosterHandlers) {
	r.Get("/players", h.ListPlayers)
	r.Get("/players/{playerID}", h.GetPlayer)
	r.Delete("/players/{playerID}", h.DeletePlayer)
	r.Put("/dues/{playerID}", h.SetDues)
	r.Post("/suspend/{playerID}", h.Suspend)
	r.Post("/activate/{playerID}", h.Activate)
}

// MemberRoutes registers the member-visible roster routes on r.
func MemberRoutes(r chi.Router, h *rosterhandlers.RosterHandlers) {
	r.Get("/players", h.ListPlayers)
	r.Get("/players/{playerID}", h.GetPlayer)
}
