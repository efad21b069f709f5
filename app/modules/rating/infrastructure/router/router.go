package ratingrouter

import (
	"github.com/go-chi/chi/v5"

	ratinghandlers "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/handlers"
)

// MemberRoutes registers the member-visible rating routes on r.
func MemberRoutes(r chi.Router, h *ratinghandlers.RatingHandlers) {
	r.Get("/matchdays/{matchdayID}/table", h.GetMatchdayTable)
	r.Get("/matchdays/{matchdayID}/player-ratings", h.GetMatchdayRatings)
	r.Get("/member/stats", h.GetMyStats)
	r.Get("/member/leaderboard", h.GetLeaderboard)
	r.Get("/member/top-five-ballers", h.GetTopFive)
}

// AdminRoutes registers the admin rating routes on r.
func AdminRoutes(r chi.Router, h *ratinghandlers.RatingHandlers) {
	r.Get("/matchdays/{matchdayID}/table", h.GetMatchdayTable)
	r.Get("/matchdays/{matchdayID}/player-ratings", h.GetMatchdayRatings)
	r.Get("/players/{playerID}/stats", h.GetPlayerStats)
	r.Get("/leaderboard", h.GetLeaderboard)
}
