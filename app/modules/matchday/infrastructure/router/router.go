package matchdayrouter

import (
	"github.com/go-chi/chi/v5"

	matchdayhandlers "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/handlers"
)

// AdminRoutes registers the admin matchday routes on r. Callers mount r
// behind admin authentication.
func AdminRoutes(r chi.Router, h *matchdayhandlers.MatchdayHandlers) {
	r.Post("/matchdays", h.CreateMatchday)
	r.Get("/matchdays", h.ListMatchdays)
	r.Get("/matchdays/{matchdayID}", h.GetMatchdayAdmin)
	r.Delete("/matchdays/{matchdayID}", h.DeleteMatchday)

	r.Post("/matchdays/{matchdayID}/close-voting", h.CloseVoting)
	r.Post("/matchdays/{matchdayID}/reopen-voting", h.ReopenVoting)
	r.Post("/matchdays/{matchdayID}/approve", h.Approve)
	r.Post("/matchdays/{matchdayID}/reject", h.Reject)
	r.Post("/matchdays/{matchdayID}/end", h.EndMatchday)
	r.Post("/matchdays/{matchdayID}/reopen", h.ReopenMatchday)

	r.Get("/matchdays/{matchdayID}/votes", h.ListVotes)
	r.Post("/matchdays/{matchdayID}/votes/all", h.AdminVoteAll)
	r.Post("/matchdays/{matchdayID}/votes/{playerID}", h.AdminAddVote)
	r.Delete("/matchdays/{matchdayID}/votes/{playerID}", h.AdminRemoveVote)

	r.Get("/matchdays/{matchdayID}/groups", h.ListGroups)
	r.Post("/matchdays/{matchdayID}/groups/generate", h.GenerateGroups)
	r.Post("/matchdays/{matchdayID}/groups/regenerate", h.GenerateGroups)
	r.Post("/matchdays/{matchdayID}/groups/publish", h.PublishGroups)
	r.Post("/matchdays/{matchdayID}/groups/unpublish", h.UnpublishGroups)
	r.Post("/matchdays/{matchdayID}/groups/move", h.MoveMember)
	r.Post("/matchdays/{matchdayID}/groups/move-batch", h.MoveMembersBatch)

	r.Get("/matchdays/{matchdayID}/fixtures", h.ListFixtures)
	r.Post("/matchdays/{matchdayID}/fixtures/generate", h.GenerateFixtures)
	r.Post("/matchdays/{matchdayID}/fixtures/publish", h.PublishFixtures)
	r.Post("/matchdays/{matchdayID}/fixtures/{fixtureID}/start", h.StartFixture)
	r.Post("/matchdays/{matchdayID}/fixtures/{fixtureID}/end", h.EndFixture)

	r.Get("/matchdays/{matchdayID}/fixtures/{fixtureID}/goals", h.ListGoals)
	r.Post("/matchdays/{matchdayID}/fixtures/{fixtureID}/goals", h.AddGoal)
	r.Delete("/matchdays/{matchdayID}/fixtures/{fixtureID}/goals/{goalID}", h.RemoveGoal)
	r.Get("/matchdays/{matchdayID}/fixtures/{fixtureID}/cards", h.ListCards)
	r.Post("/matchdays/{matchdayID}/fixtures/{fixtureID}/cards", h.AddCard)

	r.Put("/matchdays/{matchdayID}/attendance", h.SetAttendance)
	r.Put("/matchdays/{matchdayID}/attendance/bulk", h.SetAttendanceBulk)
	r.Get("/matchdays/{matchdayID}/attendance/summary", h.GetAttendanceSummary)
}

// MemberRoutes registers the member-visible matchday routes on r. Members see
// only published groups and fixtures.
func MemberRoutes(r chi.Router, h *matchdayhandlers.MatchdayHandlers) {
	r.Get("/matchdays", h.ListMatchdays)
	r.Get("/matchdays/{matchdayID}", h.GetMatchday)
	r.Post("/matchdays/{matchdayID}/vote", h.Vote)
}
