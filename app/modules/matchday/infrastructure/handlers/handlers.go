package matchdayhandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	authdomain "github.com/timkene/EKO-FITNESS/app/modules/auth/domain"
	matchdayservice "github.com/timkene/EKO-FITNESS/app/modules/matchday/application"
	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/httpx"
)

// MatchdayHandlers exposes the matchday lifecycle over HTTP.
type MatchdayHandlers struct {
	service *matchdayservice.MatchdayService
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewMatchdayHandlers creates a new MatchdayHandlers instance.
func NewMatchdayHandlers(service *matchdayservice.MatchdayService, logger *slog.Logger, tracer trace.Tracer) *MatchdayHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchdayHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func matchdayIDParam(r *http.Request) (int64, error) {
	return idParam(r, "matchdayID")
}

// ---------- Lifecycle ----------

type createMatchdayRequest struct {
	PlayDate string `json:"play_date"`
	Location string `json:"location"`
}

// CreateMatchday opens a new matchday for voting.
func (h *MatchdayHandlers) CreateMatchday(w http.ResponseWriter, r *http.Request) {
	var req createMatchdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	playDate, err := time.Parse("2006-01-02", req.PlayDate)
	if err != nil {
		httpx.RespondBadRequest(w, "play_date must be YYYY-MM-DD")
		return
	}

	matchday, err := h.service.CreateMatchday(r.Context(), playDate, req.Location)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, matchday)
}

// transition routes the shared shape of the lifecycle POST endpoints.
func (h *MatchdayHandlers) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error)) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	matchday, err := fn(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, matchday)
}

// CloseVoting moves the matchday into admin review.
func (h *MatchdayHandlers) CloseVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.CloseVoting)
}

// ReopenVoting returns the matchday to the voting stage.
func (h *MatchdayHandlers) ReopenVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ReopenVoting)
}

// Approve accepts the voter list.
func (h *MatchdayHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Approve)
}

// Reject discards the matchday after review.
func (h *MatchdayHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reject)
}

// EndMatchday freezes the matchday and its ratings.
func (h *MatchdayHandlers) EndMatchday(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.EndMatchday)
}

// ReopenMatchday unfreezes an ended matchday.
func (h *MatchdayHandlers) ReopenMatchday(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ReopenMatchday)
}

// DeleteMatchday removes a matchday and everything recorded against it.
func (h *MatchdayHandlers) DeleteMatchday(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	if err := h.service.DeleteMatchday(r.Context(), matchdayID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListMatchdays returns all matchdays, most recent first.
func (h *MatchdayHandlers) ListMatchdays(w http.ResponseWriter, r *http.Request) {
	matchdays, err := h.service.ListMatchdays(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, matchdays)
}

// GetMatchday returns a member's view of a matchday: unpublished groups and
// fixtures stay hidden.
func (h *MatchdayHandlers) GetMatchday(w http.ResponseWriter, r *http.Request) {
	h.snapshot(w, r, false)
}

// GetMatchdayAdmin returns the full view including unpublished data.
func (h *MatchdayHandlers) GetMatchdayAdmin(w http.ResponseWriter, r *http.Request) {
	h.snapshot(w, r, true)
}

func (h *MatchdayHandlers) snapshot(w http.ResponseWriter, r *http.Request, includeUnpublished bool) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	snapshot, err := h.service.GetSnapshot(r.Context(), matchdayID, includeUnpublished)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, snapshot)
}

// ---------- Voting ----------

// Vote records the authenticated member's availability vote.
func (h *MatchdayHandlers) Vote(w http.ResponseWriter, r *http.Request) {
	claims, ok := authdomain.FromContext(r.Context())
	if !ok {
		httpx.RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing credentials"})
		return
	}
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	if err := h.service.Vote(r.Context(), matchdayID, claims.PlayerID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "voted"})
}

// AdminAddVote records a vote on a player's behalf.
func (h *MatchdayHandlers) AdminAddVote(w http.ResponseWriter, r *http.Request) {
	matchdayID, playerID, ok := h.votePathIDs(w, r)
	if !ok {
		return
	}
	if err := h.service.AdminAddVote(r.Context(), matchdayID, playerID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "voted"})
}

// AdminRemoveVote withdraws a player's vote.
func (h *MatchdayHandlers) AdminRemoveVote(w http.ResponseWriter, r *http.Request) {
	matchdayID, playerID, ok := h.votePathIDs(w, r)
	if !ok {
		return
	}
	if err := h.service.AdminRemoveVote(r.Context(), matchdayID, playerID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *MatchdayHandlers) votePathIDs(w http.ResponseWriter, r *http.Request) (matchdayID, playerID int64, ok bool) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return 0, 0, false
	}
	playerID, err = idParam(r, "playerID")
	if err != nil {
		httpx.RespondBadRequest(w, "invalid player ID")
		return 0, 0, false
	}
	return matchdayID, playerID, true
}

// ListVotes returns the recorded votes for a matchday.
func (h *MatchdayHandlers) ListVotes(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	votes, err := h.service.ListVotes(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, votes)
}

// AdminVoteAll votes every currently eligible member in.
func (h *MatchdayHandlers) AdminVoteAll(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	added, err := h.service.AdminVoteAll(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]int{"votes_added": added})
}

// ---------- Groups ----------

// GenerateGroups partitions the voters into balanced groups.
func (h *MatchdayHandlers) GenerateGroups(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	groups, err := h.service.GenerateGroups(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, groups)
}

// PublishGroups freezes the partition for member viewing.
func (h *MatchdayHandlers) PublishGroups(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.PublishGroups)
}

// UnpublishGroups lifts the freeze so groups can be regenerated.
func (h *MatchdayHandlers) UnpublishGroups(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.UnpublishGroups)
}

// MoveMember reassigns one player to another group.
func (h *MatchdayHandlers) MoveMember(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	var move matchdayservice.Move
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	if err := h.service.MoveMember(r.Context(), matchdayID, move); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "moved"})
}

type moveBatchRequest struct {
	Moves []matchdayservice.Move `json:"moves"`
}

// MoveMembersBatch applies several reassignments atomically.
func (h *MatchdayHandlers) MoveMembersBatch(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	var req moveBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	if len(req.Moves) == 0 {
		httpx.RespondBadRequest(w, "moves must not be empty")
		return
	}
	if err := h.service.MoveMembers(r.Context(), matchdayID, req.Moves); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]int{"moved": len(req.Moves)})
}

// ListGroups returns the current partition regardless of publication.
func (h *MatchdayHandlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	groups, err := h.service.ListGroups(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, groups)
}

// ---------- Fixtures ----------

// GenerateFixtures builds the round-robin schedule.
func (h *MatchdayHandlers) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	fixtures, err := h.service.GenerateFixtures(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, fixtures)
}

// PublishFixtures makes the schedule visible to members.
func (h *MatchdayHandlers) PublishFixtures(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.PublishFixtures)
}

func (h *MatchdayHandlers) fixturePathIDs(w http.ResponseWriter, r *http.Request) (matchdayID, fixtureID int64, ok bool) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return 0, 0, false
	}
	fixtureID, err = idParam(r, "fixtureID")
	if err != nil {
		httpx.RespondBadRequest(w, "invalid fixture ID")
		return 0, 0, false
	}
	return matchdayID, fixtureID, true
}

// StartFixture moves a pending fixture into play.
func (h *MatchdayHandlers) StartFixture(w http.ResponseWriter, r *http.Request) {
	matchdayID, fixtureID, ok := h.fixturePathIDs(w, r)
	if !ok {
		return
	}
	fixture, err := h.service.StartFixture(r.Context(), matchdayID, fixtureID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, fixture)
}

// EndFixture completes a fixture in play.
func (h *MatchdayHandlers) EndFixture(w http.ResponseWriter, r *http.Request) {
	matchdayID, fixtureID, ok := h.fixturePathIDs(w, r)
	if !ok {
		return
	}
	fixture, err := h.service.EndFixture(r.Context(), matchdayID, fixtureID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, fixture)
}

// ListFixtures returns the schedule regardless of publication.
func (h *MatchdayHandlers) ListFixtures(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	fixtures, err := h.service.ListFixtures(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, fixtures)
}

// ---------- Goals & cards ----------

// AddGoal records a goal against a fixture.
func (h *MatchdayHandlers) AddGoal(w http.ResponseWriter, r *http.Request) {
	matchdayID, fixtureID, ok := h.fixturePathIDs(w, r)
	if !ok {
		return
	}
	var input matchdayservice.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	goal, err := h.service.AddGoal(r.Context(), matchdayID, fixtureID, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, goal)
}

// RemoveGoal deletes a recorded goal.
func (h *MatchdayHandlers) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	matchdayID, fixtureID, ok := h.fixturePathIDs(w, r)
	if !ok {
		return
	}
	goalID, err := idParam(r, "goalID")
	if err != nil {
		httpx.RespondBadRequest(w, "invalid goal ID")
		return
	}
	if err := h.service.RemoveGoal(r.Context(), matchdayID, fixtureID, goalID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// AddCard issues a disciplinary card.
func (h *MatchdayHandlers) AddCard(w http.ResponseWriter, r *http.Request) {
	matchdayID, fixtureID, ok := h.fixturePathIDs(w, r)
	if !ok {
		return
	}
	var input matchdayservice.CardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	card, err := h.service.AddCard(r.Context(), matchdayID, fixtureID, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, card)
}

// ListGoals returns a fixture's recorded goals in scoring order.
func (h *MatchdayHandlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	matchdayID, fixtureID, ok := h.fixturePathIDs(w, r)
	if !ok {
		return
	}
	goals, err := h.service.ListGoals(r.Context(), matchdayID, fixtureID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, goals)
}

// ListCards returns a fixture's disciplinary record.
func (h *MatchdayHandlers) ListCards(w http.ResponseWriter, r *http.Request) {
	matchdayID, fixtureID, ok := h.fixturePathIDs(w, r)
	if !ok {
		return
	}
	cards, err := h.service.ListCards(r.Context(), matchdayID, fixtureID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, cards)
}

// ---------- Attendance ----------

// SetAttendance toggles one grouped player's presence.
func (h *MatchdayHandlers) SetAttendance(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	var mark matchdayservice.AttendanceMark
	if err := json.NewDecoder(r.Body).Decode(&mark); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	if err := h.service.SetAttendance(r.Context(), matchdayID, mark); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "marked"})
}

type attendanceBulkRequest struct {
	Marks []matchdayservice.AttendanceMark `json:"marks"`
}

// SetAttendanceBulk toggles presence for several players atomically.
func (h *MatchdayHandlers) SetAttendanceBulk(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	var req attendanceBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	if len(req.Marks) == 0 {
		httpx.RespondBadRequest(w, "marks must not be empty")
		return
	}
	if err := h.service.SetAttendanceBulk(r.Context(), matchdayID, req.Marks); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]int{"marked": len(req.Marks)})
}

// GetAttendanceSummary lists grouped players by presence.
func (h *MatchdayHandlers) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	summary, err := h.service.GetAttendanceSummary(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, summary)
}
