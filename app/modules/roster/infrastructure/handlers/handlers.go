package rosterhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	rosterservice "github.com/timkene/EKO-FITNESS/app/modules/roster/application"
	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
	"github.com/timkene/EKO-FITNESS/app/shared/httpx"
)

// RosterHandlers exposes the roster admin surface over HTTP.
type RosterHandlers struct {
	service *rosterservice.RosterService
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRosterHandlers creates a new RosterHandlers instance.
func NewRosterHandlers(service *rosterservice.RosterService, logger *slog.Logger, tracer trace.Tracer) *RosterHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func playerIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
}

// ListPlayers returns every registered player.
func (h *RosterHandlers) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.ListPlayers(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, players)
}

// GetPlayer returns a single player.
func (h *RosterHandlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid player ID")
		return
	}

	player, err := h.service.GetPlayer(r.Context(), playerID)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.RespondJSON(w, http.StatusOK, player)
}

type setDuesRequest struct {
	Year        int                 `json:"year"`
	Quarter     int                 `json:"quarter"`
	Status      rosterdb.DuesStatus `json:"status"`
	WaiverDueBy *time.Time          `json:"waiver_due_by,omitempty"`
}

// SetDues creates or updates a player's dues record for a quarter.
func (h *RosterHandlers) SetDues(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid player ID")
		return
	}

	var req setDuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondBadRequest(w, "invalid request body")
		return
	}
	if req.Quarter < 1 || req.Quarter > 4 {
		httpx.RespondBadRequest(w, "quarter must be between 1 and 4")
		return
	}
	switch req.Status {
	case rosterdb.DuesStatusPaid, rosterdb.DuesStatusOwing, rosterdb.DuesStatusWaiver:
	default:
		httpx.RespondBadRequest(w, "invalid dues status")
		return
	}

	due, err := h.service.SetDuesStatus(r.Context(), playerID, req.Year, req.Quarter, req.Status, req.WaiverDueBy)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.RespondJSON(w, http.StatusOK, due)
}

// Suspend marks a player as suspended.
func (h *RosterHandlers) Suspend(w http.ResponseWriter, r *http.Request) {
	h.setSuspension(w, r, true)
}

// Activate clears a player's suspension.
func (h *RosterHandlers) Activate(w http.ResponseWriter, r *http.Request) {
	h.setSuspension(w, r, false)
}

func (h *RosterHandlers) setSuspension(w http.ResponseWriter, r *http.Request, suspended bool) {
	playerID, err := playerIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid player ID")
		return
	}

	if suspended {
		err = h.service.SuspendPlayer(r.Context(), playerID)
	} else {
		err = h.service.ActivatePlayer(r.Context(), playerID)
	}
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}

	player, err := h.service.GetPlayer(r.Context(), playerID)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.RespondJSON(w, http.StatusOK, player)
}

// DeletePlayer removes a player and everything recorded against them.
func (h *RosterHandlers) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid player ID")
		return
	}

	if err := h.service.DeletePlayer(r.Context(), playerID); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// mapNotFound translates the repository sentinel into the domain error kind
// so the HTTP layer renders a structured 404.
func mapNotFound(err error) error {
	if errors.Is(err, rosterdb.ErrNotFound) {
		return domainerr.Wrap(domainerr.KindNotFound, err, "player not found")
	}
	return err
}
