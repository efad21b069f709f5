package ratinghandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	authdomain "github.com/timkene/EKO-FITNESS/app/modules/auth/domain"
	ratingservice "github.com/timkene/EKO-FITNESS/app/modules/rating/application"
	"github.com/timkene/EKO-FITNESS/app/shared/httpx"
)

// RatingHandlers exposes matchday ratings and the season leaderboard over
// HTTP.
type RatingHandlers struct {
	service *ratingservice.RatingService
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRatingHandlers creates a new RatingHandlers instance.
func NewRatingHandlers(service *ratingservice.RatingService, logger *slog.Logger, tracer trace.Tracer) *RatingHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func matchdayIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "matchdayID"), 10, 64)
}

// GetMatchdayTable returns the group standings for a matchday.
func (h *RatingHandlers) GetMatchdayTable(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	table, err := h.service.MatchdayTable(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, table)
}

// GetMatchdayRatings returns per-player ratings for a matchday, live while
// play is in progress and frozen once it ends.
func (h *RatingHandlers) GetMatchdayRatings(w http.ResponseWriter, r *http.Request) {
	matchdayID, err := matchdayIDParam(r)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid matchday ID")
		return
	}
	ratings, err := h.service.MatchdayRatings(r.Context(), matchdayID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, ratings)
}

// GetMyStats returns the authenticated member's career stats.
func (h *RatingHandlers) GetMyStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := authdomain.FromContext(r.Context())
	if !ok {
		httpx.RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing credentials"})
		return
	}
	stats, err := h.service.GetPlayerStats(r.Context(), claims.PlayerID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, stats)
}

// GetPlayerStats returns any player's career stats.
func (h *RatingHandlers) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
	if err != nil {
		httpx.RespondBadRequest(w, "invalid player ID")
		return
	}
	stats, err := h.service.GetPlayerStats(r.Context(), playerID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, stats)
}

// GetLeaderboard returns the season leaderboard and its top cuts.
func (h *RatingHandlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.GetLeaderboard(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, board)
}

// GetTopFive returns the five best-rated players of the season.
func (h *RatingHandlers) GetTopFive(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.GetTopFive(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, entries)
}
