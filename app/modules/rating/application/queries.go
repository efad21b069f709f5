package ratingservice

import (
	"context"
	"errors"
	"sort"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/modules/rating/engine"
	ratingdb "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

// LeaderboardEntry is one player's season line on the leaderboard.
type LeaderboardEntry struct {
	PlayerID         int64   `json:"player_id"`
	BallerName       string  `json:"baller_name"`
	JerseyNumber     int     `json:"jersey_number"`
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	Yellows          int     `json:"yellows"`
	Reds             int     `json:"reds"`
	CleanSheets      int     `json:"clean_sheets"`
	MatchdaysPresent int     `json:"matchdays_present"`
	AverageRating    float64 `json:"average_rating"`
	StarRating       int     `json:"star_rating"`
}

// Leaderboard is the season table plus its spotlight cuts.
type Leaderboard struct {
	Entries        []LeaderboardEntry `json:"leaderboard"`
	TopGoals       []LeaderboardEntry `json:"top_goals"`
	TopAssists     []LeaderboardEntry `json:"top_assists"`
	TopPresent     []LeaderboardEntry `json:"top_present"`
	TopCleanSheets []LeaderboardEntry `json:"top_clean_sheets"`
}

// PlayerStats is one player's career view.
type PlayerStats struct {
	Stats           ratingdb.CareerStats   `json:"stats"`
	MatchdayRatings []ratingdb.PlayerRating `json:"matchday_ratings"`
	GlobalRank      int                    `json:"global_rank,omitempty"`
	StarRating      int                    `json:"star_rating"`
}

const topCut = 20

func (s *RatingService) getMatchday(ctx context.Context, db bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error) {
	matchday, err := s.matchdays.GetByID(ctx, db, matchdayID)
	if err != nil {
		if errors.Is(err, matchdaydb.ErrNotFound) {
			return nil, domainerr.New(domainerr.KindNotFound, "matchday %d not found", matchdayID)
		}
		return nil, err
	}
	return matchday, nil
}

// MatchdayTable computes the league table for a matchday from its completed
// fixtures.
func (s *RatingService) MatchdayTable(ctx context.Context, matchdayID int64) ([]engine.TableRow, error) {
	var table []engine.TableRow
	err := s.read(ctx, "MatchdayTable", func(ctx context.Context, db bun.IDB) error {
		if _, err := s.getMatchday(ctx, db, matchdayID); err != nil {
			return err
		}
		in, err := s.loadMatchdayInput(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		table = engine.Table(in.Groups, in.Fixtures)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// MatchdayRatings returns per-player ratings for a matchday: the frozen
// snapshot once it has ended, a live recomputation before that.
func (s *RatingService) MatchdayRatings(ctx context.Context, matchdayID int64) ([]ratingdb.PlayerRating, error) {
	var ratings []ratingdb.PlayerRating
	err := s.read(ctx, "MatchdayRatings", func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if matchday.Ended {
			ratings, err = s.ratings.ListByMatchday(ctx, db, matchdayID)
			return err
		}

		in, err := s.loadMatchdayInput(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		for _, r := range engine.Ratings(in) {
			if !r.Present {
				continue
			}
			ratings = append(ratings, ratingdb.PlayerRating{
				MatchdayID:  matchdayID,
				PlayerID:    r.PlayerID,
				Rating:      r.Rating,
				Goals:       r.Goals,
				Assists:     r.Assists,
				Yellows:     r.Yellows,
				Reds:        r.Reds,
				CleanSheets: r.CleanSheets,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ratedIDs extracts player IDs from career stats already sorted by average
// rating descending.
func ratedIDs(stats []ratingdb.CareerStats) []int64 {
	ids := make([]int64, len(stats))
	for i, st := range stats {
		ids[i] = st.PlayerID
	}
	return ids
}

// GetPlayerStats returns a player's career stats, per-matchday ratings,
// global rank, and star band.
func (s *RatingService) GetPlayerStats(ctx context.Context, playerID int64) (*PlayerStats, error) {
	out := &PlayerStats{}
	err := s.read(ctx, "GetPlayerStats", func(ctx context.Context, db bun.IDB) error {
		stats, err := s.ratings.CareerStats(ctx, db, playerID)
		if err != nil {
			return err
		}
		out.Stats = *stats

		out.MatchdayRatings, err = s.ratings.ListByPlayer(ctx, db, playerID)
		if err != nil {
			return err
		}

		all, err := s.ratings.ListCareerStats(ctx, db)
		if err != nil {
			return err
		}
		for i, st := range all {
			if st.PlayerID == playerID {
				out.GlobalRank = i + 1
				break
			}
		}
		out.StarRating = engine.Stars(ratedIDs(all))[playerID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetLeaderboard returns the season leaderboard, serving a cached copy
// within the TTL. Snapshots and discards invalidate the cache.
func (s *RatingService) GetLeaderboard(ctx context.Context) (*Leaderboard, error) {
	if cached := s.cache.get(s.now()); cached != nil {
		return cached, nil
	}

	var board *Leaderboard
	err := s.read(ctx, "GetLeaderboard", func(ctx context.Context, db bun.IDB) error {
		var err error
		board, err = s.buildLeaderboard(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.set(board, s.now().Add(s.cacheTTL))
	return board, nil
}

func (s *RatingService) buildLeaderboard(ctx context.Context, db bun.IDB) (*Leaderboard, error) {
	players, err := s.players.ListApprovedPlayers(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.ratings.ListCareerStats(ctx, db)
	if err != nil {
		return nil, err
	}
	statsBy := make(map[int64]ratingdb.CareerStats, len(stats))
	for _, st := range stats {
		statsBy[st.PlayerID] = st
	}
	stars := engine.Stars(ratedIDs(stats))

	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		st := statsBy[p.ID]
		entries = append(entries, LeaderboardEntry{
			PlayerID:         p.ID,
			BallerName:       p.BallerName,
			JerseyNumber:     p.JerseyNumber,
			Goals:            st.Goals,
			Assists:          st.Assists,
			Yellows:          st.Yellows,
			Reds:             st.Reds,
			CleanSheets:      st.CleanSheets,
			MatchdaysPresent: st.MatchdaysPresent,
			AverageRating:    st.AverageRating,
			StarRating:       stars[p.ID],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AverageRating != entries[j].AverageRating {
			return entries[i].AverageRating > entries[j].AverageRating
		}
		if entries[i].Goals != entries[j].Goals {
			return entries[i].Goals > entries[j].Goals
		}
		if entries[i].Assists != entries[j].Assists {
			return entries[i].Assists > entries[j].Assists
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	return &Leaderboard{
		Entries:        entries,
		TopGoals:       topBy(entries, func(e LeaderboardEntry) int { return e.Goals }),
		TopAssists:     topBy(entries, func(e LeaderboardEntry) int { return e.Assists }),
		TopPresent:     topBy(entries, func(e LeaderboardEntry) int { return e.MatchdaysPresent }),
		TopCleanSheets: topBy(entries, func(e LeaderboardEntry) int { return e.CleanSheets }),
	}, nil
}

// topBy re-sorts a copy of the entries by the given stat, keeping the
// leaderboard order as tiebreak, and cuts it to the spotlight size.
func topBy(entries []LeaderboardEntry, stat func(LeaderboardEntry) int) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return stat(out[i]) > stat(out[j])
	})
	if len(out) > topCut {
		out = out[:topCut]
	}
	return out
}

// GetTopFive returns the five best rated players for the dashboard
// spotlight.
func (s *RatingService) GetTopFive(ctx context.Context) ([]LeaderboardEntry, error) {
	board, err := s.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	var rated []LeaderboardEntry
	for _, e := range board.Entries {
		if e.MatchdaysPresent == 0 {
			continue
		}
		rated = append(rated, e)
		if len(rated) == 5 {
			break
		}
	}
	return rated, nil
}
