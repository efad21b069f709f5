package ratingservice

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/modules/rating/engine"
	ratingdb "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/repositories"
)

// loadMatchdayInput assembles the engine input from everything recorded
// against a matchday.
func (s *RatingService) loadMatchdayInput(ctx context.Context, db bun.IDB, matchdayID int64) (engine.MatchdayInput, error) {
	var in engine.MatchdayInput

	groups, err := s.matchdays.ListGroups(ctx, db, matchdayID)
	if err != nil {
		return in, err
	}
	for _, g := range groups {
		team := engine.Group{ID: g.ID, Name: g.Name}
		for _, m := range g.Members {
			team.PlayerIDs = append(team.PlayerIDs, m.PlayerID)
		}
		in.Groups = append(in.Groups, team)
	}

	fixtures, err := s.matchdays.ListFixtures(ctx, db, matchdayID)
	if err != nil {
		return in, err
	}
	for _, f := range fixtures {
		in.Fixtures = append(in.Fixtures, engine.Fixture{
			HomeGroupID: f.HomeGroupID,
			AwayGroupID: f.AwayGroupID,
			HomeGoals:   f.HomeGoals,
			AwayGoals:   f.AwayGoals,
			Completed:   f.State == matchdaydb.FixtureStateCompleted,
		})
	}

	goals, err := s.matchdays.ListGoalsByMatchday(ctx, db, matchdayID)
	if err != nil {
		return in, err
	}
	for _, g := range goals {
		in.Goals = append(in.Goals, engine.Goal{
			ScorerPlayerID: g.ScorerPlayerID,
			AssistPlayerID: g.AssistPlayerID,
		})
	}

	cards, err := s.matchdays.ListCardsByMatchday(ctx, db, matchdayID)
	if err != nil {
		return in, err
	}
	for _, c := range cards {
		in.Cards = append(in.Cards, engine.Card{
			PlayerID: c.PlayerID,
			Red:      c.Color == matchdaydb.CardRed,
		})
	}

	attendance, err := s.matchdays.ListAttendance(ctx, db, matchdayID)
	if err != nil {
		return in, err
	}
	in.Present = make(map[int64]bool, len(attendance))
	for _, a := range attendance {
		if a.Present {
			in.Present[a.PlayerID] = true
		}
	}
	return in, nil
}

// SnapshotMatchday freezes the matchday's ratings. Runs inside the caller's
// end-matchday transaction; replaces any earlier snapshot for the matchday.
func (s *RatingService) SnapshotMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error {
	in, err := s.loadMatchdayInput(ctx, db, matchdayID)
	if err != nil {
		return err
	}

	var rows []*ratingdb.PlayerRating
	for _, r := range engine.Ratings(in) {
		if !r.Present {
			continue
		}
		rows = append(rows, &ratingdb.PlayerRating{
			MatchdayID:  matchdayID,
			PlayerID:    r.PlayerID,
			Rating:      r.Rating,
			Goals:       r.Goals,
			Assists:     r.Assists,
			Yellows:     r.Yellows,
			Reds:        r.Reds,
			CleanSheets: r.CleanSheets,
			CreatedAt:   s.now(),
		})
	}

	if err := s.ratings.DeleteByMatchday(ctx, db, matchdayID); err != nil {
		return err
	}
	if err := s.ratings.InsertRatings(ctx, db, rows); err != nil {
		return err
	}

	s.cache.invalidate()
	s.logger.InfoContext(ctx, "matchday ratings frozen",
		slog.Int64("matchday_id", matchdayID),
		slog.Int("players_rated", len(rows)),
	)
	return nil
}

// DiscardMatchday drops the matchday's frozen ratings after a reopen or
// delete. Runs inside the caller's transaction.
func (s *RatingService) DiscardMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error {
	if err := s.ratings.DeleteByMatchday(ctx, db, matchdayID); err != nil {
		return err
	}
	s.cache.invalidate()
	s.logger.InfoContext(ctx, "matchday ratings discarded",
		slog.Int64("matchday_id", matchdayID),
	)
	return nil
}
