package matchdayservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

// GoalInput describes a goal to record. A nil ScorerPlayerID credits the goal
// to guests, in which case IsHomeGoal must say which side it counts for; for
// rostered scorers the side comes from their group.
type GoalInput struct {
	ScorerPlayerID *int64 `json:"scorer_player_id,omitempty"`
	AssistPlayerID *int64 `json:"assist_player_id,omitempty"`
	IsHomeGoal     *bool  `json:"is_home_goal,omitempty"`
}

// CardInput describes a disciplinary card to record.
type CardInput struct {
	PlayerID int64                `json:"player_id"`
	Color    matchdaydb.CardColor `json:"color"`
}

// AttendanceMark toggles one grouped player's presence.
type AttendanceMark struct {
	PlayerID int64 `json:"player_id"`
	Present  bool  `json:"present"`
}

// AttendanceSummary splits a matchday's grouped players by presence.
type AttendanceSummary struct {
	MatchdayID int64   `json:"matchday_id"`
	Present    []int64 `json:"present"`
	Absent     []int64 `json:"absent"`
}

// fixtureSides maps every grouped player on a fixture to their side.
func fixtureSides(fixture *matchdaydb.Fixture, members []matchdaydb.GroupMember) map[int64]bool {
	sides := make(map[int64]bool)
	for _, m := range members {
		switch m.GroupID {
		case fixture.HomeGroupID:
			sides[m.PlayerID] = true
		case fixture.AwayGroupID:
			sides[m.PlayerID] = false
		}
	}
	return sides
}

// presentSet collects the players marked present.
func presentSet(records []matchdaydb.Attendance) map[int64]bool {
	present := make(map[int64]bool, len(records))
	for _, a := range records {
		if a.Present {
			present[a.PlayerID] = true
		}
	}
	return present
}

// recomputeScore rebuilds a fixture's score from its goal rows.
func (s *MatchdayService) recomputeScore(ctx context.Context, db bun.IDB, fixture *matchdaydb.Fixture) error {
	goals, err := s.repo.ListGoalsByFixture(ctx, db, fixture.ID)
	if err != nil {
		return err
	}
	home, away := 0, 0
	for _, g := range goals {
		if g.IsHomeGoal {
			home++
		} else {
			away++
		}
	}
	fixture.HomeGoals = home
	fixture.AwayGoals = away
	return s.repo.UpdateFixture(ctx, db, fixture)
}

// AddGoal records a goal against a fixture and updates its score. Rostered
// scorers and assisters must be on the fixture and marked present.
func (s *MatchdayService) AddGoal(ctx context.Context, matchdayID, fixtureID int64, input GoalInput) (*matchdaydb.Goal, error) {
	var goal *matchdaydb.Goal
	err := s.update(ctx, "AddGoal", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		fixture, err := s.getFixture(ctx, db, matchdayID, fixtureID)
		if err != nil {
			return err
		}
		if fixture.State == matchdaydb.FixtureStatePending {
			return domainerr.New(domainerr.KindInvalidTransition, "fixture %d has not started", fixtureID)
		}

		members, err := s.repo.ListMembers(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		sides := fixtureSides(fixture, members)
		attendance, err := s.repo.ListAttendance(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		present := presentSet(attendance)

		var isHome bool
		switch {
		case input.ScorerPlayerID != nil:
			scorerID := *input.ScorerPlayerID
			side, onFixture := sides[scorerID]
			if !onFixture {
				return domainerr.New(domainerr.KindInvalidMove, "player %d is not on fixture %d", scorerID, fixtureID)
			}
			if !present[scorerID] {
				return domainerr.New(domainerr.KindNotPresent, "player %d is not marked present", scorerID)
			}
			isHome = side
		case input.IsHomeGoal != nil:
			isHome = *input.IsHomeGoal
		default:
			return domainerr.New(domainerr.KindInvalidMove, "guest goals must name a side")
		}

		if input.AssistPlayerID != nil {
			assistID := *input.AssistPlayerID
			if input.ScorerPlayerID != nil && assistID == *input.ScorerPlayerID {
				return domainerr.New(domainerr.KindInvalidMove, "player %d cannot assist their own goal", assistID)
			}
			side, onFixture := sides[assistID]
			if !onFixture {
				return domainerr.New(domainerr.KindInvalidMove, "player %d is not on fixture %d", assistID, fixtureID)
			}
			if side != isHome {
				return domainerr.New(domainerr.KindInvalidMove, "player %d is on the opposing side", assistID)
			}
			if !present[assistID] {
				return domainerr.New(domainerr.KindNotPresent, "player %d is not marked present", assistID)
			}
		}

		goal = &matchdaydb.Goal{
			FixtureID:      fixtureID,
			MatchdayID:     matchdayID,
			ScorerPlayerID: input.ScorerPlayerID,
			AssistPlayerID: input.AssistPlayerID,
			IsHomeGoal:     isHome,
			CreatedAt:      s.now(),
		}
		if err := s.repo.InsertGoal(ctx, db, goal); err != nil {
			return err
		}
		return s.recomputeScore(ctx, db, fixture)
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// RemoveGoal deletes a recorded goal and updates the fixture score.
func (s *MatchdayService) RemoveGoal(ctx context.Context, matchdayID, fixtureID, goalID int64) error {
	return s.update(ctx, "RemoveGoal", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		fixture, err := s.getFixture(ctx, db, matchdayID, fixtureID)
		if err != nil {
			return err
		}
		goal, err := s.repo.GetGoal(ctx, db, goalID)
		if err != nil {
			if errors.Is(err, matchdaydb.ErrNotFound) {
				return domainerr.New(domainerr.KindNotFound, "goal %d not found", goalID)
			}
			return err
		}
		if goal.FixtureID != fixtureID {
			return domainerr.New(domainerr.KindNotFound, "goal %d does not belong to fixture %d", goalID, fixtureID)
		}
		if err := s.repo.DeleteGoal(ctx, db, goalID); err != nil {
			return err
		}
		return s.recomputeScore(ctx, db, fixture)
	})
}

// AddCard records a disciplinary card. Cards are append-only and can only be
// issued while the fixture is in play.
func (s *MatchdayService) AddCard(ctx context.Context, matchdayID, fixtureID int64, input CardInput) (*matchdaydb.Card, error) {
	var card *matchdaydb.Card
	err := s.update(ctx, "AddCard", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		fixture, err := s.getFixture(ctx, db, matchdayID, fixtureID)
		if err != nil {
			return err
		}
		if fixture.State != matchdaydb.FixtureStateInProgress {
			return domainerr.New(domainerr.KindInvalidTransition, "fixture %d is not in play", fixtureID)
		}
		if input.Color != matchdaydb.CardYellow && input.Color != matchdaydb.CardRed {
			return domainerr.New(domainerr.KindInvalidMove, "unknown card color %q", input.Color)
		}

		members, err := s.repo.ListMembers(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if _, onFixture := fixtureSides(fixture, members)[input.PlayerID]; !onFixture {
			return domainerr.New(domainerr.KindInvalidMove, "player %d is not on fixture %d", input.PlayerID, fixtureID)
		}
		attendance, err := s.repo.ListAttendance(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if !presentSet(attendance)[input.PlayerID] {
			return domainerr.New(domainerr.KindNotPresent, "player %d is not marked present", input.PlayerID)
		}

		card = &matchdaydb.Card{
			FixtureID:  fixtureID,
			MatchdayID: matchdayID,
			PlayerID:   input.PlayerID,
			Color:      input.Color,
			IssuedAt:   s.now(),
		}
		return s.repo.InsertCard(ctx, db, card)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// SetAttendance toggles a grouped player's presence.
func (s *MatchdayService) SetAttendance(ctx context.Context, matchdayID int64, mark AttendanceMark) error {
	return s.SetAttendanceBulk(ctx, matchdayID, []AttendanceMark{mark})
}

// SetAttendanceBulk toggles presence for several players atomically. Every
// player must be grouped on the matchday or the whole batch is rejected.
func (s *MatchdayService) SetAttendanceBulk(ctx context.Context, matchdayID int64, marks []AttendanceMark) error {
	return s.update(ctx, "SetAttendanceBulk", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}

		members, err := s.repo.ListMembers(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		grouped := make(map[int64]struct{}, len(members))
		for _, m := range members {
			grouped[m.PlayerID] = struct{}{}
		}
		for _, mark := range marks {
			if _, ok := grouped[mark.PlayerID]; !ok {
				return domainerr.New(domainerr.KindInvalidMove, "player %d is not grouped on matchday %d", mark.PlayerID, matchdayID)
			}
		}

		for _, mark := range marks {
			err := s.repo.UpsertAttendance(ctx, db, &matchdaydb.Attendance{
				MatchdayID: matchdayID,
				PlayerID:   mark.PlayerID,
				Present:    mark.Present,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetAttendanceSummary lists grouped players by presence. Players never
// marked count as absent.
func (s *MatchdayService) GetAttendanceSummary(ctx context.Context, matchdayID int64) (*AttendanceSummary, error) {
	summary := &AttendanceSummary{MatchdayID: matchdayID, Present: []int64{}, Absent: []int64{}}
	err := s.read(ctx, "GetAttendanceSummary", matchdayID, func(ctx context.Context, db bun.IDB) error {
		if _, err := s.getMatchday(ctx, db, matchdayID); err != nil {
			return err
		}
		members, err := s.repo.ListMembers(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		attendance, err := s.repo.ListAttendance(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		present := presentSet(attendance)
		for _, m := range members {
			if present[m.PlayerID] {
				summary.Present = append(summary.Present, m.PlayerID)
			} else {
				summary.Absent = append(summary.Absent, m.PlayerID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ListGoals returns the goals recorded against a fixture.
func (s *MatchdayService) ListGoals(ctx context.Context, matchdayID, fixtureID int64) ([]matchdaydb.Goal, error) {
	var goals []matchdaydb.Goal
	err := s.read(ctx, "ListGoals", matchdayID, func(ctx context.Context, db bun.IDB) error {
		if _, err := s.getFixture(ctx, db, matchdayID, fixtureID); err != nil {
			return err
		}
		var err error
		goals, err = s.repo.ListGoalsByFixture(ctx, db, fixtureID)
		return err
	})
	return goals, err
}

// ListCards returns the cards issued during a fixture.
func (s *MatchdayService) ListCards(ctx context.Context, matchdayID, fixtureID int64) ([]matchdaydb.Card, error) {
	var cards []matchdaydb.Card
	err := s.read(ctx, "ListCards", matchdayID, func(ctx context.Context, db bun.IDB) error {
		if _, err := s.getFixture(ctx, db, matchdayID, fixtureID); err != nil {
			return err
		}
		var err error
		cards, err = s.repo.ListCardsByFixture(ctx, db, fixtureID)
		return err
	})
	return cards, err
}
