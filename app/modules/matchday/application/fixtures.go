package matchdayservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

// getFixture loads a fixture and verifies it belongs to the matchday.
func (s *MatchdayService) getFixture(ctx context.Context, db bun.IDB, matchdayID, fixtureID int64) (*matchdaydb.Fixture, error) {
	fixture, err := s.repo.GetFixture(ctx, db, fixtureID)
	if err != nil {
		if errors.Is(err, matchdaydb.ErrNotFound) {
			return nil, domainerr.New(domainerr.KindNotFound, "fixture %d not found", fixtureID)
		}
		return nil, err
	}
	if fixture.MatchdayID != matchdayID {
		return nil, domainerr.New(domainerr.KindNotFound, "fixture %d does not belong to matchday %d", fixtureID, matchdayID)
	}
	return fixture, nil
}

// GenerateFixtures creates a round-robin schedule: one fixture for every
// unordered pair of published groups. Runs once per matchday.
func (s *MatchdayService) GenerateFixtures(ctx context.Context, matchdayID int64) ([]matchdaydb.Fixture, error) {
	var fixtures []matchdaydb.Fixture
	err := s.update(ctx, "GenerateFixtures", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		if matchday.State != matchdaydb.StateApproved {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot generate fixtures from state %q", matchday.State)
		}
		if !matchday.GroupsPublished {
			return domainerr.New(domainerr.KindConflictingState, "groups for matchday %d are not published", matchdayID)
		}
		existing, err := s.repo.CountFixtures(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return domainerr.New(domainerr.KindAlreadyGenerated, "fixtures for matchday %d already exist", matchdayID)
		}

		groups, err := s.repo.ListGroups(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if len(groups) < 2 {
			return domainerr.New(domainerr.KindConflictingState, "matchday %d needs at least two groups", matchdayID)
		}

		var schedule []*matchdaydb.Fixture
		for i := 0; i < len(groups); i++ {
			for j := i + 1; j < len(groups); j++ {
				schedule = append(schedule, &matchdaydb.Fixture{
					MatchdayID:  matchdayID,
					HomeGroupID: groups[i].ID,
					AwayGroupID: groups[j].ID,
					State:       matchdaydb.FixtureStatePending,
				})
			}
		}
		if err := s.repo.InsertFixtures(ctx, db, schedule); err != nil {
			return err
		}

		fixtures, err = s.repo.ListFixtures(ctx, db, matchdayID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fixtures, nil
}

// PublishFixtures makes the schedule visible to members.
func (s *MatchdayService) PublishFixtures(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.update(ctx, "PublishFixtures", matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		count, err := s.repo.CountFixtures(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if count == 0 {
			return domainerr.New(domainerr.KindConflictingState, "matchday %d has no fixtures to publish", matchdayID)
		}
		matchday.FixturesPublished = true
		return s.repo.Update(ctx, db, matchday)
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// StartFixture moves a pending fixture into play.
func (s *MatchdayService) StartFixture(ctx context.Context, matchdayID, fixtureID int64) (*matchdaydb.Fixture, error) {
	var fixture *matchdaydb.Fixture
	err := s.update(ctx, "StartFixture", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		fixture, err = s.getFixture(ctx, db, matchdayID, fixtureID)
		if err != nil {
			return err
		}
		if fixture.State != matchdaydb.FixtureStatePending {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot start fixture %d from state %q", fixtureID, fixture.State)
		}
		now := s.now()
		fixture.State = matchdaydb.FixtureStateInProgress
		fixture.StartedAt = &now
		return s.repo.UpdateFixture(ctx, db, fixture)
	})
	if err != nil {
		return nil, err
	}
	return fixture, nil
}

// EndFixture completes a fixture in play, freezing its score.
func (s *MatchdayService) EndFixture(ctx context.Context, matchdayID, fixtureID int64) (*matchdaydb.Fixture, error) {
	var fixture *matchdaydb.Fixture
	err := s.update(ctx, "EndFixture", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		fixture, err = s.getFixture(ctx, db, matchdayID, fixtureID)
		if err != nil {
			return err
		}
		switch fixture.State {
		case matchdaydb.FixtureStateInProgress:
		case matchdaydb.FixtureStateCompleted:
			return domainerr.New(domainerr.KindAlreadyEnded, "fixture %d has already ended", fixtureID)
		default:
			return domainerr.New(domainerr.KindInvalidTransition, "cannot end fixture %d from state %q", fixtureID, fixture.State)
		}
		now := s.now()
		fixture.State = matchdaydb.FixtureStateCompleted
		fixture.CompletedAt = &now
		return s.repo.UpdateFixture(ctx, db, fixture)
	})
	if err != nil {
		return nil, err
	}
	return fixture, nil
}

// ListFixtures returns a matchday's fixtures in schedule order.
func (s *MatchdayService) ListFixtures(ctx context.Context, matchdayID int64) ([]matchdaydb.Fixture, error) {
	var fixtures []matchdaydb.Fixture
	err := s.read(ctx, "ListFixtures", matchdayID, func(ctx context.Context, db bun.IDB) error {
		if _, err := s.getMatchday(ctx, db, matchdayID); err != nil {
			return err
		}
		var err error
		fixtures, err = s.repo.ListFixtures(ctx, db, matchdayID)
		return err
	})
	return fixtures, err
}
