package matchdayservice

import (
	"context"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
)

// Snapshot bundles everything recorded against a matchday.
type Snapshot struct {
	Matchday *matchdaydb.Matchday  `json:"matchday"`
	Votes    []matchdaydb.Vote     `json:"votes"`
	Groups   []matchdaydb.Group    `json:"groups,omitempty"`
	Fixtures []matchdaydb.Fixture  `json:"fixtures,omitempty"`
}

// GetMatchday returns a matchday by ID.
func (s *MatchdayService) GetMatchday(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.read(ctx, "GetMatchday", matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// ListMatchdays returns all matchdays, most recent play date first.
func (s *MatchdayService) ListMatchdays(ctx context.Context) ([]matchdaydb.Matchday, error) {
	var matchdays []matchdaydb.Matchday
	err := s.read(ctx, "ListMatchdays", 0, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchdays, err = s.repo.List(ctx, db)
		return err
	})
	return matchdays, err
}

// GetSnapshot returns a matchday with its votes, groups, and fixtures.
// Unpublished groups and fixtures are omitted unless includeUnpublished is
// set; admin surfaces pass true.
func (s *MatchdayService) GetSnapshot(ctx context.Context, matchdayID int64, includeUnpublished bool) (*Snapshot, error) {
	snapshot := &Snapshot{}
	err := s.read(ctx, "GetSnapshot", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		snapshot.Matchday = matchday

		snapshot.Votes, err = s.repo.ListVotes(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if includeUnpublished || matchday.GroupsPublished {
			snapshot.Groups, err = s.repo.ListGroups(ctx, db, matchdayID)
			if err != nil {
				return err
			}
		}
		if includeUnpublished || matchday.FixturesPublished {
			snapshot.Fixtures, err = s.repo.ListFixtures(ctx, db, matchdayID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
