package ratingservice

import (
	"context"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	ratingdb "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/repositories"
	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
)

// ------------------------
// Fake Rating Repo
// ------------------------

type FakeRatingRepo struct {
	trace []string

	InsertRatingsFunc    func(ctx context.Context, db bun.IDB, ratings []*ratingdb.PlayerRating) error
	DeleteByMatchdayFunc func(ctx context.Context, db bun.IDB, matchdayID int64) error
	ListByMatchdayFunc   func(ctx context.Context, db bun.IDB, matchdayID int64) ([]ratingdb.PlayerRating, error)
	ListByPlayerFunc     func(ctx context.Context, db bun.IDB, playerID int64) ([]ratingdb.PlayerRating, error)
	CareerStatsFunc      func(ctx context.Context, db bun.IDB, playerID int64) (*ratingdb.CareerStats, error)
	ListCareerStatsFunc  func(ctx context.Context, db bun.IDB) ([]ratingdb.CareerStats, error)
}

func NewFakeRatingRepo() *FakeRatingRepo {
	return &FakeRatingRepo{
		trace: []string{},
	}
}

func (f *FakeRatingRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRatingRepo) InsertRatings(ctx context.Context, db bun.IDB, ratings []*ratingdb.PlayerRating) error {
	f.record("InsertRatings")
	if f.InsertRatingsFunc != nil {
		return f.InsertRatingsFunc(ctx, db, ratings)
	}
	return nil
}

func (f *FakeRatingRepo) DeleteByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error {
	f.record("DeleteByMatchday")
	if f.DeleteByMatchdayFunc != nil {
		return f.DeleteByMatchdayFunc(ctx, db, matchdayID)
	}
	return nil
}

func (f *FakeRatingRepo) ListByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]ratingdb.PlayerRating, error) {
	f.record("ListByMatchday")
	if f.ListByMatchdayFunc != nil {
		return f.ListByMatchdayFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeRatingRepo) ListByPlayer(ctx context.Context, db bun.IDB, playerID int64) ([]ratingdb.PlayerRating, error) {
	f.record("ListByPlayer")
	if f.ListByPlayerFunc != nil {
		return f.ListByPlayerFunc(ctx, db, playerID)
	}
	return nil, nil
}

func (f *FakeRatingRepo) CareerStats(ctx context.Context, db bun.IDB, playerID int64) (*ratingdb.CareerStats, error) {
	f.record("CareerStats")
	if f.CareerStatsFunc != nil {
		return f.CareerStatsFunc(ctx, db, playerID)
	}
	return &ratingdb.CareerStats{PlayerID: playerID}, nil
}

func (f *FakeRatingRepo) ListCareerStats(ctx context.Context, db bun.IDB) ([]ratingdb.CareerStats, error) {
	f.record("ListCareerStats")
	if f.ListCareerStatsFunc != nil {
		return f.ListCareerStatsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRatingRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ ratingdb.Repository = (*FakeRatingRepo)(nil)

// ------------------------
// Fake Matchday Data
// ------------------------

type FakeMatchdayData struct {
	GetByIDFunc             func(ctx context.Context, db bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error)
	ListGroupsFunc          func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Group, error)
	ListFixturesFunc        func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Fixture, error)
	ListGoalsByMatchdayFunc func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Goal, error)
	ListCardsByMatchdayFunc func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Card, error)
	ListAttendanceFunc      func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Attendance, error)
}

func (f *FakeMatchdayData) GetByID(ctx context.Context, db bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, matchdayID)
	}
	return nil, matchdaydb.ErrNotFound
}

func (f *FakeMatchdayData) ListGroups(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Group, error) {
	if f.ListGroupsFunc != nil {
		return f.ListGroupsFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayData) ListFixtures(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Fixture, error) {
	if f.ListFixturesFunc != nil {
		return f.ListFixturesFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayData) ListGoalsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Goal, error) {
	if f.ListGoalsByMatchdayFunc != nil {
		return f.ListGoalsByMatchdayFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayData) ListCardsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Card, error) {
	if f.ListCardsByMatchdayFunc != nil {
		return f.ListCardsByMatchdayFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayData) ListAttendance(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Attendance, error) {
	if f.ListAttendanceFunc != nil {
		return f.ListAttendanceFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

var _ MatchdayData = (*FakeMatchdayData)(nil)

// ------------------------
// Fake Player Directory
// ------------------------

type FakeDirectory struct {
	Players []rosterdb.Player
}

func (f *FakeDirectory) ListApprovedPlayers(ctx context.Context) ([]rosterdb.Player, error) {
	return f.Players, nil
}

var _ PlayerDirectory = (*FakeDirectory)(nil)
