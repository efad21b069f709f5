package matchdayservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
)

// ------------------------
// Fake Matchday Repo
// ------------------------

type FakeMatchdayRepo struct {
	trace []string

	CreateFunc                  func(ctx context.Context, db bun.IDB, matchday *matchdaydb.Matchday) error
	GetByIDFunc                 func(ctx context.Context, db bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error)
	ListFunc                    func(ctx context.Context, db bun.IDB) ([]matchdaydb.Matchday, error)
	UpdateFunc                  func(ctx context.Context, db bun.IDB, matchday *matchdaydb.Matchday) error
	DeleteFunc                  func(ctx context.Context, db bun.IDB, matchdayID int64) error
	AddVoteFunc                 func(ctx context.Context, db bun.IDB, vote *matchdaydb.Vote) (bool, error)
	RemoveVoteFunc              func(ctx context.Context, db bun.IDB, matchdayID, playerID int64) (bool, error)
	ListVotesFunc               func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Vote, error)
	InsertGroupsFunc            func(ctx context.Context, db bun.IDB, groups []*matchdaydb.Group, members []*matchdaydb.GroupMember) error
	DeleteGroupsFunc            func(ctx context.Context, db bun.IDB, matchdayID int64) error
	ListGroupsFunc              func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Group, error)
	GetGroupFunc                func(ctx context.Context, db bun.IDB, groupID int64) (*matchdaydb.Group, error)
	ListMembersFunc             func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.GroupMember, error)
	MoveMemberFunc              func(ctx context.Context, db bun.IDB, matchdayID, playerID, toGroupID int64) error
	InsertFixturesFunc          func(ctx context.Context, db bun.IDB, fixtures []*matchdaydb.Fixture) error
	ListFixturesFunc            func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Fixture, error)
	GetFixtureFunc              func(ctx context.Context, db bun.IDB, fixtureID int64) (*matchdaydb.Fixture, error)
	UpdateFixtureFunc           func(ctx context.Context, db bun.IDB, fixture *matchdaydb.Fixture) error
	CountFixturesFunc           func(ctx context.Context, db bun.IDB, matchdayID int64) (int, error)
	CountIncompleteFixturesFunc func(ctx context.Context, db bun.IDB, matchdayID int64) (int, error)
	AnyCompletedFixtureFunc     func(ctx context.Context, db bun.IDB, matchdayID int64) (bool, error)
	InsertGoalFunc              func(ctx context.Context, db bun.IDB, goal *matchdaydb.Goal) error
	GetGoalFunc                 func(ctx context.Context, db bun.IDB, goalID int64) (*matchdaydb.Goal, error)
	DeleteGoalFunc              func(ctx context.Context, db bun.IDB, goalID int64) error
	ListGoalsByFixtureFunc      func(ctx context.Context, db bun.IDB, fixtureID int64) ([]matchdaydb.Goal, error)
	ListGoalsByMatchdayFunc     func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Goal, error)
	InsertCardFunc              func(ctx context.Context, db bun.IDB, card *matchdaydb.Card) error
	ListCardsByFixtureFunc      func(ctx context.Context, db bun.IDB, fixtureID int64) ([]matchdaydb.Card, error)
	ListCardsByMatchdayFunc     func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Card, error)
	UpsertAttendanceFunc        func(ctx context.Context, db bun.IDB, record *matchdaydb.Attendance) error
	ListAttendanceFunc          func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Attendance, error)
}

func NewFakeMatchdayRepo() *FakeMatchdayRepo {
	return &FakeMatchdayRepo{
		trace: []string{},
	}
}

func (f *FakeMatchdayRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeMatchdayRepo) Create(ctx context.Context, db bun.IDB, matchday *matchdaydb.Matchday) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, matchday)
	}
	matchday.ID = 1
	return nil
}

func (f *FakeMatchdayRepo) GetByID(ctx context.Context, db bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, matchdayID)
	}
	return nil, matchdaydb.ErrNotFound
}

func (f *FakeMatchdayRepo) List(ctx context.Context, db bun.IDB) ([]matchdaydb.Matchday, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) Update(ctx context.Context, db bun.IDB, matchday *matchdaydb.Matchday) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, matchday)
	}
	return nil
}

func (f *FakeMatchdayRepo) Delete(ctx context.Context, db bun.IDB, matchdayID int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, matchdayID)
	}
	return nil
}

func (f *FakeMatchdayRepo) AddVote(ctx context.Context, db bun.IDB, vote *matchdaydb.Vote) (bool, error) {
	f.record("AddVote")
	if f.AddVoteFunc != nil {
		return f.AddVoteFunc(ctx, db, vote)
	}
	return true, nil
}

func (f *FakeMatchdayRepo) RemoveVote(ctx context.Context, db bun.IDB, matchdayID, playerID int64) (bool, error) {
	f.record("RemoveVote")
	if f.RemoveVoteFunc != nil {
		return f.RemoveVoteFunc(ctx, db, matchdayID, playerID)
	}
	return false, nil
}

func (f *FakeMatchdayRepo) ListVotes(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Vote, error) {
	f.record("ListVotes")
	if f.ListVotesFunc != nil {
		return f.ListVotesFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) InsertGroups(ctx context.Context, db bun.IDB, groups []*matchdaydb.Group, members []*matchdaydb.GroupMember) error {
	f.record("InsertGroups")
	if f.InsertGroupsFunc != nil {
		return f.InsertGroupsFunc(ctx, db, groups, members)
	}
	for i, g := range groups {
		g.ID = int64(i + 1)
	}
	return nil
}

func (f *FakeMatchdayRepo) DeleteGroups(ctx context.Context, db bun.IDB, matchdayID int64) error {
	f.record("DeleteGroups")
	if f.DeleteGroupsFunc != nil {
		return f.DeleteGroupsFunc(ctx, db, matchdayID)
	}
	return nil
}

func (f *FakeMatchdayRepo) ListGroups(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Group, error) {
	f.record("ListGroups")
	if f.ListGroupsFunc != nil {
		return f.ListGroupsFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) GetGroup(ctx context.Context, db bun.IDB, groupID int64) (*matchdaydb.Group, error) {
	f.record("GetGroup")
	if f.GetGroupFunc != nil {
		return f.GetGroupFunc(ctx, db, groupID)
	}
	return nil, matchdaydb.ErrNotFound
}

func (f *FakeMatchdayRepo) ListMembers(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.GroupMember, error) {
	f.record("ListMembers")
	if f.ListMembersFunc != nil {
		return f.ListMembersFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) MoveMember(ctx context.Context, db bun.IDB, matchdayID, playerID, toGroupID int64) error {
	f.record("MoveMember")
	if f.MoveMemberFunc != nil {
		return f.MoveMemberFunc(ctx, db, matchdayID, playerID, toGroupID)
	}
	return nil
}

func (f *FakeMatchdayRepo) InsertFixtures(ctx context.Context, db bun.IDB, fixtures []*matchdaydb.Fixture) error {
	f.record("InsertFixtures")
	if f.InsertFixturesFunc != nil {
		return f.InsertFixturesFunc(ctx, db, fixtures)
	}
	for i, fx := range fixtures {
		fx.ID = int64(i + 1)
	}
	return nil
}

func (f *FakeMatchdayRepo) ListFixtures(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Fixture, error) {
	f.record("ListFixtures")
	if f.ListFixturesFunc != nil {
		return f.ListFixturesFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) GetFixture(ctx context.Context, db bun.IDB, fixtureID int64) (*matchdaydb.Fixture, error) {
	f.record("GetFixture")
	if f.GetFixtureFunc != nil {
		return f.GetFixtureFunc(ctx, db, fixtureID)
	}
	return nil, matchdaydb.ErrNotFound
}

func (f *FakeMatchdayRepo) UpdateFixture(ctx context.Context, db bun.IDB, fixture *matchdaydb.Fixture) error {
	f.record("UpdateFixture")
	if f.UpdateFixtureFunc != nil {
		return f.UpdateFixtureFunc(ctx, db, fixture)
	}
	return nil
}

func (f *FakeMatchdayRepo) CountFixtures(ctx context.Context, db bun.IDB, matchdayID int64) (int, error) {
	f.record("CountFixtures")
	if f.CountFixturesFunc != nil {
		return f.CountFixturesFunc(ctx, db, matchdayID)
	}
	return 0, nil
}

func (f *FakeMatchdayRepo) CountIncompleteFixtures(ctx context.Context, db bun.IDB, matchdayID int64) (int, error) {
	f.record("CountIncompleteFixtures")
	if f.CountIncompleteFixturesFunc != nil {
		return f.CountIncompleteFixturesFunc(ctx, db, matchdayID)
	}
	return 0, nil
}

func (f *FakeMatchdayRepo) AnyCompletedFixture(ctx context.Context, db bun.IDB, matchdayID int64) (bool, error) {
	f.record("AnyCompletedFixture")
	if f.AnyCompletedFixtureFunc != nil {
		return f.AnyCompletedFixtureFunc(ctx, db, matchdayID)
	}
	return false, nil
}

func (f *FakeMatchdayRepo) InsertGoal(ctx context.Context, db bun.IDB, goal *matchdaydb.Goal) error {
	f.record("InsertGoal")
	if f.InsertGoalFunc != nil {
		return f.InsertGoalFunc(ctx, db, goal)
	}
	goal.ID = 1
	return nil
}

func (f *FakeMatchdayRepo) GetGoal(ctx context.Context, db bun.IDB, goalID int64) (*matchdaydb.Goal, error) {
	f.record("GetGoal")
	if f.GetGoalFunc != nil {
		return f.GetGoalFunc(ctx, db, goalID)
	}
	return nil, matchdaydb.ErrNotFound
}

func (f *FakeMatchdayRepo) DeleteGoal(ctx context.Context, db bun.IDB, goalID int64) error {
	f.record("DeleteGoal")
	if f.DeleteGoalFunc != nil {
		return f.DeleteGoalFunc(ctx, db, goalID)
	}
	return nil
}

func (f *FakeMatchdayRepo) ListGoalsByFixture(ctx context.Context, db bun.IDB, fixtureID int64) ([]matchdaydb.Goal, error) {
	f.record("ListGoalsByFixture")
	if f.ListGoalsByFixtureFunc != nil {
		return f.ListGoalsByFixtureFunc(ctx, db, fixtureID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) ListGoalsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Goal, error) {
	f.record("ListGoalsByMatchday")
	if f.ListGoalsByMatchdayFunc != nil {
		return f.ListGoalsByMatchdayFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) InsertCard(ctx context.Context, db bun.IDB, card *matchdaydb.Card) error {
	f.record("InsertCard")
	if f.InsertCardFunc != nil {
		return f.InsertCardFunc(ctx, db, card)
	}
	card.ID = 1
	return nil
}

func (f *FakeMatchdayRepo) ListCardsByFixture(ctx context.Context, db bun.IDB, fixtureID int64) ([]matchdaydb.Card, error) {
	f.record("ListCardsByFixture")
	if f.ListCardsByFixtureFunc != nil {
		return f.ListCardsByFixtureFunc(ctx, db, fixtureID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) ListCardsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Card, error) {
	f.record("ListCardsByMatchday")
	if f.ListCardsByMatchdayFunc != nil {
		return f.ListCardsByMatchdayFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

func (f *FakeMatchdayRepo) UpsertAttendance(ctx context.Context, db bun.IDB, record *matchdaydb.Attendance) error {
	f.record("UpsertAttendance")
	if f.UpsertAttendanceFunc != nil {
		return f.UpsertAttendanceFunc(ctx, db, record)
	}
	return nil
}

func (f *FakeMatchdayRepo) ListAttendance(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Attendance, error) {
	f.record("ListAttendance")
	if f.ListAttendanceFunc != nil {
		return f.ListAttendanceFunc(ctx, db, matchdayID)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeMatchdayRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ matchdaydb.Repository = (*FakeMatchdayRepo)(nil)

// ------------------------
// Fake Eligibility Checker
// ------------------------

type FakeEligibility struct {
	CheckEligibilityFunc func(ctx context.Context, playerID int64, at time.Time) error
	CheckRegisteredFunc  func(ctx context.Context, playerID int64) error
	EligibleVoterIDsFunc func(ctx context.Context, at time.Time) ([]int64, error)
}

func (f *FakeEligibility) CheckEligibility(ctx context.Context, playerID int64, at time.Time) error {
	if f.CheckEligibilityFunc != nil {
		return f.CheckEligibilityFunc(ctx, playerID, at)
	}
	return nil
}

func (f *FakeEligibility) CheckRegistered(ctx context.Context, playerID int64) error {
	if f.CheckRegisteredFunc != nil {
		return f.CheckRegisteredFunc(ctx, playerID)
	}
	return nil
}

func (f *FakeEligibility) EligibleVoterIDs(ctx context.Context, at time.Time) ([]int64, error) {
	if f.EligibleVoterIDsFunc != nil {
		return f.EligibleVoterIDsFunc(ctx, at)
	}
	return nil, nil
}

var _ EligibilityChecker = (*FakeEligibility)(nil)

// ------------------------
// Fake Rating Finalizer
// ------------------------

type FakeFinalizer struct {
	Snapshots []int64
	Discards  []int64

	SnapshotMatchdayFunc func(ctx context.Context, db bun.IDB, matchdayID int64) error
	DiscardMatchdayFunc  func(ctx context.Context, db bun.IDB, matchdayID int64) error
}

func (f *FakeFinalizer) SnapshotMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error {
	f.Snapshots = append(f.Snapshots, matchdayID)
	if f.SnapshotMatchdayFunc != nil {
		return f.SnapshotMatchdayFunc(ctx, db, matchdayID)
	}
	return nil
}

func (f *FakeFinalizer) DiscardMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error {
	f.Discards = append(f.Discards, matchdayID)
	if f.DiscardMatchdayFunc != nil {
		return f.DiscardMatchdayFunc(ctx, db, matchdayID)
	}
	return nil
}

var _ RatingFinalizer = (*FakeFinalizer)(nil)
