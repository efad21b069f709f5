package matchdaydb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence operations for matchdays and everything
// recorded against them.
type Repository interface {
	// Matchdays
	Create(ctx context.Context, db bun.IDB, matchday *Matchday) error
	GetByID(ctx context.Context, db bun.IDB, matchdayID int64) (*Matchday, error)
	List(ctx context.Context, db bun.IDB) ([]Matchday, error)
	Update(ctx context.Context, db bun.IDB, matchday *Matchday) error
	Delete(ctx context.Context, db bun.IDB, matchdayID int64) error

	// Votes
	AddVote(ctx context.Context, db bun.IDB, vote *Vote) (bool, error)
	RemoveVote(ctx context.Context, db bun.IDB, matchdayID, playerID int64) (bool, error)
	ListVotes(ctx context.Context, db bun.IDB, matchdayID int64) ([]Vote, error)

	// Groups
	InsertGroups(ctx context.Context, db bun.IDB, groups []*Group, members []*GroupMember) error
	DeleteGroups(ctx context.Context, db bun.IDB, matchdayID int64) error
	ListGroups(ctx context.Context, db bun.IDB, matchdayID int64) ([]Group, error)
	GetGroup(ctx context.Context, db bun.IDB, groupID int64) (*Group, error)
	ListMembers(ctx context.Context, db bun.IDB, matchdayID int64) ([]GroupMember, error)
	MoveMember(ctx context.Context, db bun.IDB, matchdayID, playerID, toGroupID int64) error

	// Fixtures
	InsertFixtures(ctx context.Context, db bun.IDB, fixtures []*Fixture) error
	ListFixtures(ctx context.Context, db bun.IDB, matchdayID int64) ([]Fixture, error)
	GetFixture(ctx context.Context, db bun.IDB, fixtureID int64) (*Fixture, error)
	UpdateFixture(ctx context.Context, db bun.IDB, fixture *Fixture) error
	CountFixtures(ctx context.Context, db bun.IDB, matchdayID int64) (int, error)
	CountIncompleteFixtures(ctx context.Context, db bun.IDB, matchdayID int64) (int, error)
	AnyCompletedFixture(ctx context.Context, db bun.IDB, matchdayID int64) (bool, error)

	// Goals
	InsertGoal(ctx context.Context, db bun.IDB, goal *Goal) error
	GetGoal(ctx context.Context, db bun.IDB, goalID int64) (*Goal, error)
	DeleteGoal(ctx context.Context, db bun.IDB, goalID int64) error
	ListGoalsByFixture(ctx context.Context, db bun.IDB, fixtureID int64) ([]Goal, error)
	ListGoalsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]Goal, error)

	// Cards
	InsertCard(ctx context.Context, db bun.IDB, card *Card) error
	ListCardsByFixture(ctx context.Context, db bun.IDB, fixtureID int64) ([]Card, error)
	ListCardsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]Card, error)

	// Attendance
	UpsertAttendance(ctx context.Context, db bun.IDB, record *Attendance) error
	ListAttendance(ctx context.Context, db bun.IDB, matchdayID int64) ([]Attendance, error)
}
