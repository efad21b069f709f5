package matchdayhandlers_test

import (
	"context"
	"sort"
	"time"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
)

// memRepo is a stateful in-memory matchday repository used to exercise the
// HTTP surface without a database.
type memRepo struct {
	nextID     int64
	matchdays  map[int64]*matchdaydb.Matchday
	votes      []matchdaydb.Vote
	groups     []matchdaydb.Group
	members    []matchdaydb.GroupMember
	fixtures   map[int64]*matchdaydb.Fixture
	goals      map[int64]*matchdaydb.Goal
	attendance map[[2]int64]bool
	cards      []matchdaydb.Card
}

func newMemRepo() *memRepo {
	return &memRepo{
		matchdays:  make(map[int64]*matchdaydb.Matchday),
		fixtures:   make(map[int64]*matchdaydb.Fixture),
		goals:      make(map[int64]*matchdaydb.Goal),
		attendance: make(map[[2]int64]bool),
	}
}

func (m *memRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memRepo) Create(_ context.Context, _ bun.IDB, matchday *matchdaydb.Matchday) error {
	matchday.ID = m.id()
	matchday.CreatedAt = time.Now()
	copied := *matchday
	m.matchdays[matchday.ID] = &copied
	return nil
}

func (m *memRepo) GetByID(_ context.Context, _ bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error) {
	matchday, ok := m.matchdays[matchdayID]
	if !ok {
		return nil, matchdaydb.ErrNotFound
	}
	copied := *matchday
	return &copied, nil
}

func (m *memRepo) List(_ context.Context, _ bun.IDB) ([]matchdaydb.Matchday, error) {
	out := make([]matchdaydb.Matchday, 0, len(m.matchdays))
	for _, matchday := range m.matchdays {
		out = append(out, *matchday)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayDate.After(out[j].PlayDate) })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, _ bun.IDB, matchday *matchdaydb.Matchday) error {
	if _, ok := m.matchdays[matchday.ID]; !ok {
		return matchdaydb.ErrNotFound
	}
	copied := *matchday
	m.matchdays[matchday.ID] = &copied
	return nil
}

func (m *memRepo) Delete(_ context.Context, _ bun.IDB, matchdayID int64) error {
	if _, ok := m.matchdays[matchdayID]; !ok {
		return matchdaydb.ErrNotFound
	}
	delete(m.matchdays, matchdayID)
	return nil
}

func (m *memRepo) AddVote(_ context.Context, _ bun.IDB, vote *matchdaydb.Vote) (bool, error) {
	for _, v := range m.votes {
		if v.MatchdayID == vote.MatchdayID && v.PlayerID == vote.PlayerID {
			return false, nil
		}
	}
	vote.ID = m.id()
	m.votes = append(m.votes, *vote)
	return true, nil
}

func (m *memRepo) RemoveVote(_ context.Context, _ bun.IDB, matchdayID, playerID int64) (bool, error) {
	for i, v := range m.votes {
		if v.MatchdayID == matchdayID && v.PlayerID == playerID {
			m.votes = append(m.votes[:i], m.votes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) ListVotes(_ context.Context, _ bun.IDB, matchdayID int64) ([]matchdaydb.Vote, error) {
	var out []matchdaydb.Vote
	for _, v := range m.votes {
		if v.MatchdayID == matchdayID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].VotedAt.Equal(out[j].VotedAt) {
			return out[i].VotedAt.Before(out[j].VotedAt)
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (m *memRepo) InsertGroups(_ context.Context, _ bun.IDB, groups []*matchdaydb.Group, members []*matchdaydb.GroupMember) error {
	for _, g := range groups {
		g.ID = m.id()
		m.groups = append(m.groups, *g)
	}
	for _, gm := range members {
		gm.ID = m.id()
		m.members = append(m.members, *gm)
	}
	return nil
}

func (m *memRepo) DeleteGroups(_ context.Context, _ bun.IDB, matchdayID int64) error {
	var groups []matchdaydb.Group
	for _, g := range m.groups {
		if g.MatchdayID != matchdayID {
			groups = append(groups, g)
		}
	}
	m.groups = groups
	var members []matchdaydb.GroupMember
	for _, gm := range m.members {
		if gm.MatchdayID != matchdayID {
			members = append(members, gm)
		}
	}
	m.members = members
	return nil
}

func (m *memRepo) ListGroups(_ context.Context, _ bun.IDB, matchdayID int64) ([]matchdaydb.Group, error) {
	var out []matchdaydb.Group
	for _, g := range m.groups {
		if g.MatchdayID != matchdayID {
			continue
		}
		group := g
		for _, gm := range m.members {
			if gm.GroupID == g.ID {
				group.Members = append(group.Members, gm)
			}
		}
		out = append(out, group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memRepo) GetGroup(_ context.Context, _ bun.IDB, groupID int64) (*matchdaydb.Group, error) {
	for _, g := range m.groups {
		if g.ID == groupID {
			copied := g
			return &copied, nil
		}
	}
	return nil, matchdaydb.ErrNotFound
}

func (m *memRepo) ListMembers(_ context.Context, _ bun.IDB, matchdayID int64) ([]matchdaydb.GroupMember, error) {
	var out []matchdaydb.GroupMember
	for _, gm := range m.members {
		if gm.MatchdayID == matchdayID {
			out = append(out, gm)
		}
	}
	return out, nil
}

func (m *memRepo) MoveMember(_ context.Context, _ bun.IDB, matchdayID, playerID, toGroupID int64) error {
	for i, gm := range m.members {
		if gm.MatchdayID == matchdayID && gm.PlayerID == playerID {
			m.members[i].GroupID = toGroupID
			return nil
		}
	}
	return matchdaydb.ErrNotFound
}

func (m *memRepo) InsertFixtures(_ context.Context, _ bun.IDB, fixtures []*matchdaydb.Fixture) error {
	for _, f := range fixtures {
		f.ID = m.id()
		copied := *f
		m.fixtures[f.ID] = &copied
	}
	return nil
}

func (m *memRepo) ListFixtures(_ context.Context, _ bun.IDB, matchdayID int64) ([]matchdaydb.Fixture, error) {
	var out []matchdaydb.Fixture
	for _, f := range m.fixtures {
		if f.MatchdayID == matchdayID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetFixture(_ context.Context, _ bun.IDB, fixtureID int64) (*matchdaydb.Fixture, error) {
	f, ok := m.fixtures[fixtureID]
	if !ok {
		return nil, matchdaydb.ErrNotFound
	}
	copied := *f
	return &copied, nil
}

func (m *memRepo) UpdateFixture(_ context.Context, _ bun.IDB, fixture *matchdaydb.Fixture) error {
	if _, ok := m.fixtures[fixture.ID]; !ok {
		return matchdaydb.ErrNotFound
	}
	copied := *fixture
	m.fixtures[fixture.ID] = &copied
	return nil
}

func (m *memRepo) CountFixtures(_ context.Context, _ bun.IDB, matchdayID int64) (int, error) {
	count := 0
	for _, f := range m.fixtures {
		if f.MatchdayID == matchdayID {
			count++
		}
	}
	return count, nil
}

func (m *memRepo) CountIncompleteFixtures(_ context.Context, _ bun.IDB, matchdayID int64) (int, error) {
	count := 0
	for _, f := range m.fixtures {
		if f.MatchdayID == matchdayID && f.State != matchdaydb.FixtureStateCompleted {
			count++
		}
	}
	return count, nil
}

func (m *memRepo) AnyCompletedFixture(_ context.Context, _ bun.IDB, matchdayID int64) (bool, error) {
	for _, f := range m.fixtures {
		if f.MatchdayID == matchdayID && f.State == matchdaydb.FixtureStateCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) InsertGoal(_ context.Context, _ bun.IDB, goal *matchdaydb.Goal) error {
	goal.ID = m.id()
	copied := *goal
	m.goals[goal.ID] = &copied
	return nil
}

func (m *memRepo) GetGoal(_ context.Context, _ bun.IDB, goalID int64) (*matchdaydb.Goal, error) {
	g, ok := m.goals[goalID]
	if !ok {
		return nil, matchdaydb.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (m *memRepo) DeleteGoal(_ context.Context, _ bun.IDB, goalID int64) error {
	if _, ok := m.goals[goalID]; !ok {
		return matchdaydb.ErrNotFound
	}
	delete(m.goals, goalID)
	return nil
}

func (m *memRepo) ListGoalsByFixture(_ context.Context, _ bun.IDB, fixtureID int64) ([]matchdaydb.Goal, error) {
	var out []matchdaydb.Goal
	for _, g := range m.goals {
		if g.FixtureID == fixtureID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) ListGoalsByMatchday(_ context.Context, _ bun.IDB, matchdayID int64) ([]matchdaydb.Goal, error) {
	var out []matchdaydb.Goal
	for _, g := range m.goals {
		if g.MatchdayID == matchdayID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) InsertCard(_ context.Context, _ bun.IDB, card *matchdaydb.Card) error {
	card.ID = m.id()
	m.cards = append(m.cards, *card)
	return nil
}

func (m *memRepo) ListCardsByFixture(_ context.Context, _ bun.IDB, fixtureID int64) ([]matchdaydb.Card, error) {
	var out []matchdaydb.Card
	for _, c := range m.cards {
		if c.FixtureID == fixtureID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepo) ListCardsByMatchday(_ context.Context, _ bun.IDB, matchdayID int64) ([]matchdaydb.Card, error) {
	var out []matchdaydb.Card
	for _, c := range m.cards {
		if c.MatchdayID == matchdayID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepo) UpsertAttendance(_ context.Context, _ bun.IDB, record *matchdaydb.Attendance) error {
	m.attendance[[2]int64{record.MatchdayID, record.PlayerID}] = record.Present
	return nil
}

func (m *memRepo) ListAttendance(_ context.Context, _ bun.IDB, matchdayID int64) ([]matchdaydb.Attendance, error) {
	var out []matchdaydb.Attendance
	for key, present := range m.attendance {
		if key[0] == matchdayID {
			out = append(out, matchdaydb.Attendance{MatchdayID: key[0], PlayerID: key[1], Present: present})
		}
	}
	return out, nil
}

// allowAllRoster passes every eligibility check.
type allowAllRoster struct{}

func (allowAllRoster) CheckEligibility(context.Context, int64, time.Time) error { return nil }
func (allowAllRoster) CheckRegistered(context.Context, int64) error            { return nil }
func (allowAllRoster) EligibleVoterIDs(context.Context, time.Time) ([]int64, error) {
	return nil, nil
}
