package matchdayservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

// eventFixtureRepo wires up a matchday with one in-play fixture between
// group 1 (players 10, 11) and group 2 (players 20, 21). Players 10 and 20
// are marked present.
func eventFixtureRepo(fixtureState matchdaydb.FixtureState) *FakeMatchdayRepo {
	repo := NewFakeMatchdayRepo()
	stubMatchday(repo, &matchdaydb.Matchday{ID: 1, State: matchdaydb.StateApproved, GroupsPublished: true, FixturesPublished: true})
	stubFixture(repo, &matchdaydb.Fixture{ID: 5, MatchdayID: 1, HomeGroupID: 1, AwayGroupID: 2, State: fixtureState})
	repo.ListMembersFunc = func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.GroupMember, error) {
		return []matchdaydb.GroupMember{
			{GroupID: 1, MatchdayID: 1, PlayerID: 10},
			{GroupID: 1, MatchdayID: 1, PlayerID: 11},
			{GroupID: 2, MatchdayID: 1, PlayerID: 20},
			{GroupID: 2, MatchdayID: 1, PlayerID: 21},
		}, nil
	}
	repo.ListAttendanceFunc = func(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Attendance, error) {
		return []matchdaydb.Attendance{
			{MatchdayID: 1, PlayerID: 10, Present: true},
			{MatchdayID: 1, PlayerID: 20, Present: true},
			{MatchdayID: 1, PlayerID: 11, Present: false},
		}, nil
	}
	return repo
}

func TestAddGoal(t *testing.T) {
	t.Run("derives the side from the scorer's group and recounts", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
		goals := []matchdaydb.Goal{}
		repo.InsertGoalFunc = func(ctx context.Context, db bun.IDB, goal *matchdaydb.Goal) error {
			goal.ID = int64(len(goals) + 1)
			goals = append(goals, *goal)
			return nil
		}
		repo.ListGoalsByFixtureFunc = func(ctx context.Context, db bun.IDB, fixtureID int64) ([]matchdaydb.Goal, error) {
			return goals, nil
		}
		var updated *matchdaydb.Fixture
		repo.UpdateFixtureFunc = func(ctx context.Context, db bun.IDB, fixture *matchdaydb.Fixture) error {
			updated = fixture
			return nil
		}
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		goal, err := svc.AddGoal(context.Background(), 1, 5, GoalInput{ScorerPlayerID: int64Ptr(20)})
		require.NoError(t, err)
		assert.False(t, goal.IsHomeGoal)
		require.NotNil(t, updated)
		assert.Equal(t, 0, updated.HomeGoals)
		assert.Equal(t, 1, updated.AwayGoals)
	})

	t.Run("late correction on a completed fixture", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateCompleted)
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		_, err := svc.AddGoal(context.Background(), 1, 5, GoalInput{ScorerPlayerID: int64Ptr(10)})
		assert.NoError(t, err)
	})

	t.Run("guest goal needs an explicit side", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		_, err := svc.AddGoal(context.Background(), 1, 5, GoalInput{})
		assert.True(t, domainerr.Is(err, domainerr.KindInvalidMove), "got %v", err)

		goal, err := svc.AddGoal(context.Background(), 1, 5, GoalInput{IsHomeGoal: boolPtr(true)})
		require.NoError(t, err)
		assert.Nil(t, goal.ScorerPlayerID)
		assert.True(t, goal.IsHomeGoal)
	})

	tests := []struct {
		name     string
		state    matchdaydb.FixtureState
		input    GoalInput
		wantKind domainerr.Kind
	}{
		{
			name:     "fixture not started",
			state:    matchdaydb.FixtureStatePending,
			input:    GoalInput{ScorerPlayerID: int64Ptr(10)},
			wantKind: domainerr.KindInvalidTransition,
		},
		{
			name:     "scorer not on the fixture",
			state:    matchdaydb.FixtureStateInProgress,
			input:    GoalInput{ScorerPlayerID: int64Ptr(99)},
			wantKind: domainerr.KindInvalidMove,
		},
		{
			name:     "scorer not marked present",
			state:    matchdaydb.FixtureStateInProgress,
			input:    GoalInput{ScorerPlayerID: int64Ptr(11)},
			wantKind: domainerr.KindNotPresent,
		},
		{
			name:     "assister on the opposing side",
			state:    matchdaydb.FixtureStateInProgress,
			input:    GoalInput{ScorerPlayerID: int64Ptr(10), AssistPlayerID: int64Ptr(20)},
			wantKind: domainerr.KindInvalidMove,
		},
		{
			name:     "self assist",
			state:    matchdaydb.FixtureStateInProgress,
			input:    GoalInput{ScorerPlayerID: int64Ptr(10), AssistPlayerID: int64Ptr(10)},
			wantKind: domainerr.KindInvalidMove,
		},
		{
			name:     "assister not marked present",
			state:    matchdaydb.FixtureStateInProgress,
			input:    GoalInput{ScorerPlayerID: int64Ptr(10), AssistPlayerID: int64Ptr(11)},
			wantKind: domainerr.KindNotPresent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := eventFixtureRepo(tt.state)
			svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

			_, err := svc.AddGoal(context.Background(), 1, 5, tt.input)
			assert.True(t, domainerr.Is(err, tt.wantKind), "got %v", err)
			assert.NotContains(t, repo.Trace(), "InsertGoal")
		})
	}

	t.Run("rejected once the matchday ended", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateCompleted)
		stubMatchday(repo, &matchdaydb.Matchday{ID: 1, State: matchdaydb.StateApproved, Ended: true})
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		_, err := svc.AddGoal(context.Background(), 1, 5, GoalInput{ScorerPlayerID: int64Ptr(10)})
		assert.True(t, domainerr.Is(err, domainerr.KindAlreadyEnded), "got %v", err)
	})
}

func TestRemoveGoal(t *testing.T) {
	t.Run("recounts the score", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
		repo.GetGoalFunc = func(ctx context.Context, db bun.IDB, goalID int64) (*matchdaydb.Goal, error) {
			return &matchdaydb.Goal{ID: goalID, FixtureID: 5, MatchdayID: 1, IsHomeGoal: true}, nil
		}
		var updated *matchdaydb.Fixture
		repo.UpdateFixtureFunc = func(ctx context.Context, db bun.IDB, fixture *matchdaydb.Fixture) error {
			updated = fixture
			return nil
		}
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		require.NoError(t, svc.RemoveGoal(context.Background(), 1, 5, 3))
		assert.Contains(t, repo.Trace(), "DeleteGoal")
		require.NotNil(t, updated)
		assert.Equal(t, 0, updated.HomeGoals)
	})

	t.Run("goal of another fixture", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
		repo.GetGoalFunc = func(ctx context.Context, db bun.IDB, goalID int64) (*matchdaydb.Goal, error) {
			return &matchdaydb.Goal{ID: goalID, FixtureID: 8, MatchdayID: 1}, nil
		}
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		err := svc.RemoveGoal(context.Background(), 1, 5, 3)
		assert.True(t, domainerr.Is(err, domainerr.KindNotFound), "got %v", err)
	})
}

func TestAddCard(t *testing.T) {
	t.Run("issues a card to a present player", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		card, err := svc.AddCard(context.Background(), 1, 5, CardInput{PlayerID: 10, Color: matchdaydb.CardYellow})
		require.NoError(t, err)
		assert.Equal(t, matchdaydb.CardYellow, card.Color)
	})

	tests := []struct {
		name     string
		state    matchdaydb.FixtureState
		input    CardInput
		wantKind domainerr.Kind
	}{
		{
			name:     "only while in play",
			state:    matchdaydb.FixtureStateCompleted,
			input:    CardInput{PlayerID: 10, Color: matchdaydb.CardRed},
			wantKind: domainerr.KindInvalidTransition,
		},
		{
			name:     "player not on the fixture",
			state:    matchdaydb.FixtureStateInProgress,
			input:    CardInput{PlayerID: 99, Color: matchdaydb.CardYellow},
			wantKind: domainerr.KindInvalidMove,
		},
		{
			name:     "player not marked present",
			state:    matchdaydb.FixtureStateInProgress,
			input:    CardInput{PlayerID: 11, Color: matchdaydb.CardYellow},
			wantKind: domainerr.KindNotPresent,
		},
		{
			name:     "unknown color",
			state:    matchdaydb.FixtureStateInProgress,
			input:    CardInput{PlayerID: 10, Color: "blue"},
			wantKind: domainerr.KindInvalidMove,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := eventFixtureRepo(tt.state)
			svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

			_, err := svc.AddCard(context.Background(), 1, 5, tt.input)
			assert.True(t, domainerr.Is(err, tt.wantKind), "got %v", err)
			assert.NotContains(t, repo.Trace(), "InsertCard")
		})
	}
}

func TestSetAttendance(t *testing.T) {
	t.Run("marks a grouped player", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
		var upserted *matchdaydb.Attendance
		repo.UpsertAttendanceFunc = func(ctx context.Context, db bun.IDB, record *matchdaydb.Attendance) error {
			upserted = record
			return nil
		}
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		require.NoError(t, svc.SetAttendance(context.Background(), 1, AttendanceMark{PlayerID: 11, Present: true}))
		require.NotNil(t, upserted)
		assert.True(t, upserted.Present)
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
		svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

		err := svc.SetAttendanceBulk(context.Background(), 1, []AttendanceMark{
			{PlayerID: 10, Present: true},
			{PlayerID: 99, Present: true},
		})
		assert.True(t, domainerr.Is(err, domainerr.KindInvalidMove), "got %v", err)
		assert.NotContains(t, repo.Trace(), "UpsertAttendance")
	})
}

func TestGetAttendanceSummary(t *testing.T) {
	repo := eventFixtureRepo(matchdaydb.FixtureStateInProgress)
	svc := newTestService(repo, &FakeEligibility{}, &FakeFinalizer{})

	summary, err := svc.GetAttendanceSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 20}, summary.Present)
	// Unmarked players default to absent.
	assert.ElementsMatch(t, []int64{11, 21}, summary.Absent)
}
