package matchdaydb

import (
	"time"

	"github.com/uptrace/bun"
)

// State represents the lifecycle state of a matchday.
type State string

const (
	StateVotingOpen          State = "voting_open"
	StateClosedPendingReview State = "closed_pending_review"
	StateApproved            State = "approved"
	StateRejected            State = "rejected"
)

// FixtureState represents the lifecycle state of a fixture.
type FixtureState string

const (
	FixtureStatePending    FixtureState = "pending"
	FixtureStateInProgress FixtureState = "in_progress"
	FixtureStateCompleted  FixtureState = "completed"
)

// CardColor represents a disciplinary card color.
type CardColor string

const (
	CardYellow CardColor = "yellow"
	CardRed    CardColor = "red"
)

// Matchday represents one weekly matchday and its lifecycle flags.
type Matchday struct {
	bun.BaseModel     `bun:"table:matchdays,alias:m"`
	ID                int64     `bun:"id,pk,autoincrement" json:"id"`
	PlayDate          time.Time `bun:"play_date,notnull" json:"play_date"`
	Location          string    `bun:"location,nullzero" json:"location,omitempty"`
	State             State     `bun:"state,notnull,default:'voting_open'" json:"state"`
	GroupsPublished   bool      `bun:"groups_published,notnull,default:false" json:"groups_published"`
	FixturesPublished bool      `bun:"fixtures_published,notnull,default:false" json:"fixtures_published"`
	Ended             bool      `bun:"ended,notnull,default:false" json:"ended"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Vote represents a player's availability vote for a matchday.
type Vote struct {
	bun.BaseModel `bun:"table:matchday_votes,alias:v"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	MatchdayID    int64     `bun:"matchday_id,notnull" json:"matchday_id"`
	PlayerID      int64     `bun:"player_id,notnull" json:"player_id"`
	VotedAt       time.Time `bun:"voted_at,nullzero,notnull,default:current_timestamp" json:"voted_at"`
}

// Group represents a team for a matchday.
type Group struct {
	bun.BaseModel `bun:"table:matchday_groups,alias:g"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	MatchdayID    int64  `bun:"matchday_id,notnull" json:"matchday_id"`
	Name          string `bun:"name,notnull" json:"name"`
	Position      int    `bun:"position,notnull" json:"position"`

	Members []GroupMember `bun:"rel:has-many,join:id=group_id" json:"members,omitempty"`
}

// GroupMember represents a player's membership in a group.
type GroupMember struct {
	bun.BaseModel `bun:"table:matchday_group_members,alias:gm"`
	ID            int64 `bun:"id,pk,autoincrement" json:"id"`
	GroupID       int64 `bun:"group_id,notnull" json:"group_id"`
	MatchdayID    int64 `bun:"matchday_id,notnull" json:"matchday_id"`
	PlayerID      int64 `bun:"player_id,notnull" json:"player_id"`
}

// Fixture represents a match between two groups.
type Fixture struct {
	bun.BaseModel `bun:"table:matchday_fixtures,alias:f"`
	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	MatchdayID    int64        `bun:"matchday_id,notnull" json:"matchday_id"`
	HomeGroupID   int64        `bun:"home_group_id,notnull" json:"home_group_id"`
	AwayGroupID   int64        `bun:"away_group_id,notnull" json:"away_group_id"`
	State         FixtureState `bun:"state,notnull,default:'pending'" json:"state"`
	HomeGoals     int          `bun:"home_goals,notnull,default:0" json:"home_goals"`
	AwayGoals     int          `bun:"away_goals,notnull,default:0" json:"away_goals"`
	StartedAt     *time.Time   `bun:"started_at,nullzero" json:"started_at,omitempty"`
	CompletedAt   *time.Time   `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
}

// Goal represents a goal within a fixture. A nil ScorerPlayerID records a
// guest ("Others") goal credited to a side but no rostered player.
type Goal struct {
	bun.BaseModel  `bun:"table:fixture_goals,alias:fg"`
	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	FixtureID      int64     `bun:"fixture_id,notnull" json:"fixture_id"`
	MatchdayID     int64     `bun:"matchday_id,notnull" json:"matchday_id"`
	ScorerPlayerID *int64    `bun:"scorer_player_id,nullzero" json:"scorer_player_id,omitempty"`
	AssistPlayerID *int64    `bun:"assist_player_id,nullzero" json:"assist_player_id,omitempty"`
	IsHomeGoal     bool      `bun:"is_home_goal,notnull" json:"is_home_goal"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Card represents a disciplinary card issued during a fixture.
type Card struct {
	bun.BaseModel `bun:"table:fixture_cards,alias:fc"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	FixtureID     int64     `bun:"fixture_id,notnull" json:"fixture_id"`
	MatchdayID    int64     `bun:"matchday_id,notnull" json:"matchday_id"`
	PlayerID      int64     `bun:"player_id,notnull" json:"player_id"`
	Color         CardColor `bun:"color,notnull" json:"color"`
	IssuedAt      time.Time `bun:"issued_at,nullzero,notnull,default:current_timestamp" json:"issued_at"`
}

// Attendance represents a grouped player's presence on matchday. Players
// default to absent until toggled.
type Attendance struct {
	bun.BaseModel `bun:"table:matchday_attendance,alias:a"`
	ID            int64 `bun:"id,pk,autoincrement" json:"id"`
	MatchdayID    int64 `bun:"matchday_id,notnull" json:"matchday_id"`
	PlayerID      int64 `bun:"player_id,notnull" json:"player_id"`
	Present       bool  `bun:"present,notnull,default:false" json:"present"`
}
