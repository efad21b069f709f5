package rosterdb

import (
	"time"

	"github.com/uptrace/bun"
)

// PlayerStatus represents a player's registration status.
type PlayerStatus string

const (
	PlayerStatusPending  PlayerStatus = "pending"
	PlayerStatusApproved PlayerStatus = "approved"
	PlayerStatusRejected PlayerStatus = "rejected"
)

// DuesStatus represents a player's dues standing for a quarter.
type DuesStatus string

const (
	DuesStatusPaid   DuesStatus = "paid"
	DuesStatusOwing  DuesStatus = "owing"
	DuesStatusWaiver DuesStatus = "waiver"
)

// Player represents a registered club member.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	FirstName     string       `bun:"first_name,notnull" json:"first_name"`
	Surname       string       `bun:"surname,notnull" json:"surname"`
	BallerName    string       `bun:"baller_name,notnull,unique" json:"baller_name"`
	JerseyNumber  int          `bun:"jersey_number,notnull" json:"jersey_number"`
	Email         string       `bun:"email,nullzero" json:"email,omitempty"`
	Status        PlayerStatus `bun:"status,notnull,default:'pending'" json:"status"`
	Suspended     bool         `bun:"suspended,notnull,default:false" json:"suspended"`
	CreatedAt     time.Time    `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	ApprovedAt    *time.Time   `bun:"approved_at,nullzero" json:"approved_at,omitempty"`
}

// Due represents a player's dues record for a single quarter.
type Due struct {
	bun.BaseModel `bun:"table:dues,alias:d"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	PlayerID      int64      `bun:"player_id,notnull" json:"player_id"`
	Year          int        `bun:"year,notnull" json:"year"`
	Quarter       int        `bun:"quarter,notnull" json:"quarter"`
	Status        DuesStatus `bun:"status,notnull,default:'owing'" json:"status"`
	WaiverDueBy   *time.Time `bun:"waiver_due_by,nullzero" json:"waiver_due_by,omitempty"`
	PaidAt        *time.Time `bun:"paid_at,nullzero" json:"paid_at,omitempty"`
}
