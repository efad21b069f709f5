package rosterdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository defines the persistence operations for players and dues.
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, playerID int64) (*Player, error)
	List(ctx context.Context, db bun.IDB) ([]Player, error)
	ListApproved(ctx context.Context, db bun.IDB) ([]Player, error)
	Create(ctx context.Context, db bun.IDB, player *Player) error
	SetSuspended(ctx context.Context, db bun.IDB, playerID int64, suspended bool) error
	Delete(ctx context.Context, db bun.IDB, playerID int64) error

	GetDue(ctx context.Context, db bun.IDB, playerID int64, year, quarter int) (*Due, error)
	UpsertDue(ctx context.Context, db bun.IDB, due *Due) error
	ListEligibleIDs(ctx context.Context, db bun.IDB, year, quarter int, today time.Time) ([]int64, error)
}
