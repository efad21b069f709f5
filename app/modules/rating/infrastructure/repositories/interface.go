package ratingdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence operations for frozen ratings.
type Repository interface {
	InsertRatings(ctx context.Context, db bun.IDB, ratings []*PlayerRating) error
	DeleteByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error
	ListByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]PlayerRating, error)
	ListByPlayer(ctx context.Context, db bun.IDB, playerID int64) ([]PlayerRating, error)
	CareerStats(ctx context.Context, db bun.IDB, playerID int64) (*CareerStats, error)
	ListCareerStats(ctx context.Context, db bun.IDB) ([]CareerStats, error)
}
