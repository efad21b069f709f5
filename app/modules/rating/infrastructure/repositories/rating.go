package ratingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Impl implements the Repository interface using bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new rating repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB prefers the transaction handle when one is passed in.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.db
}

// InsertRatings stores a matchday's frozen ratings.
func (r *Impl) InsertRatings(ctx context.Context, db bun.IDB, ratings []*PlayerRating) error {
	if len(ratings) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	if _, err := db.NewInsert().
		Model(&ratings).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert ratings: %w", err)
	}
	return nil
}

// DeleteByMatchday drops a matchday's frozen ratings.
func (r *Impl) DeleteByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().
		Model((*PlayerRating)(nil)).
		Where("matchday_id = ?", matchdayID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete ratings: %w", err)
	}
	return nil
}

// ListByMatchday returns a matchday's frozen ratings, best first.
func (r *Impl) ListByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]PlayerRating, error) {
	db = r.resolveDB(db)
	var ratings []PlayerRating
	err := db.NewSelect().
		Model(&ratings).
		Where("matchday_id = ?", matchdayID).
		Order("rating DESC", "player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchday ratings: %w", err)
	}
	return ratings, nil
}

// ListByPlayer returns a player's frozen ratings, newest matchday first.
func (r *Impl) ListByPlayer(ctx context.Context, db bun.IDB, playerID int64) ([]PlayerRating, error) {
	db = r.resolveDB(db)
	var ratings []PlayerRating
	err := db.NewSelect().
		Model(&ratings).
		Where("player_id = ?", playerID).
		Order("matchday_id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list player ratings: %w", err)
	}
	return ratings, nil
}

// CareerStats aggregates one player's frozen ratings.
func (r *Impl) CareerStats(ctx context.Context, db bun.IDB, playerID int64) (*CareerStats, error) {
	db = r.resolveDB(db)
	stats := new(CareerStats)
	err := db.NewSelect().
		Model((*PlayerRating)(nil)).
		ColumnExpr("player_id").
		ColumnExpr("COUNT(*) AS matchdays_present").
		ColumnExpr("COALESCE(SUM(goals), 0) AS goals").
		ColumnExpr("COALESCE(SUM(assists), 0) AS assists").
		ColumnExpr("COALESCE(SUM(yellows), 0) AS yellows").
		ColumnExpr("COALESCE(SUM(reds), 0) AS reds").
		ColumnExpr("COALESCE(SUM(clean_sheets), 0) AS clean_sheets").
		ColumnExpr("COALESCE(AVG(rating), 0) AS average_rating").
		Where("player_id = ?", playerID).
		GroupExpr("player_id").
		Scan(ctx, stats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &CareerStats{PlayerID: playerID}, nil
		}
		return nil, fmt.Errorf("failed to aggregate career stats: %w", err)
	}
	return stats, nil
}

// ListCareerStats aggregates frozen ratings for every rated player.
func (r *Impl) ListCareerStats(ctx context.Context, db bun.IDB) ([]CareerStats, error) {
	db = r.resolveDB(db)
	var stats []CareerStats
	err := db.NewSelect().
		Model((*PlayerRating)(nil)).
		ColumnExpr("player_id").
		ColumnExpr("COUNT(*) AS matchdays_present").
		ColumnExpr("COALESCE(SUM(goals), 0) AS goals").
		ColumnExpr("COALESCE(SUM(assists), 0) AS assists").
		ColumnExpr("COALESCE(SUM(yellows), 0) AS yellows").
		ColumnExpr("COALESCE(SUM(reds), 0) AS reds").
		ColumnExpr("COALESCE(SUM(clean_sheets), 0) AS clean_sheets").
		ColumnExpr("COALESCE(AVG(rating), 0) AS average_rating").
		GroupExpr("player_id").
		OrderExpr("average_rating DESC, player_id ASC").
		Scan(ctx, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate career stats: %w", err)
	}
	return stats, nil
}
