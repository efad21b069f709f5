package rosterdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a player or dues record is not found.
var ErrNotFound = errors.New("player not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new roster repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetByID retrieves a player by ID.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, playerID int64) (*Player, error) {
	db = r.resolveDB(db)
	player := new(Player)
	err := db.NewSelect().
		Model(player).
		Where("id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// List retrieves all players ordered by baller name.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Player, error) {
	db = r.resolveDB(db)
	var players []Player
	err := db.NewSelect().
		Model(&players).
		Order("baller_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// ListApproved retrieves all approved players ordered by baller name.
func (r *Impl) ListApproved(ctx context.Context, db bun.IDB) ([]Player, error) {
	db = r.resolveDB(db)
	var players []Player
	err := db.NewSelect().
		Model(&players).
		Where("status = ?", PlayerStatusApproved).
		Order("baller_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved players: %w", err)
	}
	return players, nil
}

// Create inserts a new player.
func (r *Impl) Create(ctx context.Context, db bun.IDB, player *Player) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(player).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// SetSuspended updates a player's suspension flag.
func (r *Impl) SetSuspended(ctx context.Context, db bun.IDB, playerID int64, suspended bool) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Player)(nil)).
		Set("suspended = ?", suspended).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update player suspension: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a player. Dependent rows (votes, goals, cards, attendance,
// ratings) are removed by the schema's ON DELETE CASCADE constraints.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, playerID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Player)(nil)).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetDue retrieves a player's dues record for a quarter.
func (r *Impl) GetDue(ctx context.Context, db bun.IDB, playerID int64, year, quarter int) (*Due, error) {
	db = r.resolveDB(db)
	due := new(Due)
	err := db.NewSelect().
		Model(due).
		Where("player_id = ?", playerID).
		Where("year = ?", year).
		Where("quarter = ?", quarter).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get dues record: %w", err)
	}
	return due, nil
}

// UpsertDue creates or updates a player's dues record for a quarter.
func (r *Impl) UpsertDue(ctx context.Context, db bun.IDB, due *Due) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(due).
		On("CONFLICT (player_id, year, quarter) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("waiver_due_by = EXCLUDED.waiver_due_by").
		Set("paid_at = EXCLUDED.paid_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert dues record: %w", err)
	}
	return nil
}

// ListEligibleIDs returns the IDs of players eligible to vote for the given
// quarter: approved, not suspended, and dues paid or under a live waiver.
func (r *Impl) ListEligibleIDs(ctx context.Context, db bun.IDB, year, quarter int, today time.Time) ([]int64, error) {
	db = r.resolveDB(db)
	var ids []int64
	err := db.NewSelect().
		Model((*Player)(nil)).
		Column("p.id").
		Join("JOIN dues AS d ON d.player_id = p.id").
		Where("p.status = ?", PlayerStatusApproved).
		Where("p.suspended = FALSE").
		Where("d.year = ?", year).
		Where("d.quarter = ?", quarter).
		Where("(d.status = ? OR (d.status = ? AND d.waiver_due_by >= ?))",
			DuesStatusPaid, DuesStatusWaiver, today).
		Order("p.id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible players: %w", err)
	}
	return ids, nil
}
