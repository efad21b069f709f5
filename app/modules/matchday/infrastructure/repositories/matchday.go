package matchdaydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a matchday or one of its records is not found.
var ErrNotFound = errors.New("matchday not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new matchday repository.
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

// Create inserts a new matchday.
func (r *Impl) Create(ctx context.Context, db bun.IDB, matchday *Matchday) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(matchday).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create matchday: %w", err)
	}
	return nil
}

// GetByID retrieves a matchday by ID.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, matchdayID int64) (*Matchday, error) {
	db = r.resolveDB(db)
	matchday := new(Matchday)
	err := db.NewSelect().
		Model(matchday).
		Where("id = ?", matchdayID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get matchday: %w", err)
	}
	return matchday, nil
}

// List retrieves all matchdays, most recent play date first.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Matchday, error) {
	db = r.resolveDB(db)
	var matchdays []Matchday
	err := db.NewSelect().
		Model(&matchdays).
		Order("play_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchdays: %w", err)
	}
	return matchdays, nil
}

// Update persists a matchday's state and flags.
func (r *Impl) Update(ctx context.Context, db bun.IDB, matchday *Matchday) error {
	db = r.resolveDB(db)
	matchday.UpdatedAt = time.Now()
	result, err := db.NewUpdate().
		Model(matchday).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update matchday: %w", err)
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

// Delete removes a matchday. Dependent rows are removed by the schema's
// ON DELETE CASCADE constraints.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, matchdayID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Matchday)(nil)).
		Where("id = ?", matchdayID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete matchday: %w", err)
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
