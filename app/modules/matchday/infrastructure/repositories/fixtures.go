package matchdaydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// InsertFixtures inserts the generated fixtures for a matchday.
func (r *Impl) InsertFixtures(ctx context.Context, db bun.IDB, fixtures []*Fixture) error {
	db = r.resolveDB(db)
	if len(fixtures) == 0 {
		return nil
	}
	if _, err := db.NewInsert().
		Model(&fixtures).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert fixtures: %w", err)
	}
	return nil
}

// ListFixtures returns a matchday's fixtures in creation order.
func (r *Impl) ListFixtures(ctx context.Context, db bun.IDB, matchdayID int64) ([]Fixture, error) {
	db = r.resolveDB(db)
	var fixtures []Fixture
	err := db.NewSelect().
		Model(&fixtures).
		Where("matchday_id = ?", matchdayID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}
	return fixtures, nil
}

// GetFixture retrieves a fixture by ID.
func (r *Impl) GetFixture(ctx context.Context, db bun.IDB, fixtureID int64) (*Fixture, error) {
	db = r.resolveDB(db)
	fixture := new(Fixture)
	err := db.NewSelect().
		Model(fixture).
		Where("id = ?", fixtureID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fixture: %w", err)
	}
	return fixture, nil
}

// UpdateFixture persists a fixture's state and score.
func (r *Impl) UpdateFixture(ctx context.Context, db bun.IDB, fixture *Fixture) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(fixture).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update fixture: %w", err)
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

// CountFixtures returns the number of fixtures for a matchday.
func (r *Impl) CountFixtures(ctx context.Context, db bun.IDB, matchdayID int64) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Fixture)(nil)).
		Where("matchday_id = ?", matchdayID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count fixtures: %w", err)
	}
	return count, nil
}

// CountIncompleteFixtures returns the number of fixtures not yet completed.
func (r *Impl) CountIncompleteFixtures(ctx context.Context, db bun.IDB, matchdayID int64) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Fixture)(nil)).
		Where("matchday_id = ?", matchdayID).
		Where("state != ?", FixtureStateCompleted).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count incomplete fixtures: %w", err)
	}
	return count, nil
}

// AnyCompletedFixture reports whether any fixture of the matchday completed.
func (r *Impl) AnyCompletedFixture(ctx context.Context, db bun.IDB, matchdayID int64) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Fixture)(nil)).
		Where("matchday_id = ?", matchdayID).
		Where("state = ?", FixtureStateCompleted).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check completed fixtures: %w", err)
	}
	return exists, nil
}
