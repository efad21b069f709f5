package matchdaydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// InsertGoal records a goal.
func (r *Impl) InsertGoal(ctx context.Context, db bun.IDB, goal *Goal) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().
		Model(goal).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// GetGoal retrieves a goal by ID.
func (r *Impl) GetGoal(ctx context.Context, db bun.IDB, goalID int64) (*Goal, error) {
	db = r.resolveDB(db)
	goal := new(Goal)
	err := db.NewSelect().
		Model(goal).
		Where("id = ?", goalID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// DeleteGoal removes a goal.
func (r *Impl) DeleteGoal(ctx context.Context, db bun.IDB, goalID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Goal)(nil)).
		Where("id = ?", goalID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
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

// ListGoalsByFixture returns a fixture's goals in recording order.
func (r *Impl) ListGoalsByFixture(ctx context.Context, db bun.IDB, fixtureID int64) ([]Goal, error) {
	db = r.resolveDB(db)
	var goals []Goal
	err := db.NewSelect().
		Model(&goals).
		Where("fixture_id = ?", fixtureID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixture goals: %w", err)
	}
	return goals, nil
}

// ListGoalsByMatchday returns all goals recorded on a matchday.
func (r *Impl) ListGoalsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]Goal, error) {
	db = r.resolveDB(db)
	var goals []Goal
	err := db.NewSelect().
		Model(&goals).
		Where("matchday_id = ?", matchdayID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchday goals: %w", err)
	}
	return goals, nil
}

// InsertCard records a disciplinary card. Cards are append-only.
func (r *Impl) InsertCard(ctx context.Context, db bun.IDB, card *Card) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().
		Model(card).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

// ListCardsByFixture returns a fixture's cards in issue order.
func (r *Impl) ListCardsByFixture(ctx context.Context, db bun.IDB, fixtureID int64) ([]Card, error) {
	db = r.resolveDB(db)
	var cards []Card
	err := db.NewSelect().
		Model(&cards).
		Where("fixture_id = ?", fixtureID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixture cards: %w", err)
	}
	return cards, nil
}

// ListCardsByMatchday returns all cards issued on a matchday.
func (r *Impl) ListCardsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]Card, error) {
	db = r.resolveDB(db)
	var cards []Card
	err := db.NewSelect().
		Model(&cards).
		Where("matchday_id = ?", matchdayID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchday cards: %w", err)
	}
	return cards, nil
}

// UpsertAttendance sets a grouped player's presence flag.
func (r *Impl) UpsertAttendance(ctx context.Context, db bun.IDB, record *Attendance) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(record).
		On("CONFLICT (matchday_id, player_id) DO UPDATE").
		Set("present = EXCLUDED.present").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return nil
}

// ListAttendance returns all attendance records for a matchday.
func (r *Impl) ListAttendance(ctx context.Context, db bun.IDB, matchdayID int64) ([]Attendance, error) {
	db = r.resolveDB(db)
	var records []Attendance
	err := db.NewSelect().
		Model(&records).
		Where("matchday_id = ?", matchdayID).
		Order("player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
