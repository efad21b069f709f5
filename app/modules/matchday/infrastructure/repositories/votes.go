package matchdaydb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// AddVote records a vote. Returns false when the player had already voted,
// in which case nothing changes.
func (r *Impl) AddVote(ctx context.Context, db bun.IDB, vote *Vote) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewInsert().
		Model(vote).
		On("CONFLICT (matchday_id, player_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to add vote: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// RemoveVote deletes a player's vote. Returns false when no vote existed.
func (r *Impl) RemoveVote(ctx context.Context, db bun.IDB, matchdayID, playerID int64) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Vote)(nil)).
		Where("matchday_id = ?", matchdayID).
		Where("player_id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove vote: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListVotes returns a matchday's votes ordered by vote time, then player ID.
// The ordering is the partition input, so it must be deterministic.
func (r *Impl) ListVotes(ctx context.Context, db bun.IDB, matchdayID int64) ([]Vote, error) {
	db = r.resolveDB(db)
	var votes []Vote
	err := db.NewSelect().
		Model(&votes).
		Where("matchday_id = ?", matchdayID).
		Order("voted_at ASC", "player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}
