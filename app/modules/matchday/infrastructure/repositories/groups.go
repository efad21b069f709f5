package matchdaydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// InsertGroups inserts groups and memberships. Either slice may be empty;
// group IDs are assigned by the insert, so callers insert groups first and
// member rows in a second call once the IDs are known.
func (r *Impl) InsertGroups(ctx context.Context, db bun.IDB, groups []*Group, members []*GroupMember) error {
	db = r.resolveDB(db)
	if len(groups) > 0 {
		if _, err := db.NewInsert().
			Model(&groups).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert groups: %w", err)
		}
	}
	if len(members) > 0 {
		if _, err := db.NewInsert().
			Model(&members).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert group members: %w", err)
		}
	}
	return nil
}

// DeleteGroups removes a matchday's groups and memberships.
func (r *Impl) DeleteGroups(ctx context.Context, db bun.IDB, matchdayID int64) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().
		Model((*GroupMember)(nil)).
		Where("matchday_id = ?", matchdayID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete group members: %w", err)
	}
	if _, err := db.NewDelete().
		Model((*Group)(nil)).
		Where("matchday_id = ?", matchdayID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete groups: %w", err)
	}
	return nil
}

// ListGroups returns a matchday's groups with members, ordered by position.
func (r *Impl) ListGroups(ctx context.Context, db bun.IDB, matchdayID int64) ([]Group, error) {
	db = r.resolveDB(db)
	var groups []Group
	err := db.NewSelect().
		Model(&groups).
		Relation("Members").
		Where("g.matchday_id = ?", matchdayID).
		Order("g.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetGroup retrieves a group by ID.
func (r *Impl) GetGroup(ctx context.Context, db bun.IDB, groupID int64) (*Group, error) {
	db = r.resolveDB(db)
	group := new(Group)
	err := db.NewSelect().
		Model(group).
		Where("g.id = ?", groupID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListMembers returns all group memberships for a matchday.
func (r *Impl) ListMembers(ctx context.Context, db bun.IDB, matchdayID int64) ([]GroupMember, error) {
	db = r.resolveDB(db)
	var members []GroupMember
	err := db.NewSelect().
		Model(&members).
		Where("matchday_id = ?", matchdayID).
		Order("group_id ASC", "player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

// MoveMember reassigns a player's membership to another group.
func (r *Impl) MoveMember(ctx context.Context, db bun.IDB, matchdayID, playerID, toGroupID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*GroupMember)(nil)).
		Set("group_id = ?", toGroupID).
		Where("matchday_id = ?", matchdayID).
		Where("player_id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to move group member: %w", err)
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
