package ratingmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rating tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS player_ratings (
					id BIGSERIAL PRIMARY KEY,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					rating INT NOT NULL,
					goals INT NOT NULL DEFAULT 0,
					assists INT NOT NULL DEFAULT 0,
					yellows INT NOT NULL DEFAULT 0,
					reds INT NOT NULL DEFAULT 0,
					clean_sheets INT NOT NULL DEFAULT 0,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (matchday_id, player_id)
				);
				CREATE INDEX IF NOT EXISTS idx_player_ratings_player ON player_ratings(player_id);
			`); err != nil {
				return fmt.Errorf("failed to create player_ratings table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rating tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS player_ratings;
			`); err != nil {
				return fmt.Errorf("failed to drop player_ratings table: %w", err)
			}
			return nil
		})
	})
}
