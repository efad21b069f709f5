package rostermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players and dues tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id BIGSERIAL PRIMARY KEY,
					first_name VARCHAR(100) NOT NULL,
					surname VARCHAR(100) NOT NULL,
					baller_name VARCHAR(100) NOT NULL UNIQUE,
					jersey_number INT NOT NULL CHECK (jersey_number BETWEEN 1 AND 100),
					email VARCHAR(255),
					status VARCHAR(20) NOT NULL DEFAULT 'pending',
					suspended BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					approved_at TIMESTAMPTZ
				);
				CREATE INDEX IF NOT EXISTS idx_players_status ON players(status);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS dues (
					id BIGSERIAL PRIMARY KEY,
					player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					year INT NOT NULL,
					quarter INT NOT NULL CHECK (quarter BETWEEN 1 AND 4),
					status VARCHAR(20) NOT NULL DEFAULT 'owing',
					waiver_due_by DATE,
					paid_at TIMESTAMPTZ,
					UNIQUE (player_id, year, quarter)
				);
			`); err != nil {
				return fmt.Errorf("failed to create dues table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players and dues tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS dues;`); err != nil {
				return fmt.Errorf("failed to drop dues table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS players;`); err != nil {
				return fmt.Errorf("failed to drop players table: %w", err)
			}
			return nil
		})
	})
}
