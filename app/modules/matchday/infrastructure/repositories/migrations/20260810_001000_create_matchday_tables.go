package matchdaymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matchday tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matchdays (
					id BIGSERIAL PRIMARY KEY,
					play_date DATE NOT NULL,
					location VARCHAR(255),
					state VARCHAR(30) NOT NULL DEFAULT 'voting_open',
					groups_published BOOLEAN NOT NULL DEFAULT FALSE,
					fixtures_published BOOLEAN NOT NULL DEFAULT FALSE,
					ended BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create matchdays table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matchday_votes (
					id BIGSERIAL PRIMARY KEY,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					voted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (matchday_id, player_id)
				);
				CREATE INDEX IF NOT EXISTS idx_matchday_votes_matchday ON matchday_votes(matchday_id);
			`); err != nil {
				return fmt.Errorf("failed to create matchday_votes table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matchday_groups (
					id BIGSERIAL PRIMARY KEY,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					name VARCHAR(100) NOT NULL,
					position INT NOT NULL,
					UNIQUE (matchday_id, position)
				);

				CREATE TABLE IF NOT EXISTS matchday_group_members (
					id BIGSERIAL PRIMARY KEY,
					group_id BIGINT NOT NULL REFERENCES matchday_groups(id) ON DELETE CASCADE,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					UNIQUE (matchday_id, player_id)
				);
				CREATE INDEX IF NOT EXISTS idx_group_members_group ON matchday_group_members(group_id);
			`); err != nil {
				return fmt.Errorf("failed to create group tables: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matchday_fixtures (
					id BIGSERIAL PRIMARY KEY,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					home_group_id BIGINT NOT NULL REFERENCES matchday_groups(id) ON DELETE CASCADE,
					away_group_id BIGINT NOT NULL REFERENCES matchday_groups(id) ON DELETE CASCADE,
					state VARCHAR(20) NOT NULL DEFAULT 'pending',
					home_goals INT NOT NULL DEFAULT 0,
					away_goals INT NOT NULL DEFAULT 0,
					started_at TIMESTAMPTZ,
					completed_at TIMESTAMPTZ
				);
				CREATE INDEX IF NOT EXISTS idx_fixtures_matchday ON matchday_fixtures(matchday_id);
			`); err != nil {
				return fmt.Errorf("failed to create matchday_fixtures table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS fixture_goals (
					id BIGSERIAL PRIMARY KEY,
					fixture_id BIGINT NOT NULL REFERENCES matchday_fixtures(id) ON DELETE CASCADE,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					scorer_player_id BIGINT REFERENCES players(id) ON DELETE CASCADE,
					assist_player_id BIGINT REFERENCES players(id) ON DELETE SET NULL,
					is_home_goal BOOLEAN NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_fixture_goals_fixture ON fixture_goals(fixture_id);
				CREATE INDEX IF NOT EXISTS idx_fixture_goals_matchday ON fixture_goals(matchday_id);
			`); err != nil {
				return fmt.Errorf("failed to create fixture_goals table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS fixture_cards (
					id BIGSERIAL PRIMARY KEY,
					fixture_id BIGINT NOT NULL REFERENCES matchday_fixtures(id) ON DELETE CASCADE,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					color VARCHAR(10) NOT NULL,
					issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_fixture_cards_matchday ON fixture_cards(matchday_id);
			`); err != nil {
				return fmt.Errorf("failed to create fixture_cards table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matchday_attendance (
					id BIGSERIAL PRIMARY KEY,
					matchday_id BIGINT NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
					player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					present BOOLEAN NOT NULL DEFAULT FALSE,
					UNIQUE (matchday_id, player_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create matchday_attendance table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping matchday tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS matchday_attendance;
				DROP TABLE IF EXISTS fixture_cards;
				DROP TABLE IF EXISTS fixture_goals;
				DROP TABLE IF EXISTS matchday_fixtures;
				DROP TABLE IF EXISTS matchday_group_members;
				DROP TABLE IF EXISTS matchday_groups;
				DROP TABLE IF EXISTS matchday_votes;
				DROP TABLE IF EXISTS matchdays;
			`); err != nil {
				return fmt.Errorf("failed to drop matchday tables: %w", err)
			}
			return nil
		})
	})
}
