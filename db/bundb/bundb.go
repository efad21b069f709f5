package bundb

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	ratingdb "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/repositories"
	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/config"
)

// NewBunDB opens a Postgres connection pool and wraps it in a bun.DB with all
// module models registered.
func NewBunDB(cfg config.PostgresConfig) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*rosterdb.Player)(nil),
		(*rosterdb.Due)(nil),
		(*matchdaydb.Matchday)(nil),
		(*matchdaydb.Vote)(nil),
		(*matchdaydb.Group)(nil),
		(*matchdaydb.GroupMember)(nil),
		(*matchdaydb.Fixture)(nil),
		(*matchdaydb.Goal)(nil),
		(*matchdaydb.Card)(nil),
		(*matchdaydb.Attendance)(nil),
		(*ratingdb.PlayerRating)(nil),
	)

	return db, nil
}
