package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"

	rosterservice "github.com/timkene/EKO-FITNESS/app/modules/roster/application"
	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/config"
)

// seed fills a development database with fake approved players, each with
// paid dues for the current quarter, so the matchday flow can be exercised
// end to end without real signups.
func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	cliApp := &cli.App{
		Name:  "seed",
		Usage: "seed a development database with fake players",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "players", Value: 20, Usage: "number of fake players to create"},
			&cli.Uint64Flag{Name: "seed", Value: 0, Usage: "fixed faker seed for reproducible rosters"},
		},
		Action: func(c *cli.Context) error {
			return seedPlayers(c.Context, db, c.Int("players"), c.Uint64("seed"))
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedPlayers(ctx context.Context, db *bun.DB, count int, seed uint64) error {
	faker := gofakeit.New(seed)
	repo := rosterdb.NewRepository(db)

	now := time.Now()
	year, quarter := rosterservice.QuarterOf(now)

	for i := 0; i < count; i++ {
		player := &rosterdb.Player{
			FirstName:    faker.FirstName(),
			Surname:      faker.LastName(),
			BallerName:   fmt.Sprintf("%s_%d", faker.Username(), i+1),
			JerseyNumber: faker.Number(1, 100),
			Email:        faker.Email(),
			Status:       rosterdb.PlayerStatusApproved,
			ApprovedAt:   &now,
		}
		if err := repo.Create(ctx, db, player); err != nil {
			return fmt.Errorf("failed to create player %q: %w", player.BallerName, err)
		}

		paidAt := now
		due := &rosterdb.Due{
			PlayerID: player.ID,
			Year:     year,
			Quarter:  quarter,
			Status:   rosterdb.DuesStatusPaid,
			PaidAt:   &paidAt,
		}
		if err := repo.UpsertDue(ctx, db, due); err != nil {
			return fmt.Errorf("failed to record dues for player %d: %w", player.ID, err)
		}
	}

	fmt.Printf("Seeded %d approved players with paid dues for Q%d %d\n", count, quarter, year)
	return nil
}
