package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	authjwt "github.com/timkene/EKO-FITNESS/app/modules/auth/infrastructure/jwt"
	matchdayservice "github.com/timkene/EKO-FITNESS/app/modules/matchday/application"
	matchdayhandlers "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/handlers"
	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	ratingservice "github.com/timkene/EKO-FITNESS/app/modules/rating/application"
	ratinghandlers "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/handlers"
	ratingdb "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/repositories"
	rosterservice "github.com/timkene/EKO-FITNESS/app/modules/roster/application"
	rosterhandlers "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/handlers"
	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/config"
	"github.com/timkene/EKO-FITNESS/db/bundb"
	"github.com/timkene/EKO-FITNESS/internal/observability"
)

// App wires the matchday service together: configuration, database, metrics,
// the module services, and their HTTP handlers.
type App struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry

	db          *bun.DB
	jwtProvider authjwt.Provider

	RosterService   *rosterservice.RosterService
	MatchdayService *matchdayservice.MatchdayService
	RatingService   *ratingservice.RatingService

	rosterHandlers   *rosterhandlers.RosterHandlers
	matchdayHandlers *matchdayhandlers.MatchdayHandlers
	ratingHandlers   *ratinghandlers.RatingHandlers
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.Environment)

	db, err := bundb.NewBunDB(cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewPrometheusMetrics(registry)
	tracer := otel.Tracer("eko-fitness")

	app := &App{
		Cfg:         cfg,
		Logger:      logger,
		Registry:    registry,
		db:          db,
		jwtProvider: authjwt.NewProvider(cfg.JWT.Secret),
	}
	app.buildModules(logger, metrics, tracer, db)

	logger.InfoContext(ctx, "application initialized",
		slog.String("environment", cfg.Environment),
		slog.String("http_address", cfg.HTTP.Address),
	)
	return app, nil
}

// buildModules constructs repositories, services, and handlers in dependency
// order: roster feeds matchday and rating, rating finalizes matchday.
func (app *App) buildModules(logger *slog.Logger, metrics observability.OperationMetrics, tracer trace.Tracer, db *bun.DB) {
	rosterRepo := rosterdb.NewRepository(db)
	matchdayRepo := matchdaydb.NewRepository(db)
	ratingRepo := ratingdb.NewRepository(db)

	app.RosterService = rosterservice.NewRosterService(rosterRepo, logger, metrics, tracer, db)
	app.RatingService = ratingservice.NewRatingService(
		ratingRepo,
		matchdayRepo,
		app.RosterService,
		logger,
		metrics,
		tracer,
		db,
		app.Cfg.Leaderboard.CacheTTL,
	)
	app.MatchdayService = matchdayservice.NewMatchdayService(
		matchdayRepo,
		app.RosterService,
		app.RatingService,
		logger,
		metrics,
		tracer,
		db,
	)

	app.rosterHandlers = rosterhandlers.NewRosterHandlers(app.RosterService, logger, tracer)
	app.matchdayHandlers = matchdayhandlers.NewMatchdayHandlers(app.MatchdayService, logger, tracer)
	app.ratingHandlers = ratinghandlers.NewRatingHandlers(app.RatingService, logger, tracer)
}

// Close releases the application's resources.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	if err := app.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
