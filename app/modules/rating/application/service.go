package ratingservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	ratingdb "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/internal/observability"
)

const serviceName = "RatingService"

// PlayerDirectory lists the approved roster for leaderboard display.
// Implemented by the roster service.
type PlayerDirectory interface {
	ListApprovedPlayers(ctx context.Context) ([]rosterdb.Player, error)
}

// MatchdayData is the slice of the matchday repository the engine input
// needs. Satisfied by matchdaydb.Repository.
type MatchdayData interface {
	GetByID(ctx context.Context, db bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error)
	ListGroups(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Group, error)
	ListFixtures(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Fixture, error)
	ListGoalsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Goal, error)
	ListCardsByMatchday(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Card, error)
	ListAttendance(ctx context.Context, db bun.IDB, matchdayID int64) ([]matchdaydb.Attendance, error)
}

// RatingService computes live matchday ratings, freezes them when a matchday
// ends, and serves the season leaderboard from the frozen snapshots.
type RatingService struct {
	ratings   ratingdb.Repository
	matchdays MatchdayData
	players   PlayerDirectory
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
	cache     leaderboardCache
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewRatingService creates a new RatingService. cacheTTL bounds how stale a
// cached leaderboard may be between explicit invalidations.
func NewRatingService(
	ratings ratingdb.Repository,
	matchdays MatchdayData,
	players PlayerDirectory,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	cacheTTL time.Duration,
) *RatingService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &RatingService{
		ratings:   ratings,
		matchdays: matchdays,
		players:   players,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// startSpan begins a span when a tracer is configured.
func (s *RatingService) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	if s.tracer != nil {
		return s.tracer.Start(ctx, op, trace.WithAttributes(
			attribute.String("operation", op),
		))
	}
	return ctx, trace.SpanFromContext(ctx)
}

// read runs a query with tracing and metrics against the latest committed
// state.
func (s *RatingService) read(ctx context.Context, op string, fn func(ctx context.Context, db bun.IDB) error) error {
	ctx, span := s.startSpan(ctx, op)
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, op, serviceName)
	err := fn(ctx, nil)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, op, serviceName)
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "rating query failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.metrics.RecordOperationSuccess(ctx, op, serviceName)
	return nil
}

// leaderboardCache holds the last computed leaderboard until its TTL lapses
// or a snapshot changes it.
type leaderboardCache struct {
	mu      sync.RWMutex
	value   *Leaderboard
	expires time.Time
}

func (c *leaderboardCache) get(now time.Time) *Leaderboard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.value == nil || now.After(c.expires) {
		return nil
	}
	return c.value
}

func (c *leaderboardCache) set(value *Leaderboard, expires time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.expires = expires
}

func (c *leaderboardCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
}
