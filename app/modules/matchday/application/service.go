package matchdayservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/internal/observability"
)

const serviceName = "MatchdayService"

// MatchdayService drives the matchday lifecycle: voting, groups, fixtures,
// recorded events, and the end-of-day handoff to the rating module.
type MatchdayService struct {
	repo      matchdaydb.Repository
	roster    EligibilityChecker
	finalizer RatingFinalizer
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
	locks     *matchdayLocks
	now       func() time.Time
}

// NewMatchdayService creates a new MatchdayService.
func NewMatchdayService(
	repo matchdaydb.Repository,
	roster EligibilityChecker,
	finalizer RatingFinalizer,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MatchdayService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &MatchdayService{
		repo:      repo,
		roster:    roster,
		finalizer: finalizer,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		locks:     newMatchdayLocks(),
		now:       time.Now,
	}
}

// startSpan begins a span when a tracer is configured.
func (s *MatchdayService) startSpan(ctx context.Context, op string, matchdayID int64) (context.Context, trace.Span) {
	if s.tracer != nil {
		return s.tracer.Start(ctx, op, trace.WithAttributes(
			attribute.String("operation", op),
			attribute.Int64("matchday_id", matchdayID),
		))
	}
	return ctx, trace.SpanFromContext(ctx)
}

// runInTx executes fn inside a transaction. With no database configured
// (tests), fn runs against a nil handle.
func (s *MatchdayService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// update serializes a mutating operation against its matchday and runs it
// inside a transaction with tracing and metrics. Reads stay lock-free.
func (s *MatchdayService) update(ctx context.Context, op string, matchdayID int64, fn func(ctx context.Context, db bun.IDB) error) error {
	ctx, span := s.startSpan(ctx, op, matchdayID)
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, op, serviceName)
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, op, serviceName, time.Since(start))
	}()

	unlock := s.locks.lock(matchdayID)
	defer unlock()

	err := s.runInTx(ctx, fn)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, op, serviceName)
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "matchday operation failed",
			slog.String("operation", op),
			slog.Int64("matchday_id", matchdayID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.metrics.RecordOperationSuccess(ctx, op, serviceName)
	s.logger.InfoContext(ctx, "matchday operation completed",
		slog.String("operation", op),
		slog.Int64("matchday_id", matchdayID),
	)
	return nil
}

// read runs a query with tracing and metrics, without locking.
func (s *MatchdayService) read(ctx context.Context, op string, matchdayID int64, fn func(ctx context.Context, db bun.IDB) error) error {
	ctx, span := s.startSpan(ctx, op, matchdayID)
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, op, serviceName)
	err := fn(ctx, nil)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, op, serviceName)
		span.RecordError(err)
		return err
	}
	s.metrics.RecordOperationSuccess(ctx, op, serviceName)
	return nil
}
