package rosterservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/internal/observability"
)

const serviceName = "RosterService"

// RosterService implements the Service interface.
type RosterService struct {
	repo    rosterdb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	repo rosterdb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &RosterService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// startSpan begins a span when a tracer is configured.
func (s *RosterService) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	if s.tracer != nil {
		return s.tracer.Start(ctx, op, trace.WithAttributes(
			attribute.String("operation", op),
		))
	}
	return ctx, trace.SpanFromContext(ctx)
}

// run executes fn inside a transaction with tracing and metrics. With no
// database configured (tests), fn runs against a nil handle and the fakes
// fall back to their defaults.
func (s *RosterService) run(ctx context.Context, op string, fn func(ctx context.Context, db bun.IDB) error) error {
	ctx, span := s.startSpan(ctx, op)
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, op, serviceName)
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, op, serviceName, time.Since(start))
	}()

	var err error
	if s.db == nil {
		err = fn(ctx, nil)
	} else {
		err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			return fn(ctx, tx)
		})
	}
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, op, serviceName)
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "operation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.metrics.RecordOperationSuccess(ctx, op, serviceName)
	return nil
}

// GetPlayer retrieves a player by ID.
func (s *RosterService) GetPlayer(ctx context.Context, playerID int64) (*rosterdb.Player, error) {
	var player *rosterdb.Player
	err := s.run(ctx, "GetPlayer", func(ctx context.Context, db bun.IDB) error {
		var err error
		player, err = s.repo.GetByID(ctx, db, playerID)
		return err
	})
	return player, err
}

// ListPlayers retrieves all players.
func (s *RosterService) ListPlayers(ctx context.Context) ([]rosterdb.Player, error) {
	var players []rosterdb.Player
	err := s.run(ctx, "ListPlayers", func(ctx context.Context, db bun.IDB) error {
		var err error
		players, err = s.repo.List(ctx, db)
		return err
	})
	return players, err
}

// ListApprovedPlayers retrieves all approved players.
func (s *RosterService) ListApprovedPlayers(ctx context.Context) ([]rosterdb.Player, error) {
	var players []rosterdb.Player
	err := s.run(ctx, "ListApprovedPlayers", func(ctx context.Context, db bun.IDB) error {
		var err error
		players, err = s.repo.ListApproved(ctx, db)
		return err
	})
	return players, err
}

// SuspendPlayer marks a player as suspended.
func (s *RosterService) SuspendPlayer(ctx context.Context, playerID int64) error {
	return s.run(ctx, "SuspendPlayer", func(ctx context.Context, db bun.IDB) error {
		return s.repo.SetSuspended(ctx, db, playerID, true)
	})
}

// ActivatePlayer clears a player's suspension.
func (s *RosterService) ActivatePlayer(ctx context.Context, playerID int64) error {
	return s.run(ctx, "ActivatePlayer", func(ctx context.Context, db bun.IDB) error {
		return s.repo.SetSuspended(ctx, db, playerID, false)
	})
}

// DeletePlayer removes a player and all dependent records.
func (s *RosterService) DeletePlayer(ctx context.Context, playerID int64) error {
	return s.run(ctx, "DeletePlayer", func(ctx context.Context, db bun.IDB) error {
		return s.repo.Delete(ctx, db, playerID)
	})
}

// SetDuesStatus creates or updates a player's dues record for a quarter.
func (s *RosterService) SetDuesStatus(ctx context.Context, playerID int64, year, quarter int, status rosterdb.DuesStatus, waiverDueBy *time.Time) (*rosterdb.Due, error) {
	due := &rosterdb.Due{
		PlayerID:    playerID,
		Year:        year,
		Quarter:     quarter,
		Status:      status,
		WaiverDueBy: waiverDueBy,
	}
	if status == rosterdb.DuesStatusPaid {
		now := time.Now()
		due.PaidAt = &now
	}

	err := s.run(ctx, "SetDuesStatus", func(ctx context.Context, db bun.IDB) error {
		if _, err := s.repo.GetByID(ctx, db, playerID); err != nil {
			return err
		}
		return s.repo.UpsertDue(ctx, db, due)
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}

// EligibleVoterIDs returns the IDs of all players eligible to vote as of the
// given time.
func (s *RosterService) EligibleVoterIDs(ctx context.Context, at time.Time) ([]int64, error) {
	year, quarter := QuarterOf(at)
	var ids []int64
	err := s.run(ctx, "EligibleVoterIDs", func(ctx context.Context, db bun.IDB) error {
		var err error
		ids, err = s.repo.ListEligibleIDs(ctx, db, year, quarter, at)
		return err
	})
	return ids, err
}
