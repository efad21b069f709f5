package matchdayservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// EligibilityChecker answers roster questions the matchday flow depends on.
// Implemented by the roster service.
type EligibilityChecker interface {
	// CheckEligibility returns nil when the player may vote as of the given
	// time, or an IneligibleVoter/NotFound domain error.
	CheckEligibility(ctx context.Context, playerID int64, at time.Time) error

	// CheckRegistered returns nil when the player exists and is approved.
	// Used by admin vote overrides, which bypass dues standing only.
	CheckRegistered(ctx context.Context, playerID int64) error

	// EligibleVoterIDs returns every player eligible to vote as of the given
	// time.
	EligibleVoterIDs(ctx context.Context, at time.Time) ([]int64, error)
}

// RatingFinalizer freezes and discards matchday ratings. Implemented by the
// rating service; both calls run inside the matchday transaction so the
// lifecycle flip and the snapshot commit together.
type RatingFinalizer interface {
	SnapshotMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error
	DiscardMatchday(ctx context.Context, db bun.IDB, matchdayID int64) error
}
