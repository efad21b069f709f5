package rosterservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
)

// QuarterOf returns the calendar year and quarter (1-4) containing t.
func QuarterOf(t time.Time) (year, quarter int) {
	return t.Year(), (int(t.Month())-1)/3 + 1
}

// dueSatisfies reports whether a dues record puts a player in good standing
// as of today. A waiver past its due date counts as owing.
func dueSatisfies(due *rosterdb.Due, today time.Time) bool {
	if due == nil {
		return false
	}
	switch due.Status {
	case rosterdb.DuesStatusPaid:
		return true
	case rosterdb.DuesStatusWaiver:
		if due.WaiverDueBy == nil {
			return false
		}
		y, m, d := today.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
		return !due.WaiverDueBy.Before(day)
	default:
		return false
	}
}

// CheckRegistered returns nil when the player exists, is approved, and is
// not suspended. Dues standing is not checked; admin vote overrides bypass it.
func (s *RosterService) CheckRegistered(ctx context.Context, playerID int64) error {
	return s.run(ctx, "CheckRegistered", func(ctx context.Context, db bun.IDB) error {
		player, err := s.repo.GetByID(ctx, db, playerID)
		if err != nil {
			if errors.Is(err, rosterdb.ErrNotFound) {
				return domainerr.New(domainerr.KindNotFound, "player %d not found", playerID)
			}
			return err
		}
		if player.Status != rosterdb.PlayerStatusApproved {
			return domainerr.New(domainerr.KindIneligibleVoter, "player %d is not approved", playerID)
		}
		if player.Suspended {
			return domainerr.New(domainerr.KindIneligibleVoter, "player %d is suspended", playerID)
		}
		return nil
	})
}

// CheckEligibility returns nil when the player may vote as of the given time,
// or an IneligibleVoter domain error describing why not.
func (s *RosterService) CheckEligibility(ctx context.Context, playerID int64, at time.Time) error {
	return s.run(ctx, "CheckEligibility", func(ctx context.Context, db bun.IDB) error {
		return s.checkEligibility(ctx, db, playerID, at)
	})
}

func (s *RosterService) checkEligibility(ctx context.Context, db bun.IDB, playerID int64, at time.Time) error {
	player, err := s.repo.GetByID(ctx, db, playerID)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return domainerr.New(domainerr.KindNotFound, "player %d not found", playerID)
		}
		return err
	}

	if player.Status != rosterdb.PlayerStatusApproved {
		return domainerr.New(domainerr.KindIneligibleVoter, "player %d is not approved", playerID)
	}
	if player.Suspended {
		return domainerr.New(domainerr.KindIneligibleVoter, "player %d is suspended", playerID)
	}

	year, quarter := QuarterOf(at)
	due, err := s.repo.GetDue(ctx, db, playerID, year, quarter)
	if err != nil && !errors.Is(err, rosterdb.ErrNotFound) {
		return err
	}
	if !dueSatisfies(due, at) {
		return domainerr.New(domainerr.KindIneligibleVoter, "player %d has outstanding dues for Q%d %d", playerID, quarter, year)
	}

	return nil
}
