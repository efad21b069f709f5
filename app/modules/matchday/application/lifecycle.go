package matchdayservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

// getMatchday loads a matchday, translating the repository sentinel into the
// NotFound domain kind.
func (s *MatchdayService) getMatchday(ctx context.Context, db bun.IDB, matchdayID int64) (*matchdaydb.Matchday, error) {
	matchday, err := s.repo.GetByID(ctx, db, matchdayID)
	if err != nil {
		if errors.Is(err, matchdaydb.ErrNotFound) {
			return nil, domainerr.New(domainerr.KindNotFound, "matchday %d not found", matchdayID)
		}
		return nil, err
	}
	return matchday, nil
}

// requireNotEnded rejects event mutations once a matchday has ended.
func requireNotEnded(matchday *matchdaydb.Matchday) error {
	if matchday.Ended {
		return domainerr.New(domainerr.KindAlreadyEnded, "matchday %d has ended", matchday.ID)
	}
	return nil
}

// CreateMatchday opens a new matchday for voting.
func (s *MatchdayService) CreateMatchday(ctx context.Context, playDate time.Time, location string) (*matchdaydb.Matchday, error) {
	matchday := &matchdaydb.Matchday{
		PlayDate: playDate,
		Location: location,
		State:    matchdaydb.StateVotingOpen,
	}
	err := s.update(ctx, "CreateMatchday", 0, func(ctx context.Context, db bun.IDB) error {
		return s.repo.Create(ctx, db, matchday)
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// CloseVoting moves a matchday from voting to admin review.
func (s *MatchdayService) CloseVoting(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.update(ctx, "CloseVoting", matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if matchday.State != matchdaydb.StateVotingOpen {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot close voting from state %q", matchday.State)
		}
		matchday.State = matchdaydb.StateClosedPendingReview
		return s.repo.Update(ctx, db, matchday)
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// ReopenVoting returns a matchday under review to the voting stage. Allowed
// only while no fixture has completed.
func (s *MatchdayService) ReopenVoting(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.update(ctx, "ReopenVoting", matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if matchday.State != matchdaydb.StateClosedPendingReview {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot reopen voting from state %q", matchday.State)
		}
		completed, err := s.repo.AnyCompletedFixture(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if completed {
			return domainerr.New(domainerr.KindConflictingState, "matchday %d already has completed fixtures", matchdayID)
		}
		matchday.State = matchdaydb.StateVotingOpen
		return s.repo.Update(ctx, db, matchday)
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// Approve accepts the voter list and unlocks group generation.
func (s *MatchdayService) Approve(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	return s.review(ctx, "ApproveMatchday", matchdayID, matchdaydb.StateApproved)
}

// Reject discards the matchday after review.
func (s *MatchdayService) Reject(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	return s.review(ctx, "RejectMatchday", matchdayID, matchdaydb.StateRejected)
}

func (s *MatchdayService) review(ctx context.Context, op string, matchdayID int64, to matchdaydb.State) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.update(ctx, op, matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if matchday.State != matchdaydb.StateClosedPendingReview {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot move to %q from state %q", to, matchday.State)
		}
		matchday.State = to
		return s.repo.Update(ctx, db, matchday)
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// EndMatchday freezes the matchday. Every generated fixture must have
// completed; the rating snapshot commits in the same transaction.
func (s *MatchdayService) EndMatchday(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.update(ctx, "EndMatchday", matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if matchday.Ended {
			return domainerr.New(domainerr.KindAlreadyEnded, "matchday %d has already ended", matchdayID)
		}
		if matchday.State != matchdaydb.StateApproved {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot end matchday from state %q", matchday.State)
		}
		total, err := s.repo.CountFixtures(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if total == 0 {
			return domainerr.New(domainerr.KindInvalidTransition, "matchday %d has no fixtures", matchdayID)
		}
		incomplete, err := s.repo.CountIncompleteFixtures(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if incomplete > 0 {
			return domainerr.New(domainerr.KindInvalidTransition, "matchday %d has %d incomplete fixtures", matchdayID, incomplete)
		}

		matchday.Ended = true
		if err := s.repo.Update(ctx, db, matchday); err != nil {
			return err
		}
		if s.finalizer != nil {
			return s.finalizer.SnapshotMatchday(ctx, db, matchdayID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// ReopenMatchday unfreezes an ended matchday, discarding its rating snapshot.
func (s *MatchdayService) ReopenMatchday(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.update(ctx, "ReopenMatchday", matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if !matchday.Ended {
			return domainerr.New(domainerr.KindInvalidTransition, "matchday %d has not ended", matchdayID)
		}

		matchday.Ended = false
		if err := s.repo.Update(ctx, db, matchday); err != nil {
			return err
		}
		if s.finalizer != nil {
			return s.finalizer.DiscardMatchday(ctx, db, matchdayID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// DeleteMatchday removes a matchday and everything recorded against it.
func (s *MatchdayService) DeleteMatchday(ctx context.Context, matchdayID int64) error {
	return s.update(ctx, "DeleteMatchday", matchdayID, func(ctx context.Context, db bun.IDB) error {
		err := s.repo.Delete(ctx, db, matchdayID)
		if errors.Is(err, matchdaydb.ErrNotFound) {
			return domainerr.New(domainerr.KindNotFound, "matchday %d not found", matchdayID)
		}
		if err != nil {
			return err
		}
		if s.finalizer != nil {
			return s.finalizer.DiscardMatchday(ctx, db, matchdayID)
		}
		return nil
	})
}
