package matchdayservice

import (
	"context"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

// requireVotingOpen rejects vote mutations outside the voting stage.
func requireVotingOpen(matchday *matchdaydb.Matchday) error {
	if matchday.State != matchdaydb.StateVotingOpen {
		return domainerr.New(domainerr.KindVotingClosed, "voting is closed for matchday %d", matchday.ID)
	}
	return nil
}

// Vote records a member's availability vote. Voting again is a no-op.
func (s *MatchdayService) Vote(ctx context.Context, matchdayID, playerID int64) error {
	return s.update(ctx, "Vote", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireVotingOpen(matchday); err != nil {
			return err
		}
		if err := s.roster.CheckEligibility(ctx, playerID, s.now()); err != nil {
			return err
		}

		_, err = s.repo.AddVote(ctx, db, &matchdaydb.Vote{
			MatchdayID: matchdayID,
			PlayerID:   playerID,
			VotedAt:    s.now(),
		})
		return err
	})
}

// AdminAddVote records a vote on a player's behalf. Bypasses dues standing
// but still requires an approved, unsuspended player and open voting.
func (s *MatchdayService) AdminAddVote(ctx context.Context, matchdayID, playerID int64) error {
	return s.update(ctx, "AdminAddVote", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireVotingOpen(matchday); err != nil {
			return err
		}
		if err := s.roster.CheckRegistered(ctx, playerID); err != nil {
			return err
		}

		_, err = s.repo.AddVote(ctx, db, &matchdaydb.Vote{
			MatchdayID: matchdayID,
			PlayerID:   playerID,
			VotedAt:    s.now(),
		})
		return err
	})
}

// AdminRemoveVote withdraws a player's vote.
func (s *MatchdayService) AdminRemoveVote(ctx context.Context, matchdayID, playerID int64) error {
	return s.update(ctx, "AdminRemoveVote", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireVotingOpen(matchday); err != nil {
			return err
		}

		removed, err := s.repo.RemoveVote(ctx, db, matchdayID, playerID)
		if err != nil {
			return err
		}
		if !removed {
			return domainerr.New(domainerr.KindNotFound, "player %d has no vote on matchday %d", playerID, matchdayID)
		}
		return nil
	})
}

// AdminVoteAll records a vote for every currently eligible member. Existing
// votes are left untouched. Returns the number of votes added.
func (s *MatchdayService) AdminVoteAll(ctx context.Context, matchdayID int64) (int, error) {
	var added int
	err := s.update(ctx, "AdminVoteAll", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireVotingOpen(matchday); err != nil {
			return err
		}

		ids, err := s.roster.EligibleVoterIDs(ctx, s.now())
		if err != nil {
			return err
		}
		for _, playerID := range ids {
			inserted, err := s.repo.AddVote(ctx, db, &matchdaydb.Vote{
				MatchdayID: matchdayID,
				PlayerID:   playerID,
				VotedAt:    s.now(),
			})
			if err != nil {
				return err
			}
			if inserted {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// ListVotes returns a matchday's votes in vote order.
func (s *MatchdayService) ListVotes(ctx context.Context, matchdayID int64) ([]matchdaydb.Vote, error) {
	var votes []matchdaydb.Vote
	err := s.read(ctx, "ListVotes", matchdayID, func(ctx context.Context, db bun.IDB) error {
		if _, err := s.getMatchday(ctx, db, matchdayID); err != nil {
			return err
		}
		var err error
		votes, err = s.repo.ListVotes(ctx, db, matchdayID)
		return err
	})
	return votes, err
}
