package matchdayservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	matchdaydb "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/repositories"
	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

// targetGroupSize is the preferred number of players per group.
const targetGroupSize = 5

// partitionVoters deals voter IDs, already in vote order, round-robin into
// ceil(n/targetSize) groups. Group sizes never differ by more than one, and
// the same input always yields the same partition.
func partitionVoters(playerIDs []int64, targetSize int) [][]int64 {
	if len(playerIDs) == 0 || targetSize <= 0 {
		return nil
	}
	numGroups := (len(playerIDs) + targetSize - 1) / targetSize
	out := make([][]int64, numGroups)
	for i, id := range playerIDs {
		g := i % numGroups
		out[g] = append(out[g], id)
	}
	return out
}

// groupName labels groups A, B, C... falling back to numbers past Z.
func groupName(position int) string {
	if position <= 26 {
		return fmt.Sprintf("Group %c", 'A'+position-1)
	}
	return fmt.Sprintf("Group %d", position)
}

// GenerateGroups partitions the voters into balanced groups, replacing any
// previous partition. Forbidden once groups or fixtures are published.
func (s *MatchdayService) GenerateGroups(ctx context.Context, matchdayID int64) ([]matchdaydb.Group, error) {
	var groups []matchdaydb.Group
	err := s.update(ctx, "GenerateGroups", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		if matchday.State != matchdaydb.StateApproved {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot generate groups from state %q", matchday.State)
		}
		if matchday.GroupsPublished {
			return domainerr.New(domainerr.KindConflictingState, "groups for matchday %d are published; unpublish first", matchdayID)
		}
		if matchday.FixturesPublished {
			return domainerr.New(domainerr.KindConflictingState, "fixtures for matchday %d are published", matchdayID)
		}

		votes, err := s.repo.ListVotes(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if len(votes) == 0 {
			return domainerr.New(domainerr.KindConflictingState, "matchday %d has no voters", matchdayID)
		}

		voterIDs := make([]int64, len(votes))
		for i, v := range votes {
			voterIDs[i] = v.PlayerID
		}
		partition := partitionVoters(voterIDs, targetGroupSize)

		// Dropping groups cascades to any unpublished fixtures and their
		// goals and cards.
		if err := s.repo.DeleteGroups(ctx, db, matchdayID); err != nil {
			return err
		}

		newGroups := make([]*matchdaydb.Group, len(partition))
		for i := range partition {
			newGroups[i] = &matchdaydb.Group{
				MatchdayID: matchdayID,
				Name:       groupName(i + 1),
				Position:   i + 1,
			}
		}
		var members []*matchdaydb.GroupMember
		if err := s.repo.InsertGroups(ctx, db, newGroups, nil); err != nil {
			return err
		}
		for i, groupIDs := range partition {
			for _, playerID := range groupIDs {
				members = append(members, &matchdaydb.GroupMember{
					GroupID:    newGroups[i].ID,
					MatchdayID: matchdayID,
					PlayerID:   playerID,
				})
			}
		}
		if err := s.repo.InsertGroups(ctx, db, nil, members); err != nil {
			return err
		}

		groups, err = s.repo.ListGroups(ctx, db, matchdayID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// PublishGroups freezes the partition for member viewing.
func (s *MatchdayService) PublishGroups(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	return s.setGroupsPublished(ctx, "PublishGroups", matchdayID, true)
}

// UnpublishGroups lifts the freeze so groups can be regenerated. Forbidden
// once fixtures are published.
func (s *MatchdayService) UnpublishGroups(ctx context.Context, matchdayID int64) (*matchdaydb.Matchday, error) {
	return s.setGroupsPublished(ctx, "UnpublishGroups", matchdayID, false)
}

func (s *MatchdayService) setGroupsPublished(ctx context.Context, op string, matchdayID int64, published bool) (*matchdaydb.Matchday, error) {
	var matchday *matchdaydb.Matchday
	err := s.update(ctx, op, matchdayID, func(ctx context.Context, db bun.IDB) error {
		var err error
		matchday, err = s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		if matchday.State != matchdaydb.StateApproved {
			return domainerr.New(domainerr.KindInvalidTransition, "cannot publish groups from state %q", matchday.State)
		}
		if published {
			groups, err := s.repo.ListGroups(ctx, db, matchdayID)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				return domainerr.New(domainerr.KindConflictingState, "matchday %d has no groups to publish", matchdayID)
			}
		} else if matchday.FixturesPublished {
			return domainerr.New(domainerr.KindConflictingState, "fixtures for matchday %d are published; groups cannot be unpublished", matchdayID)
		}
		matchday.GroupsPublished = published
		return s.repo.Update(ctx, db, matchday)
	})
	if err != nil {
		return nil, err
	}
	return matchday, nil
}

// Move describes a single group reassignment.
type Move struct {
	PlayerID  int64 `json:"player_id"`
	ToGroupID int64 `json:"to_group_id"`
}

// MoveMember reassigns one player to another group.
func (s *MatchdayService) MoveMember(ctx context.Context, matchdayID int64, move Move) error {
	return s.MoveMembers(ctx, matchdayID, []Move{move})
}

// MoveMembers applies a batch of group reassignments atomically: every move
// is validated before any is applied. Forbidden while groups are published.
func (s *MatchdayService) MoveMembers(ctx context.Context, matchdayID int64, moves []Move) error {
	return s.update(ctx, "MoveMembers", matchdayID, func(ctx context.Context, db bun.IDB) error {
		matchday, err := s.getMatchday(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		if err := requireNotEnded(matchday); err != nil {
			return err
		}
		if matchday.GroupsPublished {
			return domainerr.New(domainerr.KindConflictingState, "groups for matchday %d are published; unpublish first to move members", matchdayID)
		}

		groups, err := s.repo.ListGroups(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		groupIDs := make(map[int64]struct{}, len(groups))
		for _, g := range groups {
			groupIDs[g.ID] = struct{}{}
		}

		members, err := s.repo.ListMembers(ctx, db, matchdayID)
		if err != nil {
			return err
		}
		memberGroup := make(map[int64]int64, len(members))
		for _, m := range members {
			memberGroup[m.PlayerID] = m.GroupID
		}

		for _, move := range moves {
			if _, ok := groupIDs[move.ToGroupID]; !ok {
				return domainerr.New(domainerr.KindInvalidMove, "group %d does not belong to matchday %d", move.ToGroupID, matchdayID)
			}
			from, ok := memberGroup[move.PlayerID]
			if !ok {
				return domainerr.New(domainerr.KindInvalidMove, "player %d is not grouped on matchday %d", move.PlayerID, matchdayID)
			}
			if from == move.ToGroupID {
				return domainerr.New(domainerr.KindInvalidMove, "player %d is already in group %d", move.PlayerID, move.ToGroupID)
			}
		}

		for _, move := range moves {
			if err := s.repo.MoveMember(ctx, db, matchdayID, move.PlayerID, move.ToGroupID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListGroups returns a matchday's groups with members.
func (s *MatchdayService) ListGroups(ctx context.Context, matchdayID int64) ([]matchdaydb.Group, error) {
	var groups []matchdaydb.Group
	err := s.read(ctx, "ListGroups", matchdayID, func(ctx context.Context, db bun.IDB) error {
		if _, err := s.getMatchday(ctx, db, matchdayID); err != nil {
			return err
		}
		var err error
		groups, err = s.repo.ListGroups(ctx, db, matchdayID)
		return err
	})
	return groups, err
}
