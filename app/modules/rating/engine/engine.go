// Package engine computes matchday ratings and league tables as pure
// functions of recorded events. The same input always yields the same
// output, so ratings can be recomputed on every read until a matchday ends.
package engine

import "sort"

// Group is a matchday team and its rostered players.
type Group struct {
	ID        int64
	Name      string
	PlayerIDs []int64
}

// Fixture is one match result. Only completed fixtures count toward the
// table and clean sheets.
type Fixture struct {
	HomeGroupID int64
	AwayGroupID int64
	HomeGoals   int
	AwayGoals   int
	Completed   bool
}

// Goal credits a scorer and optional assister. Nil scorer means a guest
// goal, which counts for the score but never for a player's rating.
type Goal struct {
	ScorerPlayerID *int64
	AssistPlayerID *int64
}

// Card is one disciplinary card.
type Card struct {
	PlayerID int64
	Red      bool
}

// MatchdayInput is everything the engine needs for one matchday.
type MatchdayInput struct {
	Groups   []Group
	Fixtures []Fixture
	Goals    []Goal
	Cards    []Card
	Present  map[int64]bool
}

// TableRow is one group's standing in the matchday league table.
type TableRow struct {
	GroupID      int64  `json:"group_id"`
	Name         string `json:"name"`
	Rank         int    `json:"rank"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
}

// PlayerRating is one player's computed rating with its inputs broken out.
type PlayerRating struct {
	PlayerID    int64 `json:"player_id"`
	GroupID     int64 `json:"group_id"`
	Present     bool  `json:"present"`
	Rating      int   `json:"rating"`
	Goals       int   `json:"goals"`
	Assists     int   `json:"assists"`
	Yellows     int   `json:"yellows"`
	Reds        int   `json:"reds"`
	CleanSheets int   `json:"clean_sheets"`
	RankBonus   int   `json:"rank_bonus"`
}

const (
	presencePoints  = 5
	goalPoints      = 2
	assistPoints    = 1
	hatTrickBonus   = 5
	hatTrickGoals   = 3
	cleanSheetBonus = 1
	yellowPenalty   = 5
	redPenalty      = 10
)

// rankBonuses by table rank; fifth place and below earn nothing.
var rankBonuses = map[int]int{1: 5, 2: 3, 3: 2, 4: 1}

// Table builds the matchday league table from completed fixtures using
// 3/1/0 points, sorted by points, then goal difference, then goals for.
// Groups level on all three share a rank.
func Table(groups []Group, fixtures []Fixture) []TableRow {
	rows := make([]TableRow, 0, len(groups))
	index := make(map[int64]int, len(groups))
	for i, g := range groups {
		index[g.ID] = i
		rows = append(rows, TableRow{GroupID: g.ID, Name: g.Name})
	}

	for _, f := range fixtures {
		if !f.Completed {
			continue
		}
		home, homeOK := index[f.HomeGroupID]
		away, awayOK := index[f.AwayGroupID]
		if !homeOK || !awayOK {
			continue
		}
		rows[home].Played++
		rows[home].GoalsFor += f.HomeGoals
		rows[home].GoalsAgainst += f.AwayGoals
		rows[away].Played++
		rows[away].GoalsFor += f.AwayGoals
		rows[away].GoalsAgainst += f.HomeGoals
		switch {
		case f.HomeGoals > f.AwayGoals:
			rows[home].Won++
			rows[home].Points += 3
			rows[away].Lost++
		case f.AwayGoals > f.HomeGoals:
			rows[away].Won++
			rows[away].Points += 3
			rows[home].Lost++
		default:
			rows[home].Drawn++
			rows[home].Points++
			rows[away].Drawn++
			rows[away].Points++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		gdi := rows[i].GoalsFor - rows[i].GoalsAgainst
		gdj := rows[j].GoalsFor - rows[j].GoalsAgainst
		if gdi != gdj {
			return gdi > gdj
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})

	// Assign ranks, shared when points, goal difference, and goals for all
	// match the row above.
	for i := range rows {
		if i == 0 {
			rows[i].Rank = 1
			continue
		}
		prev, cur := rows[i-1], rows[i]
		if cur.Points == prev.Points &&
			cur.GoalsFor-cur.GoalsAgainst == prev.GoalsFor-prev.GoalsAgainst &&
			cur.GoalsFor == prev.GoalsFor {
			rows[i].Rank = prev.Rank
		} else {
			rows[i].Rank = i + 1
		}
	}
	return rows
}

// cleanSheetCounts tallies, per group, the completed fixtures in which the
// group conceded nothing.
func cleanSheetCounts(fixtures []Fixture) map[int64]int {
	counts := make(map[int64]int)
	for _, f := range fixtures {
		if !f.Completed {
			continue
		}
		if f.AwayGoals == 0 {
			counts[f.HomeGroupID]++
		}
		if f.HomeGoals == 0 {
			counts[f.AwayGroupID]++
		}
	}
	return counts
}

// Ratings computes every grouped player's rating for a matchday. Absent
// players rate zero and earn nothing else. Until the first fixture
// completes, every present player holds a flat presence rating. Results are
// ordered by rating descending, then player ID for stable ties.
func Ratings(in MatchdayInput) []PlayerRating {
	goalsBy := make(map[int64]int)
	assistsBy := make(map[int64]int)
	for _, g := range in.Goals {
		if g.ScorerPlayerID != nil {
			goalsBy[*g.ScorerPlayerID]++
		}
		if g.AssistPlayerID != nil {
			assistsBy[*g.AssistPlayerID]++
		}
	}
	yellowsBy := make(map[int64]int)
	redsBy := make(map[int64]int)
	for _, c := range in.Cards {
		if c.Red {
			redsBy[c.PlayerID]++
		} else {
			yellowsBy[c.PlayerID]++
		}
	}

	anyCompleted := false
	for _, f := range in.Fixtures {
		if f.Completed {
			anyCompleted = true
			break
		}
	}

	rankByGroup := make(map[int64]int)
	for _, row := range Table(in.Groups, in.Fixtures) {
		rankByGroup[row.GroupID] = row.Rank
	}
	cleanSheets := cleanSheetCounts(in.Fixtures)

	var out []PlayerRating
	for _, group := range in.Groups {
		for _, playerID := range group.PlayerIDs {
			r := PlayerRating{PlayerID: playerID, GroupID: group.ID}
			if !in.Present[playerID] {
				out = append(out, r)
				continue
			}
			r.Present = true
			if !anyCompleted {
				r.Rating = presencePoints
				out = append(out, r)
				continue
			}

			r.Goals = goalsBy[playerID]
			r.Assists = assistsBy[playerID]
			r.Yellows = yellowsBy[playerID]
			r.Reds = redsBy[playerID]
			r.CleanSheets = cleanSheets[group.ID]
			r.RankBonus = rankBonuses[rankByGroup[group.ID]]

			rating := presencePoints
			rating += r.Goals * goalPoints
			if r.Goals >= hatTrickGoals {
				rating += hatTrickBonus
			}
			rating += r.Assists * assistPoints
			rating += r.RankBonus
			rating += r.CleanSheets * cleanSheetBonus
			rating -= r.Yellows * yellowPenalty
			rating -= r.Reds * redPenalty
			r.Rating = rating
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// Stars bands career averages into 0-5 stars by quartile: the top quarter
// earns 5, the next 4, the next 3, and the rest 1. Players with no
// finalized rating get 0. The input must be sorted by average descending.
func Stars(rankedPlayerIDs []int64) map[int64]int {
	n := len(rankedPlayerIDs)
	stars := make(map[int64]int, n)
	for i, playerID := range rankedPlayerIDs {
		switch {
		case i < n/4:
			stars[playerID] = 5
		case i < n/2:
			stars[playerID] = 4
		case i < (3*n)/4:
			stars[playerID] = 3
		default:
			stars[playerID] = 1
		}
	}
	return stars
}
