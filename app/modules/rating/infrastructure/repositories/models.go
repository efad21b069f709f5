package ratingdb

import (
	"time"

	"github.com/uptrace/bun"
)

// PlayerRating is a frozen per-matchday rating, written when a matchday ends
// and removed if it reopens. Only present players get a row.
type PlayerRating struct {
	bun.BaseModel `bun:"table:player_ratings,alias:pr"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	MatchdayID    int64     `bun:"matchday_id,notnull" json:"matchday_id"`
	PlayerID      int64     `bun:"player_id,notnull" json:"player_id"`
	Rating        int       `bun:"rating,notnull" json:"rating"`
	Goals         int       `bun:"goals,notnull,default:0" json:"goals"`
	Assists       int       `bun:"assists,notnull,default:0" json:"assists"`
	Yellows       int       `bun:"yellows,notnull,default:0" json:"yellows"`
	Reds          int       `bun:"reds,notnull,default:0" json:"reds"`
	CleanSheets   int       `bun:"clean_sheets,notnull,default:0" json:"clean_sheets"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// CareerStats aggregates a player's frozen ratings across the season.
type CareerStats struct {
	PlayerID         int64   `bun:"player_id" json:"player_id"`
	MatchdaysPresent int     `bun:"matchdays_present" json:"matchdays_present"`
	Goals            int     `bun:"goals" json:"goals"`
	Assists          int     `bun:"assists" json:"assists"`
	Yellows          int     `bun:"yellows" json:"yellows"`
	Reds             int     `bun:"reds" json:"reds"`
	CleanSheets      int     `bun:"clean_sheets" json:"clean_sheets"`
	AverageRating    float64 `bun:"average_rating" json:"average_rating"`
}
