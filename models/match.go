package models

import "time"

// MatchRecord is an append-only historical result. Winner and loser are player ids
// and are not required to reference registered players.
type MatchRecord struct {
	ID            int64     `json:"id" db:"id"`
	CompetitionID int64     `json:"competition_id" db:"competition_id"`
	WinnerID      int64     `json:"winner_id" db:"winner_id"`
	LoserID       int64     `json:"loser_id" db:"loser_id"`
	PlayedAt      time.Time `json:"played_at" db:"played_at"`
}

type HeadToHead struct {
	PlayerA int64 `json:"player_a"`
	PlayerB int64 `json:"player_b"`
	WinsA   int   `json:"wins_a"`
	WinsB   int   `json:"wins_b"`
}
