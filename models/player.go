package models

import "time"

// Player is keyed by an externally assigned identifier (chat user id), not a serial.
type Player struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Handicap   int       `json:"handicap" db:"handicap"`
	WinStreak  int       `json:"win_streak" db:"win_streak"`
	LossStreak int       `json:"loss_streak" db:"loss_streak"`
	TeamID     *int64    `json:"team_id,omitempty" db:"team_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
