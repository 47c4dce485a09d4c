package models

import "time"

// Fixture is one scheduled pairing. Slot is the week for leagues and the round for cups.
// A fixture without Participant2 is a bye and is created complete.
type Fixture struct {
	ID               int64           `json:"id" db:"id"`
	CompetitionID    int64           `json:"competition_id" db:"competition_id"`
	Slot             int             `json:"slot" db:"slot"`
	Participant1     ParticipantRef  `json:"participant1" db:"-"`
	Participant2     *ParticipantRef `json:"participant2,omitempty" db:"-"`
	Participant1Name string          `json:"participant1_name" db:"participant1_name"`
	Participant2Name string          `json:"participant2_name,omitempty" db:"participant2_name"`
	IsComplete       bool            `json:"is_complete" db:"is_complete"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

func (f *Fixture) IsBye() bool {
	return f.Participant2 == nil
}
