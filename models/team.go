package models

import "time"

type Team struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}
