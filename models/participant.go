package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ParticipantKind string

const (
	ParticipantPlayer ParticipantKind = "player"
	ParticipantTeam   ParticipantKind = "team"
)

var ErrInvalidParticipantKind = errors.New("participant kind must be 'player' or 'team'")

// ParticipantRef identifies either a player or a team. The zero value is invalid;
// build one through PlayerRef, TeamRef or NewParticipantRef.
type ParticipantRef struct {
	Kind ParticipantKind `json:"kind"`
	ID   int64           `json:"id"`
}

func PlayerRef(id int64) ParticipantRef {
	return ParticipantRef{Kind: ParticipantPlayer, ID: id}
}

func TeamRef(id int64) ParticipantRef {
	return ParticipantRef{Kind: ParticipantTeam, ID: id}
}

// NewParticipantRef validates the tag and id, e.g. when decoding rows or requests.
func NewParticipantRef(kind string, id int64) (ParticipantRef, error) {
	k := ParticipantKind(strings.ToLower(strings.TrimSpace(kind)))
	if k != ParticipantPlayer && k != ParticipantTeam {
		return ParticipantRef{}, fmt.Errorf("%w: got %q", ErrInvalidParticipantKind, kind)
	}
	if id <= 0 {
		return ParticipantRef{}, fmt.Errorf("participant id must be positive, got %d", id)
	}
	return ParticipantRef{Kind: k, ID: id}, nil
}

func (r ParticipantRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

type CompetitionParticipant struct {
	ID            int64          `json:"id" db:"id"`
	CompetitionID int64          `json:"competition_id" db:"competition_id"`
	Participant   ParticipantRef `json:"participant" db:"-"`
	Name          string         `json:"name,omitempty" db:"-"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// Entrant is a resolved participant with its display name, as handed to a fixture generator.
type Entrant struct {
	Ref  ParticipantRef `json:"ref"`
	Name string         `json:"name"`
}
