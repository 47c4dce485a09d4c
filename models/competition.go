package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CompetitionKind соответствует CHECK-ограничению competitions.kind.
type CompetitionKind string

const (
	KindLeague CompetitionKind = "league"
	KindCup    CompetitionKind = "cup"
)

type ChannelRole string

const (
	ChannelFixtures ChannelRole = "fixtures"
	ChannelResults  ChannelRole = "results"
)

var (
	ErrInvalidCompetitionKind = errors.New("competition kind must be 'league' or 'cup'")
	ErrInvalidChannelRole     = errors.New("channel role must be 'fixtures' or 'results'")
)

func ParseCompetitionKind(s string) (CompetitionKind, error) {
	switch CompetitionKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindLeague:
		return KindLeague, nil
	case KindCup:
		return KindCup, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidCompetitionKind, s)
}

func ParseChannelRole(s string) (ChannelRole, error) {
	switch ChannelRole(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelFixtures:
		return ChannelFixtures, nil
	case ChannelResults:
		return ChannelResults, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidChannelRole, s)
}

// ParticipantKind returns which entity type enters a competition of this kind:
// teams play leagues, players play cups.
func (k CompetitionKind) ParticipantKind() ParticipantKind {
	if k == KindLeague {
		return ParticipantTeam
	}
	return ParticipantPlayer
}

// SlotLabel is "week" for leagues and "round" for cups.
func (k CompetitionKind) SlotLabel() string {
	if k == KindLeague {
		return "week"
	}
	return "round"
}

type Competition struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Kind            CompetitionKind `json:"kind" db:"kind"`
	AffectsHandicap bool            `json:"affects_handicap" db:"affects_handicap"`
	FixturesChannel *string         `json:"fixtures_channel,omitempty" db:"fixtures_channel"`
	ResultsChannel  *string         `json:"results_channel,omitempty" db:"results_channel"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	Participants []CompetitionParticipant `json:"participants,omitempty" db:"-"`
	Fixtures     []Fixture                `json:"fixtures,omitempty" db:"-"`
}

// Channel returns the delivery channel assigned to role, or nil.
func (c *Competition) Channel(role ChannelRole) *string {
	switch role {
	case ChannelFixtures:
		return c.FixturesChannel
	case ChannelResults:
		return c.ResultsChannel
	}
	return nil
}
