package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Dosada05/league-system/models"
)

var (
	ErrInsufficientParticipants = errors.New("at least 2 participants are required to generate fixtures")
	ErrUnsupportedKind          = errors.New("no fixture generator for competition kind")
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it, which lets tests seed the order.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type GenerateParams struct {
	Competition *models.Competition
	Entrants    []models.Entrant
	Shuffler    Shuffler // nil: process-wide random source
}

func (p GenerateParams) shuffler() Shuffler {
	if p.Shuffler != nil {
		return p.Shuffler
	}
	return globalShuffler{}
}

// ScheduledFixture is a generated pairing before it is persisted.
type ScheduledFixture struct {
	Slot         int
	Participant1 models.Entrant
	Participant2 *models.Entrant
}

func (f *ScheduledFixture) IsBye() bool {
	return f.Participant2 == nil
}

// ToModel builds the row to persist. Byes are complete from the start.
func (f *ScheduledFixture) ToModel(competitionID int64) *models.Fixture {
	fx := &models.Fixture{
		CompetitionID:    competitionID,
		Slot:             f.Slot,
		Participant1:     f.Participant1.Ref,
		Participant1Name: f.Participant1.Name,
		IsComplete:       f.IsBye(),
	}
	if f.Participant2 != nil {
		ref := f.Participant2.Ref
		fx.Participant2 = &ref
		fx.Participant2Name = f.Participant2.Name
	}
	return fx
}

type FixtureGenerator interface {
	Generate(ctx context.Context, params GenerateParams) ([]*ScheduledFixture, error)

	Name() string
}

// NewGenerator picks the generator for a competition kind.
func NewGenerator(kind models.CompetitionKind) (FixtureGenerator, error) {
	switch kind {
	case models.KindLeague:
		return NewRoundRobinGenerator(), nil
	case models.KindCup:
		return NewSingleEliminationGenerator(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

func shuffled(entrants []*models.Entrant, s Shuffler) []*models.Entrant {
	out := make([]*models.Entrant, len(entrants))
	copy(out, entrants)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
