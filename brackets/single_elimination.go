package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

const firstRound = 1

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() FixtureGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate materializes round 1 of a knockout only. With an odd field the last
// player after shuffling receives the bye; the rest are paired in order.
func (g *SingleEliminationGenerator) Generate(ctx context.Context, params GenerateParams) ([]*ScheduledFixture, error) {
	n := len(params.Entrants)
	if n < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrInsufficientParticipants, n)
	}

	players := make([]*models.Entrant, n)
	for i := range params.Entrants {
		players[i] = &params.Entrants[i]
	}
	players = shuffled(players, params.shuffler())

	fixtures := make([]*ScheduledFixture, 0, n/2+n%2)
	if n%2 != 0 {
		bye := players[n-1]
		players = players[:n-1]
		fixtures = append(fixtures, &ScheduledFixture{Slot: firstRound, Participant1: *bye})
	}

	for i := 0; i+1 < len(players); i += 2 {
		p2 := *players[i+1]
		fixtures = append(fixtures, &ScheduledFixture{
			Slot:         firstRound,
			Participant1: *players[i],
			Participant2: &p2,
		})
	}

	return fixtures, ctx.Err()
}
