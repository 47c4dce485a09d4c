package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() FixtureGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate builds a single round-robin with the circle method. An odd field is padded
// with a BYE slot before shuffling; index 0 stays anchored while the rest rotate.
// Pairings against the BYE slot become bye fixtures for the real team.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params GenerateParams) ([]*ScheduledFixture, error) {
	if len(params.Entrants) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrInsufficientParticipants, len(params.Entrants))
	}

	slots := make([]*models.Entrant, 0, len(params.Entrants)+1)
	for i := range params.Entrants {
		slots = append(slots, &params.Entrants[i])
	}
	if len(slots)%2 != 0 {
		slots = append(slots, nil) // BYE
	}
	slots = shuffled(slots, params.shuffler())

	n := len(slots)
	fixtures := make([]*ScheduledFixture, 0, (n-1)*n/2)
	for week := 1; week <= n-1; week++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if i != 0 && week%2 != 0 {
				home, away = away, home
			}
			fixtures = append(fixtures, pairing(week, home, away))
		}
		// last element moves to position 1, position 0 is fixed
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	return fixtures, nil
}

func pairing(slot int, home, away *models.Entrant) *ScheduledFixture {
	switch {
	case home == nil:
		return &ScheduledFixture{Slot: slot, Participant1: *away}
	case away == nil:
		return &ScheduledFixture{Slot: slot, Participant1: *home}
	}
	a := *away
	return &ScheduledFixture{Slot: slot, Participant1: *home, Participant2: &a}
}
