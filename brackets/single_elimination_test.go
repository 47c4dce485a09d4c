package brackets

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Dosada05/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(n int) []models.Entrant {
	out := make([]models.Entrant, n)
	for i := range out {
		out[i] = models.Entrant{Ref: models.PlayerRef(int64(100 + i)), Name: fmt.Sprintf("Player %d", i)}
	}
	return out
}

func TestSingleElimination_coverage(t *testing.T) {
	g := NewSingleEliminationGenerator()
	for n := 2; n <= 33; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(uint64(n), 3))
			fixtures, err := g.Generate(context.Background(), GenerateParams{Entrants: players(n), Shuffler: rng})
			require.NoError(t, err)

			seen := map[int64]int{}
			playable, byes := 0, 0
			for _, f := range fixtures {
				assert.Equal(t, 1, f.Slot)
				seen[f.Participant1.Ref.ID]++
				if f.IsBye() {
					byes++
					assert.True(t, f.ToModel(9).IsComplete)
					continue
				}
				playable++
				seen[f.Participant2.Ref.ID]++
				assert.False(t, f.ToModel(9).IsComplete)
			}
			assert.Equal(t, n/2, playable)
			assert.Equal(t, n%2, byes)
			assert.Len(t, seen, n)
			for id, c := range seen {
				assert.Equal(t, 1, c, "player %d", id)
			}
		})
	}
}

func TestSingleElimination_byeGoesToLastAfterShuffle(t *testing.T) {
	g := NewSingleEliminationGenerator()
	fixtures, err := g.Generate(context.Background(), GenerateParams{Entrants: players(5), Shuffler: identityShuffler{}})
	require.NoError(t, err)
	require.Len(t, fixtures, 3)

	assert.True(t, fixtures[0].IsBye())
	assert.Equal(t, int64(104), fixtures[0].Participant1.Ref.ID)
	assert.Equal(t, int64(100), fixtures[1].Participant1.Ref.ID)
	assert.Equal(t, int64(101), fixtures[1].Participant2.Ref.ID)
	assert.Equal(t, int64(102), fixtures[2].Participant1.Ref.ID)
	assert.Equal(t, int64(103), fixtures[2].Participant2.Ref.ID)
}

func TestNewGenerator(t *testing.T) {
	tests := map[string]struct {
		kind models.CompetitionKind
		name string
		err  error
	}{
		"league":  {kind: models.KindLeague, name: "RoundRobin"},
		"cup":     {kind: models.KindCup, name: "SingleElimination"},
		"unknown": {kind: "swiss", err: ErrUnsupportedKind},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			g, err := NewGenerator(tc.kind)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.name, g.Name())
		})
	}
}
