package services

import (
	"context"
	"testing"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQueryServiceForTest(d *testDeps) QueryService {
	return NewQueryService(d.comps, d.players, d.participants, d.fixtures, d.matches, discardLogger())
}

func TestHeadToHead(t *testing.T) {
	tests := map[string]struct {
		winsA, winsB int
	}{
		"never met": {winsA: 0, winsB: 0},
		"lopsided":  {winsA: 4, winsB: 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := newTestDeps()
			svc := newQueryServiceForTest(d)
			d.matches.On("CountWins", mock.Anything, mock.Anything, int64(1), int64(2)).Return(tc.winsA, nil)
			d.matches.On("CountWins", mock.Anything, mock.Anything, int64(2), int64(1)).Return(tc.winsB, nil)

			h2h, err := svc.HeadToHead(context.Background(), 1, 2)
			require.NoError(t, err)
			assert.Equal(t, &models.HeadToHead{PlayerA: 1, PlayerB: 2, WinsA: tc.winsA, WinsB: tc.winsB}, h2h)
		})
	}
}

func TestHeadToHead_SamePlayer(t *testing.T) {
	d := newTestDeps()
	svc := newQueryServiceForTest(d)

	_, err := svc.HeadToHead(context.Background(), 4, 4)
	assert.ErrorIs(t, err, ErrSamePlayer)
	d.matches.AssertNotCalled(t, "CountWins", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNextFixture(t *testing.T) {
	league := &models.Competition{ID: 1, Kind: models.KindLeague}
	cup := &models.Competition{ID: 2, Kind: models.KindCup}
	teamID := int64(30)
	p2 := models.TeamRef(31)
	week3 := &models.Fixture{ID: 5, CompetitionID: 1, Slot: 3, Participant1: models.TeamRef(30), Participant2: &p2}

	tests := map[string]struct {
		comp    *models.Competition
		player  *models.Player
		ref     models.ParticipantRef
		found   *models.Fixture
		want    *models.Fixture
		wantErr error
	}{
		"league resolves the player's team": {
			comp: league, player: &models.Player{ID: 9, TeamID: &teamID},
			ref: models.TeamRef(30), found: week3, want: week3,
		},
		"league player without team": {
			comp: league, player: &models.Player{ID: 9}, wantErr: ErrPlayerHasNoTeam,
		},
		"cup uses the player directly and may have nothing": {
			comp: cup, ref: models.PlayerRef(9),
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := newTestDeps()
			svc := newQueryServiceForTest(d)
			d.comps.On("GetByID", mock.Anything, mock.Anything, tc.comp.ID).Return(tc.comp, nil)
			if tc.player != nil {
				d.players.On("GetByID", mock.Anything, mock.Anything, int64(9)).Return(tc.player, nil)
			}
			if tc.found != nil {
				d.fixtures.On("NextOpenFor", mock.Anything, mock.Anything, tc.comp.ID, tc.ref).Return(tc.found, nil)
			} else {
				d.fixtures.On("NextOpenFor", mock.Anything, mock.Anything, tc.comp.ID, tc.ref).Return(nil, repositories.ErrFixtureNotFound)
			}

			got, err := svc.NextFixture(context.Background(), tc.comp.ID, 9)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				d.fixtures.AssertNotCalled(t, "NextOpenFor", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			d.players.AssertExpectations(t)
		})
	}
}

func TestCompetitionOverview(t *testing.T) {
	d := newTestDeps()
	svc := newQueryServiceForTest(d)
	comp := springCup()
	participants := []*models.CompetitionParticipant{{ID: 1, CompetitionID: 7, Participant: models.PlayerRef(1), Name: "A"}}
	fixtures := []*models.Fixture{{ID: 2, CompetitionID: 7, Slot: 1, Participant1: models.PlayerRef(1), IsComplete: true}}
	results := []*models.MatchRecord{{ID: 3, CompetitionID: 7, WinnerID: 1, LoserID: 2}}

	d.comps.On("GetByID", mock.Anything, mock.Anything, int64(7)).Return(comp, nil)
	d.participants.On("ListByCompetition", mock.Anything, mock.Anything, int64(7)).Return(participants, nil)
	d.fixtures.On("ListByCompetition", mock.Anything, mock.Anything, int64(7)).Return(fixtures, nil)
	d.matches.On("ListRecentByCompetition", mock.Anything, mock.Anything, int64(7), 10).Return(results, nil)

	ov, err := svc.CompetitionOverview(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, comp, ov.Competition)
	assert.Equal(t, participants, ov.Participants)
	assert.Equal(t, fixtures, ov.Fixtures)
	assert.Equal(t, results, ov.RecentResults)
}
