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

func TestRegisterPlayer(t *testing.T) {
	tests := map[string]struct {
		input        RegisterPlayerInput
		team         *models.Team
		teamErr      error
		createErr    error
		wantTeamID   *int64
		wantHandicap int
		wantNotFound bool
		wantErr      error
	}{
		"without team": {
			input: RegisterPlayerInput{ID: 11, Name: " Ann "},
		},
		"starting handicap kept": {
			input:        RegisterPlayerInput{ID: 11, Name: "Ann", Handicap: 20},
			wantHandicap: 20,
		},
		"with known team": {
			input:      RegisterPlayerInput{ID: 11, Name: "Ann", TeamName: "Reds"},
			team:       &models.Team{ID: 3, Name: "Reds"},
			wantTeamID: func() *int64 { v := int64(3); return &v }(),
		},
		"unknown team registers teamless": {
			input:        RegisterPlayerInput{ID: 11, Name: "Ann", TeamName: "Ghosts"},
			teamErr:      repositories.ErrTeamNotFound,
			wantNotFound: true,
		},
		"duplicate id": {
			input:     RegisterPlayerInput{ID: 11, Name: "Ann"},
			createErr: repositories.ErrPlayerAlreadyRegistered,
			wantErr:   ErrAlreadyRegistered,
		},
		"blank name": {
			input:   RegisterPlayerInput{ID: 11, Name: "  "},
			wantErr: ErrNameRequired,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := newTestDeps()
			svc := NewPlayerService(d.tx, d.players, d.teams, d.participants, d.matches, discardLogger())
			if tc.input.TeamName != "" {
				d.teams.On("GetByName", mock.Anything, mock.Anything, tc.input.TeamName).Return(tc.team, tc.teamErr)
			}
			var created *models.Player
			d.players.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Player")).
				Run(func(args mock.Arguments) { created = args.Get(2).(*models.Player) }).
				Return(tc.createErr)

			res, err := svc.RegisterPlayer(context.Background(), tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ann", res.Player.Name)
			assert.Equal(t, tc.wantTeamID, res.Player.TeamID)
			assert.Equal(t, tc.wantNotFound, res.TeamNotFound)
			require.NotNil(t, created)
			assert.Equal(t, tc.wantHandicap, created.Handicap)
			assert.Zero(t, created.WinStreak)
			assert.Zero(t, created.LossStreak)
		})
	}
}

func TestDeletePlayer(t *testing.T) {
	tests := map[string]struct {
		matches    int
		wantErr    error
		wantDelete bool
	}{
		"player with history is kept": {matches: 2, wantErr: ErrHasHistory},
		"player without history":      {matches: 0, wantDelete: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := newTestDeps()
			svc := NewPlayerService(d.tx, d.players, d.teams, d.participants, d.matches, discardLogger())
			d.tx.On("WithinTx", mock.Anything).Return(nil)
			d.players.On("GetByIDForUpdate", mock.Anything, mock.Anything, int64(5)).Return(&models.Player{ID: 5}, nil)
			d.matches.On("CountByPlayer", mock.Anything, mock.Anything, int64(5)).Return(tc.matches, nil)
			d.participants.On("RemoveEverywhere", mock.Anything, mock.Anything, models.PlayerRef(5)).Return(int64(2), nil)
			d.players.On("Delete", mock.Anything, mock.Anything, int64(5)).Return(nil)

			err := svc.DeletePlayer(context.Background(), 5)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tc.wantDelete {
				d.participants.AssertCalled(t, "RemoveEverywhere", mock.Anything, mock.Anything, models.PlayerRef(5))
				d.players.AssertCalled(t, "Delete", mock.Anything, mock.Anything, int64(5))
			} else {
				d.participants.AssertNotCalled(t, "RemoveEverywhere", mock.Anything, mock.Anything, mock.Anything)
				d.players.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAssignTeam_ReportsUnknownPlayers(t *testing.T) {
	d := newTestDeps()
	svc := NewPlayerService(d.tx, d.players, d.teams, d.participants, d.matches, discardLogger())
	team := &models.Team{ID: 4, Name: "Blues"}

	d.teams.On("GetByName", mock.Anything, mock.Anything, "Blues").Return(team, nil)
	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.players.On("AssignTeam", mock.Anything, mock.Anything, int64(1), &team.ID).Return(nil)
	d.players.On("AssignTeam", mock.Anything, mock.Anything, int64(2), &team.ID).Return(repositories.ErrPlayerNotFound)

	report, err := svc.AssignTeam(context.Background(), "Blues", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, report.Assigned)
	assert.Equal(t, []int64{2}, report.NotFound)
}

func TestDeleteTeam_WithdrawsEntries(t *testing.T) {
	d := newTestDeps()
	svc := NewTeamService(d.tx, d.teams, d.players, d.participants, discardLogger())

	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.teams.On("GetByID", mock.Anything, mock.Anything, int64(4)).Return(&models.Team{ID: 4, Name: "Blues"}, nil)
	d.participants.On("RemoveEverywhere", mock.Anything, mock.Anything, models.TeamRef(4)).Return(int64(1), nil)
	d.teams.On("Delete", mock.Anything, mock.Anything, int64(4)).Return(nil)

	require.NoError(t, svc.DeleteTeam(context.Background(), 4))
	d.teams.AssertExpectations(t)
	d.participants.AssertExpectations(t)
	d.fixtures.AssertNotCalled(t, "DeleteByCompetition", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCompetition(t *testing.T) {
	tests := map[string]struct {
		input     CreateCompetitionInput
		createErr error
		wantErr   error
	}{
		"league":         {input: CreateCompetitionInput{Name: "Winter League", Kind: "league"}},
		"cup":            {input: CreateCompetitionInput{Name: "Spring Cup", Kind: "Cup", AffectsHandicap: true}},
		"unknown kind":   {input: CreateCompetitionInput{Name: "X", Kind: "ladder"}, wantErr: ErrInvalidConfiguration},
		"duplicate name": {input: CreateCompetitionInput{Name: "X", Kind: "cup"}, createErr: repositories.ErrCompetitionNameConflict, wantErr: ErrDuplicateName},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := newTestDeps()
			svc := NewCompetitionService(d.comps, d.participants, d.teams, d.players, discardLogger())
			d.comps.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Competition")).Return(tc.createErr)

			comp, err := svc.CreateCompetition(context.Background(), tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input.AffectsHandicap, comp.AffectsHandicap)
		})
	}
}

func TestAddParticipants(t *testing.T) {
	d := newTestDeps()
	svc := NewCompetitionService(d.comps, d.participants, d.teams, d.players, discardLogger())

	d.comps.On("GetByID", mock.Anything, mock.Anything, int64(7)).Return(springCup(), nil)
	d.players.On("GetByID", mock.Anything, mock.Anything, int64(1)).Return(&models.Player{ID: 1}, nil)
	d.players.On("GetByID", mock.Anything, mock.Anything, int64(2)).Return(&models.Player{ID: 2}, nil)
	d.players.On("GetByID", mock.Anything, mock.Anything, int64(3)).Return(nil, repositories.ErrPlayerNotFound)
	d.participants.On("Add", mock.Anything, mock.Anything, mock.MatchedBy(func(cp *models.CompetitionParticipant) bool {
		return cp.Participant.ID == 1
	})).Return(nil)
	d.participants.On("Add", mock.Anything, mock.Anything, mock.MatchedBy(func(cp *models.CompetitionParticipant) bool {
		return cp.Participant.ID == 2
	})).Return(repositories.ErrParticipantAlreadyEntered)

	report, err := svc.AddParticipants(context.Background(), 7, []models.ParticipantRef{
		models.PlayerRef(1), models.PlayerRef(2), models.PlayerRef(3),
	})
	require.NoError(t, err)
	assert.Equal(t, []models.ParticipantRef{models.PlayerRef(1)}, report.Added)
	assert.Equal(t, []models.ParticipantRef{models.PlayerRef(2)}, report.AlreadyEntered)
	assert.Equal(t, []models.ParticipantRef{models.PlayerRef(3)}, report.NotFound)
}

func TestAddParticipants_KindMismatch(t *testing.T) {
	d := newTestDeps()
	svc := NewCompetitionService(d.comps, d.participants, d.teams, d.players, discardLogger())
	d.comps.On("GetByID", mock.Anything, mock.Anything, int64(7)).Return(springCup(), nil)

	_, err := svc.AddParticipants(context.Background(), 7, []models.ParticipantRef{models.TeamRef(1)})
	assert.ErrorIs(t, err, ErrParticipantKindInvalid)
	d.participants.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCompetition_WithHistory(t *testing.T) {
	d := newTestDeps()
	svc := NewCompetitionService(d.comps, d.participants, d.teams, d.players, discardLogger())
	d.comps.On("Delete", mock.Anything, mock.Anything, int64(7)).Return(repositories.ErrCompetitionHasHistory)

	err := svc.DeleteCompetition(context.Background(), 7)
	assert.ErrorIs(t, err, ErrHasHistory)
}

func TestSetChannel(t *testing.T) {
	d := newTestDeps()
	svc := NewCompetitionService(d.comps, d.participants, d.teams, d.players, discardLogger())

	_, err := svc.SetChannel(context.Background(), 7, "announcements", "#x")
	assert.ErrorIs(t, err, ErrInvalidChannelRole)

	d.comps.On("SetChannel", mock.Anything, mock.Anything, int64(7), models.ChannelResults, (*string)(nil)).Return(nil)
	d.comps.On("GetByID", mock.Anything, mock.Anything, int64(7)).Return(springCup(), nil)
	_, err = svc.SetChannel(context.Background(), 7, "results", "  ")
	require.NoError(t, err)
	d.comps.AssertExpectations(t)
}

func TestAuthenticateAdmin(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewAuthService(hash, discardLogger())
	assert.NoError(t, svc.AuthenticateAdmin(context.Background(), "correct horse"))
	assert.ErrorIs(t, svc.AuthenticateAdmin(context.Background(), "battery staple"), ErrInvalidCredentials)

	disabled := NewAuthService("", discardLogger())
	assert.ErrorIs(t, disabled.AuthenticateAdmin(context.Background(), "anything"), ErrAdminLoginDisabled)

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
