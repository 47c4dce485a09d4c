package mockrepo

import (
	"context"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/stretchr/testify/mock"
)

// Transactor runs fn with a nil executor unless an error is configured for the call.
type Transactor struct {
	mock.Mock
}

func (m *Transactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	args := m.Called(ctx, exec, team)
	return args.Error(0)
}

func (m *TeamRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Team, error) {
	args := m.Called(ctx, exec, id)

	var t *models.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Team)
	}
	return t, args.Error(1)
}

func (m *TeamRepository) GetByName(ctx context.Context, exec repositories.SQLExecutor, name string) (*models.Team, error) {
	args := m.Called(ctx, exec, name)

	var t *models.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Team)
	}
	return t, args.Error(1)
}

func (m *TeamRepository) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Team, error) {
	args := m.Called(ctx, exec)

	var r []*models.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.Team)
	}
	return r, args.Error(1)
}

func (m *TeamRepository) Delete(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type PlayerRepository struct {
	mock.Mock
}

func (m *PlayerRepository) Create(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	args := m.Called(ctx, exec, player)
	return args.Error(0)
}

func (m *PlayerRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Player, error) {
	args := m.Called(ctx, exec, id)

	var p *models.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*models.Player)
	}
	return p, args.Error(1)
}

func (m *PlayerRepository) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Player, error) {
	args := m.Called(ctx, exec, id)

	var p *models.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*models.Player)
	}
	return p, args.Error(1)
}

func (m *PlayerRepository) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Player, error) {
	args := m.Called(ctx, exec)

	var r []*models.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.Player)
	}
	return r, args.Error(1)
}

func (m *PlayerRepository) ListByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int64) ([]*models.Player, error) {
	args := m.Called(ctx, exec, teamID)

	var r []*models.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.Player)
	}
	return r, args.Error(1)
}

func (m *PlayerRepository) UpdateStanding(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	args := m.Called(ctx, exec, player)
	return args.Error(0)
}

func (m *PlayerRepository) UpdateName(ctx context.Context, exec repositories.SQLExecutor, id int64, name string) error {
	args := m.Called(ctx, exec, id, name)
	return args.Error(0)
}

func (m *PlayerRepository) AssignTeam(ctx context.Context, exec repositories.SQLExecutor, id int64, teamID *int64) error {
	args := m.Called(ctx, exec, id, teamID)
	return args.Error(0)
}

func (m *PlayerRepository) Delete(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type CompetitionRepository struct {
	mock.Mock
}

func (m *CompetitionRepository) Create(ctx context.Context, exec repositories.SQLExecutor, comp *models.Competition) error {
	args := m.Called(ctx, exec, comp)
	return args.Error(0)
}

func (m *CompetitionRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Competition, error) {
	args := m.Called(ctx, exec, id)

	var c *models.Competition
	if args.Get(0) != nil {
		c = args.Get(0).(*models.Competition)
	}
	return c, args.Error(1)
}

func (m *CompetitionRepository) GetByName(ctx context.Context, exec repositories.SQLExecutor, name string) (*models.Competition, error) {
	args := m.Called(ctx, exec, name)

	var c *models.Competition
	if args.Get(0) != nil {
		c = args.Get(0).(*models.Competition)
	}
	return c, args.Error(1)
}

func (m *CompetitionRepository) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Competition, error) {
	args := m.Called(ctx, exec)

	var r []*models.Competition
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.Competition)
	}
	return r, args.Error(1)
}

func (m *CompetitionRepository) SetChannel(ctx context.Context, exec repositories.SQLExecutor, id int64, role models.ChannelRole, channel *string) error {
	args := m.Called(ctx, exec, id, role, channel)
	return args.Error(0)
}

func (m *CompetitionRepository) Delete(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type ParticipantRepository struct {
	mock.Mock
}

func (m *ParticipantRepository) Add(ctx context.Context, exec repositories.SQLExecutor, cp *models.CompetitionParticipant) error {
	args := m.Called(ctx, exec, cp)
	return args.Error(0)
}

func (m *ParticipantRepository) Remove(ctx context.Context, exec repositories.SQLExecutor, competitionID int64, ref models.ParticipantRef) error {
	args := m.Called(ctx, exec, competitionID, ref)
	return args.Error(0)
}

func (m *ParticipantRepository) RemoveEverywhere(ctx context.Context, exec repositories.SQLExecutor, ref models.ParticipantRef) (int64, error) {
	args := m.Called(ctx, exec, ref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ParticipantRepository) ListByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int64) ([]*models.CompetitionParticipant, error) {
	args := m.Called(ctx, exec, competitionID)

	var r []*models.CompetitionParticipant
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.CompetitionParticipant)
	}
	return r, args.Error(1)
}

func (m *ParticipantRepository) ListEntrants(ctx context.Context, exec repositories.SQLExecutor, competitionID int64, kind models.ParticipantKind) ([]models.Entrant, error) {
	args := m.Called(ctx, exec, competitionID, kind)

	var r []models.Entrant
	if args.Get(0) != nil {
		r = args.Get(0).([]models.Entrant)
	}
	return r, args.Error(1)
}

type FixtureRepository struct {
	mock.Mock
}

func (m *FixtureRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, fixtures []*models.Fixture) error {
	args := m.Called(ctx, exec, fixtures)
	return args.Error(0)
}

func (m *FixtureRepository) DeleteByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int64) (int64, error) {
	args := m.Called(ctx, exec, competitionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FixtureRepository) CountByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int64) (int, error) {
	args := m.Called(ctx, exec, competitionID)
	return args.Int(0), args.Error(1)
}

func (m *FixtureRepository) ListByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int64) ([]*models.Fixture, error) {
	args := m.Called(ctx, exec, competitionID)

	var r []*models.Fixture
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.Fixture)
	}
	return r, args.Error(1)
}

func (m *FixtureRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Fixture, error) {
	args := m.Called(ctx, exec, id)

	var f *models.Fixture
	if args.Get(0) != nil {
		f = args.Get(0).(*models.Fixture)
	}
	return f, args.Error(1)
}

func (m *FixtureRepository) FindOpenBetween(ctx context.Context, exec repositories.SQLExecutor, competitionID int64, a, b models.ParticipantRef) (*models.Fixture, error) {
	args := m.Called(ctx, exec, competitionID, a, b)

	var f *models.Fixture
	if args.Get(0) != nil {
		f = args.Get(0).(*models.Fixture)
	}
	return f, args.Error(1)
}

func (m *FixtureRepository) MarkComplete(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

func (m *FixtureRepository) NextOpenFor(ctx context.Context, exec repositories.SQLExecutor, competitionID int64, ref models.ParticipantRef) (*models.Fixture, error) {
	args := m.Called(ctx, exec, competitionID, ref)

	var f *models.Fixture
	if args.Get(0) != nil {
		f = args.Get(0).(*models.Fixture)
	}
	return f, args.Error(1)
}

type MatchRepository struct {
	mock.Mock
}

func (m *MatchRepository) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.MatchRecord) error {
	args := m.Called(ctx, exec, match)
	return args.Error(0)
}

func (m *MatchRepository) CountWins(ctx context.Context, exec repositories.SQLExecutor, winnerID, loserID int64) (int, error) {
	args := m.Called(ctx, exec, winnerID, loserID)
	return args.Int(0), args.Error(1)
}

func (m *MatchRepository) CountByPlayer(ctx context.Context, exec repositories.SQLExecutor, playerID int64) (int, error) {
	args := m.Called(ctx, exec, playerID)
	return args.Int(0), args.Error(1)
}

func (m *MatchRepository) ListRecentByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int64, limit int) ([]*models.MatchRecord, error) {
	args := m.Called(ctx, exec, competitionID, limit)

	var r []*models.MatchRecord
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.MatchRecord)
	}
	return r, args.Error(1)
}
