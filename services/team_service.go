package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
)

type TeamService interface {
	CreateTeam(ctx context.Context, name string) (*models.Team, error)
	GetTeam(ctx context.Context, id int64) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	// DeleteTeam withdraws the team from every competition and detaches its players.
	// Fixtures already generated keep the team's name.
	DeleteTeam(ctx context.Context, id int64) error
}

type teamService struct {
	tx              repositories.Transactor
	teamRepo        repositories.TeamRepository
	playerRepo      repositories.PlayerRepository
	participantRepo repositories.ParticipantRepository
	logger          *slog.Logger
}

func NewTeamService(
	tx repositories.Transactor,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	participantRepo repositories.ParticipantRepository,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		tx:              tx,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		participantRepo: participantRepo,
		logger:          loggerOrDefault(logger),
	}
}

func (s *teamService) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, fmt.Errorf("%w: %q", ErrTeamNameConflict, name)
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	s.logger.Info("team created", slog.Int64("team_id", team.ID), slog.String("name", team.Name))
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int64) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapTeamError(err, id)
	}
	players, err := s.playerRepo.ListByTeam(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}
	return team, nil
}

func (s *teamService) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetByName(ctx, nil, name)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, name)
		}
		return nil, fmt.Errorf("failed to get team %q: %w", name, err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int64) error {
	var withdrawn int64
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.teamRepo.GetByID(ctx, exec, id); err != nil {
			return mapTeamError(err, id)
		}
		n, err := s.participantRepo.RemoveEverywhere(ctx, exec, models.TeamRef(id))
		if err != nil {
			return err
		}
		withdrawn = n
		if err := s.teamRepo.Delete(ctx, exec, id); err != nil {
			return mapTeamError(err, id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("team deleted", slog.Int64("team_id", id), slog.Int64("withdrawn_entries", withdrawn))
	return nil
}

func mapTeamError(err error, id int64) error {
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return fmt.Errorf("%w: id %d", ErrTeamNotFound, id)
	}
	return fmt.Errorf("team %d: %w", id, err)
}
