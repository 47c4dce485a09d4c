package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
)

type PlayerService interface {
	RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*RegisterPlayerResult, error)
	GetPlayer(ctx context.Context, id int64) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	RenamePlayer(ctx context.Context, id int64, name string) (*models.Player, error)
	AssignTeam(ctx context.Context, teamName string, playerIDs []int64) (*AssignTeamReport, error)
	// DeletePlayer refuses players with recorded matches so history stays attributable.
	DeletePlayer(ctx context.Context, id int64) error
	GetPlayerStatus(ctx context.Context, id int64) (*PlayerStatus, error)
}

type RegisterPlayerInput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name,omitempty"`
	// Handicap is the starting handicap; streaks adjust it from here.
	Handicap int `json:"handicap"`
}

// RegisterPlayerResult flags a requested team that did not exist; the player is
// registered without one in that case.
type RegisterPlayerResult struct {
	Player       *models.Player `json:"player"`
	TeamNotFound bool           `json:"team_not_found,omitempty"`
}

type AssignTeamReport struct {
	Team     *models.Team `json:"team"`
	Assigned []int64      `json:"assigned"`
	NotFound []int64      `json:"not_found"`
}

type PlayerStatus struct {
	PlayerID   int64   `json:"player_id"`
	Name       string  `json:"name"`
	Handicap   int     `json:"handicap"`
	WinStreak  int     `json:"win_streak"`
	LossStreak int     `json:"loss_streak"`
	TeamName   *string `json:"team_name,omitempty"`
}

type playerService struct {
	tx              repositories.Transactor
	playerRepo      repositories.PlayerRepository
	teamRepo        repositories.TeamRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	logger          *slog.Logger
}

func NewPlayerService(
	tx repositories.Transactor,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		tx:              tx,
		playerRepo:      playerRepo,
		teamRepo:        teamRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		logger:          loggerOrDefault(logger),
	}
}

func (s *playerService) RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*RegisterPlayerResult, error) {
	if err := validateIDs(input.ID); err != nil {
		return nil, err
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	result := &RegisterPlayerResult{}
	player := &models.Player{ID: input.ID, Name: name, Handicap: input.Handicap}

	if teamName := strings.TrimSpace(input.TeamName); teamName != "" {
		team, err := s.teamRepo.GetByName(ctx, nil, teamName)
		switch {
		case err == nil:
			player.TeamID = &team.ID
			player.Team = team
		case errors.Is(err, repositories.ErrTeamNotFound):
			result.TeamNotFound = true
		default:
			return nil, fmt.Errorf("failed to look up team %q: %w", teamName, err)
		}
	}

	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerAlreadyRegistered):
			return nil, fmt.Errorf("%w: id %d", ErrAlreadyRegistered, input.ID)
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, fmt.Errorf("%w: team removed during registration", ErrTeamNotFound)
		}
		return nil, fmt.Errorf("failed to register player %d: %w", input.ID, err)
	}

	result.Player = player
	s.logger.Info("player registered",
		slog.Int64("player_id", player.ID),
		slog.String("name", player.Name),
		slog.Int("handicap", player.Handicap),
		slog.Bool("team_not_found", result.TeamNotFound))
	return result, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapPlayerError(err, id)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) RenamePlayer(ctx context.Context, id int64, name string) (*models.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.playerRepo.UpdateName(ctx, nil, id, name); err != nil {
		return nil, mapPlayerError(err, id)
	}
	return s.GetPlayer(ctx, id)
}

func (s *playerService) AssignTeam(ctx context.Context, teamName string, playerIDs []int64) (*AssignTeamReport, error) {
	teamName, err := normalizeName(teamName)
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("%w: no players given", ErrValidationFailed)
	}
	if err := validateIDs(playerIDs...); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByName(ctx, nil, teamName)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, teamName)
		}
		return nil, fmt.Errorf("failed to look up team %q: %w", teamName, err)
	}

	report := &AssignTeamReport{Team: team, Assigned: []int64{}, NotFound: []int64{}}
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, id := range playerIDs {
			err := s.playerRepo.AssignTeam(ctx, exec, id, &team.ID)
			switch {
			case err == nil:
				report.Assigned = append(report.Assigned, id)
			case errors.Is(err, repositories.ErrPlayerNotFound):
				report.NotFound = append(report.NotFound, id)
			case errors.Is(err, repositories.ErrPlayerTeamInvalid):
				return fmt.Errorf("%w: %q", ErrTeamNotFound, teamName)
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("players assigned to team",
		slog.Int64("team_id", team.ID),
		slog.Int("assigned", len(report.Assigned)),
		slog.Int("not_found", len(report.NotFound)))
	return report, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	var withdrawn int64
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.playerRepo.GetByIDForUpdate(ctx, exec, id); err != nil {
			return mapPlayerError(err, id)
		}
		matches, err := s.matchRepo.CountByPlayer(ctx, exec, id)
		if err != nil {
			return err
		}
		if matches > 0 {
			return fmt.Errorf("%w: player %d has %d recorded matches", ErrHasHistory, id, matches)
		}
		if withdrawn, err = s.participantRepo.RemoveEverywhere(ctx, exec, models.PlayerRef(id)); err != nil {
			return err
		}
		if err := s.playerRepo.Delete(ctx, exec, id); err != nil {
			return mapPlayerError(err, id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("player deleted", slog.Int64("player_id", id), slog.Int64("withdrawn_entries", withdrawn))
	return nil
}

func (s *playerService) GetPlayerStatus(ctx context.Context, id int64) (*PlayerStatus, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	status := &PlayerStatus{
		PlayerID:   player.ID,
		Name:       player.Name,
		Handicap:   player.Handicap,
		WinStreak:  player.WinStreak,
		LossStreak: player.LossStreak,
	}
	if player.TeamID != nil {
		team, err := s.teamRepo.GetByID(ctx, nil, *player.TeamID)
		switch {
		case err == nil:
			status.TeamName = &team.Name
		case !errors.Is(err, repositories.ErrTeamNotFound):
			return nil, fmt.Errorf("failed to load team of player %d: %w", id, err)
		}
	}
	return status, nil
}

func mapPlayerError(err error, id int64) error {
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
	}
	return fmt.Errorf("player %d: %w", id, err)
}
