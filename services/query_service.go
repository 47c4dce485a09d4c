package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"golang.org/x/sync/errgroup"
)

const recentResultsLimit = 10

type QueryService interface {
	// NextFixture returns the lowest-slot open fixture for the player, or nil when
	// there is none. League fixtures are looked up by the player's team.
	NextFixture(ctx context.Context, competitionID, playerID int64) (*models.Fixture, error)
	HeadToHead(ctx context.Context, playerA, playerB int64) (*models.HeadToHead, error)
	CompetitionOverview(ctx context.Context, competitionID int64) (*CompetitionOverview, error)
}

type CompetitionOverview struct {
	Competition   *models.Competition              `json:"competition"`
	Participants  []*models.CompetitionParticipant `json:"participants"`
	Fixtures      []*models.Fixture                `json:"fixtures"`
	RecentResults []*models.MatchRecord            `json:"recent_results"`
}

type queryService struct {
	compRepo        repositories.CompetitionRepository
	playerRepo      repositories.PlayerRepository
	participantRepo repositories.ParticipantRepository
	fixtureRepo     repositories.FixtureRepository
	matchRepo       repositories.MatchRepository
	logger          *slog.Logger
}

func NewQueryService(
	compRepo repositories.CompetitionRepository,
	playerRepo repositories.PlayerRepository,
	participantRepo repositories.ParticipantRepository,
	fixtureRepo repositories.FixtureRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) QueryService {
	return &queryService{
		compRepo:        compRepo,
		playerRepo:      playerRepo,
		participantRepo: participantRepo,
		fixtureRepo:     fixtureRepo,
		matchRepo:       matchRepo,
		logger:          loggerOrDefault(logger),
	}
}

func (s *queryService) NextFixture(ctx context.Context, competitionID, playerID int64) (*models.Fixture, error) {
	if err := validateIDs(competitionID, playerID); err != nil {
		return nil, err
	}
	comp, err := s.compRepo.GetByID(ctx, nil, competitionID)
	if err != nil {
		return nil, mapCompetitionError(err, competitionID)
	}

	var ref models.ParticipantRef
	switch comp.Kind {
	case models.KindLeague:
		player, err := s.playerRepo.GetByID(ctx, nil, playerID)
		if err != nil {
			return nil, mapPlayerError(err, playerID)
		}
		if player.TeamID == nil {
			return nil, fmt.Errorf("%w: player %d", ErrPlayerHasNoTeam, playerID)
		}
		ref = models.TeamRef(*player.TeamID)
	default:
		ref = models.PlayerRef(playerID)
	}

	fixture, err := s.fixtureRepo.NextOpenFor(ctx, nil, comp.ID, ref)
	if err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next fixture for %s: %w", ref, err)
	}
	return fixture, nil
}

// HeadToHead counts wins across all competitions. Unknown players simply have no wins.
func (s *queryService) HeadToHead(ctx context.Context, playerA, playerB int64) (*models.HeadToHead, error) {
	if err := validateIDs(playerA, playerB); err != nil {
		return nil, err
	}
	if playerA == playerB {
		return nil, ErrSamePlayer
	}

	h2h := &models.HeadToHead{PlayerA: playerA, PlayerB: playerB}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.matchRepo.CountWins(gctx, nil, playerA, playerB)
		h2h.WinsA = n
		return err
	})
	g.Go(func() error {
		n, err := s.matchRepo.CountWins(gctx, nil, playerB, playerA)
		h2h.WinsB = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count head-to-head results: %w", err)
	}
	return h2h, nil
}

func (s *queryService) CompetitionOverview(ctx context.Context, competitionID int64) (*CompetitionOverview, error) {
	comp, err := s.compRepo.GetByID(ctx, nil, competitionID)
	if err != nil {
		return nil, mapCompetitionError(err, competitionID)
	}

	ov := &CompetitionOverview{Competition: comp}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ov.Participants, err = s.participantRepo.ListByCompetition(gctx, nil, comp.ID)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Fixtures, err = s.fixtureRepo.ListByCompetition(gctx, nil, comp.ID)
		return err
	})
	g.Go(func() error {
		var err error
		ov.RecentResults, err = s.matchRepo.ListRecentByCompetition(gctx, nil, comp.ID, recentResultsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load overview of competition %d: %w", comp.ID, err)
	}
	return ov, nil
}
