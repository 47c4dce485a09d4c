package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-system/broadcast"
	"github.com/Dosada05/league-system/handicap"
	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/itbasis/go-clock"
)

type ResultService interface {
	ReportResult(ctx context.Context, input ReportResultInput) (*ReportOutcome, error)
}

type ReportResultInput struct {
	CompetitionID int64 `json:"competition_id"`
	WinnerID      int64 `json:"winner_id"`
	LoserID       int64 `json:"loser_id"`
}

// ReportOutcome describes everything a single report changed. WinnerChange and
// LoserChange are nil when the competition does not affect handicaps or the player
// is not registered.
type ReportOutcome struct {
	Competition     *models.Competition `json:"competition"`
	Match           *models.MatchRecord `json:"match"`
	ResolvedFixture *models.Fixture     `json:"resolved_fixture,omitempty"`
	WinnerChange    *handicap.Change    `json:"winner_change,omitempty"`
	LoserChange     *handicap.Change    `json:"loser_change,omitempty"`
}

type resultService struct {
	tx          repositories.Transactor
	compRepo    repositories.CompetitionRepository
	playerRepo  repositories.PlayerRepository
	fixtureRepo repositories.FixtureRepository
	matchRepo   repositories.MatchRepository
	notifier    broadcast.Notifier
	clock       clock.Clock
	logger      *slog.Logger
}

func NewResultService(
	tx repositories.Transactor,
	compRepo repositories.CompetitionRepository,
	playerRepo repositories.PlayerRepository,
	fixtureRepo repositories.FixtureRepository,
	matchRepo repositories.MatchRepository,
	notifier broadcast.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) ResultService {
	if clk == nil {
		clk = clock.New()
	}
	return &resultService{
		tx:          tx,
		compRepo:    compRepo,
		playerRepo:  playerRepo,
		fixtureRepo: fixtureRepo,
		matchRepo:   matchRepo,
		notifier:    notifier,
		clock:       clk,
		logger:      loggerOrDefault(logger),
	}
}

// ReportResult resolves the open fixture between the two players if there is one,
// moves both players through the streak engine when the competition counts for
// handicaps, and appends the match to history. All three commit together.
func (s *resultService) ReportResult(ctx context.Context, input ReportResultInput) (*ReportOutcome, error) {
	if err := validateIDs(input.CompetitionID, input.WinnerID, input.LoserID); err != nil {
		return nil, err
	}
	if input.WinnerID == input.LoserID {
		return nil, ErrSameWinnerLoser
	}

	comp, err := s.compRepo.GetByID(ctx, nil, input.CompetitionID)
	if err != nil {
		return nil, mapCompetitionError(err, input.CompetitionID)
	}

	out := &ReportOutcome{Competition: comp}
	txErr := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		fixture, err := s.fixtureRepo.FindOpenBetween(ctx, exec, comp.ID, models.PlayerRef(input.WinnerID), models.PlayerRef(input.LoserID))
		switch {
		case err == nil:
			if err := s.fixtureRepo.MarkComplete(ctx, exec, fixture.ID); err != nil {
				return fmt.Errorf("failed to complete fixture %d: %w", fixture.ID, err)
			}
			fixture.IsComplete = true
			out.ResolvedFixture = fixture
		case errors.Is(err, repositories.ErrFixtureNotFound):
		default:
			return fmt.Errorf("failed to look up open fixture: %w", err)
		}

		if comp.AffectsHandicap {
			if err := s.applyStandings(ctx, exec, input, out); err != nil {
				return err
			}
		}

		match := &models.MatchRecord{
			CompetitionID: comp.ID,
			WinnerID:      input.WinnerID,
			LoserID:       input.LoserID,
			PlayedAt:      s.clock.Now().UTC(),
		}
		if err := s.matchRepo.Create(ctx, exec, match); err != nil {
			if errors.Is(err, repositories.ErrMatchCompetitionInvalid) {
				return fmt.Errorf("%w: id %d", ErrCompetitionNotFound, comp.ID)
			}
			return fmt.Errorf("failed to record match: %w", err)
		}
		out.Match = match
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrNotFound) {
			return nil, txErr
		}
		return nil, fmt.Errorf("result report for competition %d failed: %w", comp.ID, txErr)
	}

	attrs := []any{
		slog.Int64("competition_id", comp.ID),
		slog.Int64("winner_id", input.WinnerID),
		slog.Int64("loser_id", input.LoserID),
	}
	if out.ResolvedFixture != nil {
		attrs = append(attrs, slog.Int64("fixture_id", out.ResolvedFixture.ID))
	}
	s.logger.Info("result recorded", attrs...)

	publish(ctx, s.notifier, s.logger, comp, models.ChannelResults, broadcast.EventResultReported, out, out.Match.PlayedAt)
	return out, nil
}

// applyStandings locks player rows in ascending id order so two reports for the
// same pair cannot deadlock. Unregistered players are skipped.
func (s *resultService) applyStandings(ctx context.Context, exec repositories.SQLExecutor, input ReportResultInput, out *ReportOutcome) error {
	type side struct {
		id      int64
		outcome handicap.Outcome
		dst     **handicap.Change
	}
	sides := []side{
		{id: input.WinnerID, outcome: handicap.Win, dst: &out.WinnerChange},
		{id: input.LoserID, outcome: handicap.Loss, dst: &out.LoserChange},
	}
	if sides[1].id < sides[0].id {
		sides[0], sides[1] = sides[1], sides[0]
	}

	for _, sd := range sides {
		player, err := s.playerRepo.GetByIDForUpdate(ctx, exec, sd.id)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				s.logger.Debug("unregistered player skipped for handicap", slog.Int64("player_id", sd.id))
				continue
			}
			return fmt.Errorf("failed to lock player %d: %w", sd.id, err)
		}

		change := handicap.Apply(player.ID, handicap.Standing{
			Handicap:   player.Handicap,
			WinStreak:  player.WinStreak,
			LossStreak: player.LossStreak,
		}, sd.outcome)

		player.Handicap = change.After.Handicap
		player.WinStreak = change.After.WinStreak
		player.LossStreak = change.After.LossStreak
		if err := s.playerRepo.UpdateStanding(ctx, exec, player); err != nil {
			return fmt.Errorf("failed to update standing of player %d: %w", sd.id, err)
		}
		if change.HandicapChanged() {
			s.logger.Info("handicap adjusted",
				slog.Int64("player_id", player.ID),
				slog.Int("before", change.Before.Handicap),
				slog.Int("after", change.After.Handicap))
		}
		*sd.dst = &change
	}
	return nil
}
