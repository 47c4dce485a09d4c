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

type CompetitionService interface {
	CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error)
	GetCompetition(ctx context.Context, id int64) (*models.Competition, error)
	GetCompetitionByName(ctx context.Context, name string) (*models.Competition, error)
	ListCompetitions(ctx context.Context) ([]*models.Competition, error)
	// SetChannel stores the delivery channel for a role. An empty channel clears it.
	SetChannel(ctx context.Context, id int64, role string, channel string) (*models.Competition, error)
	AddParticipants(ctx context.Context, id int64, refs []models.ParticipantRef) (*EntryReport, error)
	RemoveParticipant(ctx context.Context, id int64, ref models.ParticipantRef) error
	ListParticipants(ctx context.Context, id int64) ([]*models.CompetitionParticipant, error)
	DeleteCompetition(ctx context.Context, id int64) error
}

type CreateCompetitionInput struct {
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	AffectsHandicap bool   `json:"affects_handicap"`
}

// EntryReport splits a batch entry request by outcome; one bad reference does not
// reject the rest.
type EntryReport struct {
	Added          []models.ParticipantRef `json:"added"`
	AlreadyEntered []models.ParticipantRef `json:"already_entered"`
	NotFound       []models.ParticipantRef `json:"not_found"`
}

type competitionService struct {
	compRepo        repositories.CompetitionRepository
	participantRepo repositories.ParticipantRepository
	teamRepo        repositories.TeamRepository
	playerRepo      repositories.PlayerRepository
	logger          *slog.Logger
}

func NewCompetitionService(
	compRepo repositories.CompetitionRepository,
	participantRepo repositories.ParticipantRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) CompetitionService {
	return &competitionService{
		compRepo:        compRepo,
		participantRepo: participantRepo,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		logger:          loggerOrDefault(logger),
	}
}

func (s *competitionService) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	kind, err := models.ParseCompetitionKind(input.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidCompetitionKind, input.Kind)
	}

	comp := &models.Competition{Name: name, Kind: kind, AffectsHandicap: input.AffectsHandicap}
	if err := s.compRepo.Create(ctx, nil, comp); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCompetitionNameConflict):
			return nil, fmt.Errorf("%w: %q", ErrCompetitionNameConflict, name)
		case errors.Is(err, repositories.ErrCompetitionKindInvalid):
			return nil, ErrInvalidCompetitionKind
		}
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	s.logger.Info("competition created",
		slog.Int64("competition_id", comp.ID),
		slog.String("name", comp.Name),
		slog.String("kind", string(comp.Kind)),
		slog.Bool("affects_handicap", comp.AffectsHandicap))
	return comp, nil
}

func (s *competitionService) GetCompetition(ctx context.Context, id int64) (*models.Competition, error) {
	comp, err := s.compRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapCompetitionError(err, id)
	}
	return comp, nil
}

func (s *competitionService) GetCompetitionByName(ctx context.Context, name string) (*models.Competition, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	comp, err := s.compRepo.GetByName(ctx, nil, name)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrCompetitionNotFound, name)
		}
		return nil, fmt.Errorf("failed to get competition %q: %w", name, err)
	}
	return comp, nil
}

func (s *competitionService) ListCompetitions(ctx context.Context) ([]*models.Competition, error) {
	comps, err := s.compRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return comps, nil
}

func (s *competitionService) SetChannel(ctx context.Context, id int64, role string, channel string) (*models.Competition, error) {
	r, err := models.ParseChannelRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidChannelRole, role)
	}

	var ch *string
	if trimmed := strings.TrimSpace(channel); trimmed != "" {
		ch = &trimmed
	}
	if err := s.compRepo.SetChannel(ctx, nil, id, r, ch); err != nil {
		return nil, mapCompetitionError(err, id)
	}
	return s.GetCompetition(ctx, id)
}

func (s *competitionService) AddParticipants(ctx context.Context, id int64, refs []models.ParticipantRef) (*EntryReport, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no participants given", ErrValidationFailed)
	}
	comp, err := s.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}

	want := comp.Kind.ParticipantKind()
	for _, ref := range refs {
		if ref.Kind != want {
			return nil, fmt.Errorf("%w: %s competitions take %s entries, got %s", ErrParticipantKindInvalid, comp.Kind, want, ref)
		}
	}

	report := &EntryReport{
		Added:          []models.ParticipantRef{},
		AlreadyEntered: []models.ParticipantRef{},
		NotFound:       []models.ParticipantRef{},
	}
	for _, ref := range refs {
		exists, err := s.participantExists(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !exists {
			report.NotFound = append(report.NotFound, ref)
			continue
		}

		// each entry commits on its own so a duplicate does not undo the others
		err = s.participantRepo.Add(ctx, nil, &models.CompetitionParticipant{CompetitionID: comp.ID, Participant: ref})
		switch {
		case err == nil:
			report.Added = append(report.Added, ref)
		case errors.Is(err, repositories.ErrParticipantAlreadyEntered):
			report.AlreadyEntered = append(report.AlreadyEntered, ref)
		case errors.Is(err, repositories.ErrParticipantCompetitionInvalid):
			return nil, fmt.Errorf("%w: id %d", ErrCompetitionNotFound, id)
		default:
			return nil, fmt.Errorf("failed to enter %s: %w", ref, err)
		}
	}

	s.logger.Info("participants entered",
		slog.Int64("competition_id", comp.ID),
		slog.Int("added", len(report.Added)),
		slog.Int("already_entered", len(report.AlreadyEntered)),
		slog.Int("not_found", len(report.NotFound)))
	return report, nil
}

func (s *competitionService) participantExists(ctx context.Context, ref models.ParticipantRef) (bool, error) {
	var err error
	switch ref.Kind {
	case models.ParticipantTeam:
		_, err = s.teamRepo.GetByID(ctx, nil, ref.ID)
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return false, nil
		}
	case models.ParticipantPlayer:
		_, err = s.playerRepo.GetByID(ctx, nil, ref.ID)
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return false, nil
		}
	default:
		return false, fmt.Errorf("%w: %s", ErrParticipantKindInvalid, ref)
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", ref, err)
	}
	return true, nil
}

func (s *competitionService) RemoveParticipant(ctx context.Context, id int64, ref models.ParticipantRef) error {
	if err := s.participantRepo.Remove(ctx, nil, id, ref); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return fmt.Errorf("%w: %s in competition %d", ErrParticipantNotFound, ref, id)
		}
		return fmt.Errorf("failed to withdraw %s: %w", ref, err)
	}
	return nil
}

func (s *competitionService) ListParticipants(ctx context.Context, id int64) ([]*models.CompetitionParticipant, error) {
	if _, err := s.GetCompetition(ctx, id); err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.ListByCompetition(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (s *competitionService) DeleteCompetition(ctx context.Context, id int64) error {
	if err := s.compRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrCompetitionHasHistory) {
			return fmt.Errorf("%w: competition %d", ErrHasHistory, id)
		}
		return mapCompetitionError(err, id)
	}
	s.logger.Info("competition deleted", slog.Int64("competition_id", id))
	return nil
}

func mapCompetitionError(err error, id int64) error {
	if errors.Is(err, repositories.ErrCompetitionNotFound) {
		return fmt.Errorf("%w: id %d", ErrCompetitionNotFound, id)
	}
	return fmt.Errorf("competition %d: %w", id, err)
}
