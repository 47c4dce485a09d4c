package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/league-system/brackets"
	"github.com/Dosada05/league-system/broadcast"
	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/storage"
	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
)

const DefaultConfirmationTTL = 60 * time.Second

type GenerationStatus string

const (
	StatusGenerated            GenerationStatus = "generated"
	StatusConfirmationRequired GenerationStatus = "confirmation_required"
)

type GenerationOutcome struct {
	Status        GenerationStatus     `json:"status"`
	Competition   *models.Competition  `json:"competition"`
	Fixtures      []*models.Fixture    `json:"fixtures,omitempty"`
	ReplacedCount int64                `json:"replaced_count,omitempty"`
	Pending       *PendingConfirmation `json:"pending,omitempty"`
	ArchiveURL    string               `json:"archive_url,omitempty"`
}

// ScheduleArchiver stores a copy of every committed schedule.
type ScheduleArchiver interface {
	Archive(ctx context.Context, snap storage.ScheduleSnapshot) (*storage.UploadResult, error)
}

type FixtureService interface {
	// GenerateFixtures writes a schedule for a competition without one. When fixtures
	// already exist nothing is written and a pending confirmation is returned instead.
	GenerateFixtures(ctx context.Context, competitionID int64) (*GenerationOutcome, error)
	ResolveConfirmation(ctx context.Context, token uuid.UUID, confirm bool) (*GenerationOutcome, error)
	SweepExpiredConfirmations() int
	ListFixtures(ctx context.Context, competitionID int64) ([]*models.Fixture, error)
	CompleteFixture(ctx context.Context, fixtureID int64) (*models.Fixture, error)
}

type FixtureServiceOption func(*fixtureService)

func WithShuffler(s brackets.Shuffler) FixtureServiceOption {
	return func(fs *fixtureService) { fs.shuffler = s }
}

type fixtureService struct {
	tx              repositories.Transactor
	compRepo        repositories.CompetitionRepository
	participantRepo repositories.ParticipantRepository
	fixtureRepo     repositories.FixtureRepository
	notifier        broadcast.Notifier
	archiver        ScheduleArchiver
	clock           clock.Clock
	ttl             time.Duration
	shuffler        brackets.Shuffler
	pending         *confirmationRegistry
	logger          *slog.Logger
}

func NewFixtureService(
	tx repositories.Transactor,
	compRepo repositories.CompetitionRepository,
	participantRepo repositories.ParticipantRepository,
	fixtureRepo repositories.FixtureRepository,
	notifier broadcast.Notifier,
	archiver ScheduleArchiver,
	clk clock.Clock,
	ttl time.Duration,
	logger *slog.Logger,
	opts ...FixtureServiceOption,
) FixtureService {
	if clk == nil {
		clk = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	s := &fixtureService{
		tx:              tx,
		compRepo:        compRepo,
		participantRepo: participantRepo,
		fixtureRepo:     fixtureRepo,
		notifier:        notifier,
		archiver:        archiver,
		clock:           clk,
		ttl:             ttl,
		pending:         newConfirmationRegistry(),
		logger:          loggerOrDefault(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *fixtureService) GenerateFixtures(ctx context.Context, competitionID int64) (*GenerationOutcome, error) {
	if err := validateIDs(competitionID); err != nil {
		return nil, err
	}
	comp, err := s.compRepo.GetByID(ctx, nil, competitionID)
	if err != nil {
		return nil, mapCompetitionError(err, competitionID)
	}

	entrants, err := s.participantRepo.ListEntrants(ctx, nil, comp.ID, comp.Kind.ParticipantKind())
	if err != nil {
		return nil, fmt.Errorf("failed to load entrants for competition %d: %w", comp.ID, err)
	}
	if len(entrants) < 2 {
		return nil, fmt.Errorf("%w: competition %d has %d eligible %s entries", ErrInsufficientParticipants, comp.ID, len(entrants), comp.Kind.ParticipantKind())
	}

	existing, err := s.fixtureRepo.CountByCompetition(ctx, nil, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count fixtures for competition %d: %w", comp.ID, err)
	}
	if existing > 0 {
		p := &PendingConfirmation{
			Token:            uuid.New(),
			CompetitionID:    comp.ID,
			ExistingFixtures: existing,
			ExpiresAt:        s.clock.Now().Add(s.ttl),
		}
		if s.pending.put(p) {
			s.logger.Info("earlier regeneration request superseded", slog.Int64("competition_id", comp.ID))
		}
		s.logger.Info("regeneration awaiting confirmation",
			slog.Int64("competition_id", comp.ID),
			slog.Int("existing_fixtures", existing),
			slog.Time("expires_at", p.ExpiresAt))
		return &GenerationOutcome{Status: StatusConfirmationRequired, Competition: comp, Pending: p}, nil
	}

	return s.generate(ctx, comp, false)
}

func (s *fixtureService) ResolveConfirmation(ctx context.Context, token uuid.UUID, confirm bool) (*GenerationOutcome, error) {
	p, ok := s.pending.take(token)
	if !ok {
		return nil, ErrConfirmationNotFound
	}
	if s.clock.Now().After(p.ExpiresAt) {
		s.logger.Info("regeneration confirmation expired", slog.Int64("competition_id", p.CompetitionID))
		return nil, ErrConfirmationExpired
	}
	if !confirm {
		s.logger.Info("regeneration cancelled", slog.Int64("competition_id", p.CompetitionID))
		return nil, ErrRegenerationCancelled
	}

	comp, err := s.compRepo.GetByID(ctx, nil, p.CompetitionID)
	if err != nil {
		return nil, mapCompetitionError(err, p.CompetitionID)
	}
	return s.generate(ctx, comp, true)
}

// generate runs the generator and swaps the schedule in one transaction. Without
// replace, a schedule committed concurrently makes it fail with ErrFixturesExist.
func (s *fixtureService) generate(ctx context.Context, comp *models.Competition, replace bool) (*GenerationOutcome, error) {
	generator, err := brackets.NewGenerator(comp.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCompetitionKind, err)
	}

	var (
		fixtures []*models.Fixture
		replaced int64
	)
	txErr := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		entrants, err := s.participantRepo.ListEntrants(ctx, exec, comp.ID, comp.Kind.ParticipantKind())
		if err != nil {
			return fmt.Errorf("failed to load entrants: %w", err)
		}

		if replace {
			if replaced, err = s.fixtureRepo.DeleteByCompetition(ctx, exec, comp.ID); err != nil {
				return fmt.Errorf("failed to clear fixtures: %w", err)
			}
		} else {
			count, err := s.fixtureRepo.CountByCompetition(ctx, exec, comp.ID)
			if err != nil {
				return fmt.Errorf("failed to count fixtures: %w", err)
			}
			if count > 0 {
				return ErrFixturesExist
			}
		}

		scheduled, err := generator.Generate(ctx, brackets.GenerateParams{
			Competition: comp,
			Entrants:    entrants,
			Shuffler:    s.shuffler,
		})
		if err != nil {
			if errors.Is(err, brackets.ErrInsufficientParticipants) {
				return fmt.Errorf("%w: %w", ErrInsufficientParticipants, err)
			}
			return fmt.Errorf("%s generator failed: %w", generator.Name(), err)
		}

		fixtures = make([]*models.Fixture, 0, len(scheduled))
		for _, sf := range scheduled {
			fixtures = append(fixtures, sf.ToModel(comp.ID))
		}
		if err := s.fixtureRepo.CreateBatch(ctx, exec, fixtures); err != nil {
			if errors.Is(err, repositories.ErrFixtureCompetitionInvalid) {
				return fmt.Errorf("%w: id %d", ErrCompetitionNotFound, comp.ID)
			}
			return fmt.Errorf("failed to save fixtures: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrFixturesExist) || errors.Is(txErr, ErrInsufficientParticipants) || errors.Is(txErr, ErrNotFound) {
			return nil, txErr
		}
		return nil, fmt.Errorf("fixture generation for competition %d failed: %w", comp.ID, txErr)
	}

	now := s.clock.Now()
	s.logger.Info("fixtures generated",
		slog.Int64("competition_id", comp.ID),
		slog.String("generator", generator.Name()),
		slog.Int("fixtures", len(fixtures)),
		slog.Int64("replaced", replaced))

	outcome := &GenerationOutcome{
		Status:        StatusGenerated,
		Competition:   comp,
		Fixtures:      fixtures,
		ReplacedCount: replaced,
	}
	publish(ctx, s.notifier, s.logger, comp, models.ChannelFixtures, broadcast.EventFixturesGenerated, fixtures, now)
	outcome.ArchiveURL = s.archive(ctx, comp, fixtures, now)
	return outcome, nil
}

func (s *fixtureService) archive(ctx context.Context, comp *models.Competition, fixtures []*models.Fixture, at time.Time) string {
	if s.archiver == nil {
		return ""
	}
	res, err := s.archiver.Archive(ctx, storage.ScheduleSnapshot{Competition: comp, Fixtures: fixtures, GeneratedAt: at})
	if err != nil {
		s.logger.Warn("schedule snapshot upload failed",
			slog.Int64("competition_id", comp.ID),
			slog.Any("error", err))
		return ""
	}
	return res.Location
}

func (s *fixtureService) SweepExpiredConfirmations() int {
	removed := s.pending.sweep(s.clock.Now())
	if removed > 0 {
		s.logger.Info("expired regeneration requests dropped", slog.Int("count", removed))
	}
	return removed
}

func (s *fixtureService) ListFixtures(ctx context.Context, competitionID int64) ([]*models.Fixture, error) {
	if _, err := s.compRepo.GetByID(ctx, nil, competitionID); err != nil {
		return nil, mapCompetitionError(err, competitionID)
	}
	fixtures, err := s.fixtureRepo.ListByCompetition(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures for competition %d: %w", competitionID, err)
	}
	return fixtures, nil
}

// CompleteFixture marks a fixture played. Completing an already complete fixture is a no-op.
func (s *fixtureService) CompleteFixture(ctx context.Context, fixtureID int64) (*models.Fixture, error) {
	if err := validateIDs(fixtureID); err != nil {
		return nil, err
	}

	var fixture *models.Fixture
	var changed bool
	txErr := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		f, err := s.fixtureRepo.GetByID(ctx, exec, fixtureID)
		if err != nil {
			return err
		}
		fixture = f
		if f.IsComplete {
			return nil
		}
		if err := s.fixtureRepo.MarkComplete(ctx, exec, f.ID); err != nil {
			return err
		}
		f.IsComplete = true
		changed = true
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, repositories.ErrFixtureNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrFixtureNotFound, fixtureID)
		}
		return nil, fmt.Errorf("failed to complete fixture %d: %w", fixtureID, txErr)
	}

	if changed {
		s.logger.Info("fixture completed",
			slog.Int64("fixture_id", fixture.ID),
			slog.Int64("competition_id", fixture.CompetitionID))
		if comp, err := s.compRepo.GetByID(ctx, nil, fixture.CompetitionID); err == nil {
			publish(ctx, s.notifier, s.logger, comp, models.ChannelResults, broadcast.EventFixtureCompleted, fixture, s.clock.Now())
		}
	}
	return fixture, nil
}
