package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var (
	ErrParticipantNotFound           = errors.New("competition participant not found")
	ErrParticipantAlreadyEntered     = errors.New("participant already entered in competition")
	ErrParticipantCompetitionInvalid = errors.New("participant competition reference invalid")
)

type ParticipantRepository interface {
	Add(ctx context.Context, exec SQLExecutor, cp *models.CompetitionParticipant) error
	Remove(ctx context.Context, exec SQLExecutor, competitionID int64, ref models.ParticipantRef) error
	// RemoveEverywhere drops the participant from every competition and reports how many rows went.
	RemoveEverywhere(ctx context.Context, exec SQLExecutor, ref models.ParticipantRef) (int64, error)
	ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) ([]*models.CompetitionParticipant, error)
	// ListEntrants resolves names for participants of the given kind, skipping rows whose entity is gone.
	ListEntrants(ctx context.Context, exec SQLExecutor, competitionID int64, kind models.ParticipantKind) ([]models.Entrant, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Add(ctx context.Context, exec SQLExecutor, cp *models.CompetitionParticipant) error {
	query := `
		INSERT INTO competition_participants (competition_id, participant_type, participant_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executorOr(exec, r.db).QueryRowContext(ctx, query,
		cp.CompetitionID, string(cp.Participant.Kind), cp.Participant.ID,
	).Scan(&cp.ID, &cp.CreatedAt)
	if err != nil {
		if code, _, ok := pqErrorCode(err); ok {
			switch code {
			case pqUniqueViolation:
				return ErrParticipantAlreadyEntered
			case pqForeignKeyViolation:
				return ErrParticipantCompetitionInvalid
			}
		}
		return fmt.Errorf("failed to add %s to competition %d: %w", cp.Participant, cp.CompetitionID, err)
	}
	return nil
}

func (r *postgresParticipantRepository) Remove(ctx context.Context, exec SQLExecutor, competitionID int64, ref models.ParticipantRef) error {
	query := `
		DELETE FROM competition_participants
		WHERE competition_id = $1 AND participant_type = $2 AND participant_id = $3`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, competitionID, string(ref.Kind), ref.ID)
	if err != nil {
		return fmt.Errorf("failed to remove %s from competition %d: %w", ref, competitionID, err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) RemoveEverywhere(ctx context.Context, exec SQLExecutor, ref models.ParticipantRef) (int64, error) {
	query := `DELETE FROM competition_participants WHERE participant_type = $1 AND participant_id = $2`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, string(ref.Kind), ref.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove %s from competitions: %w", ref, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}

func (r *postgresParticipantRepository) ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) ([]*models.CompetitionParticipant, error) {
	query := `
		SELECT cp.id, cp.competition_id, cp.participant_type, cp.participant_id,
		       COALESCE(t.name, p.name, ''), cp.created_at
		FROM competition_participants cp
		LEFT JOIN teams t ON cp.participant_type = 'team' AND t.id = cp.participant_id
		LEFT JOIN players p ON cp.participant_type = 'player' AND p.id = cp.participant_id
		WHERE cp.competition_id = $1
		ORDER BY cp.id ASC`

	rows, err := executorOr(exec, r.db).QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	participants := make([]*models.CompetitionParticipant, 0)
	for rows.Next() {
		var (
			cp   models.CompetitionParticipant
			kind string
			id   int64
		)
		if err := rows.Scan(&cp.ID, &cp.CompetitionID, &kind, &id, &cp.Name, &cp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		if cp.Participant, err = models.NewParticipantRef(kind, id); err != nil {
			return nil, fmt.Errorf("participant row %d: %w", cp.ID, err)
		}
		participants = append(participants, &cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) ListEntrants(ctx context.Context, exec SQLExecutor, competitionID int64, kind models.ParticipantKind) ([]models.Entrant, error) {
	var query string
	switch kind {
	case models.ParticipantTeam:
		query = `
			SELECT t.id, t.name
			FROM competition_participants cp
			JOIN teams t ON t.id = cp.participant_id
			WHERE cp.competition_id = $1 AND cp.participant_type = 'team'
			ORDER BY cp.id ASC`
	case models.ParticipantPlayer:
		query = `
			SELECT p.id, p.name
			FROM competition_participants cp
			JOIN players p ON p.id = cp.participant_id
			WHERE cp.competition_id = $1 AND cp.participant_type = 'player'
			ORDER BY cp.id ASC`
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidParticipantKind, kind)
	}

	rows, err := executorOr(exec, r.db).QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s entrants for competition %d: %w", kind, competitionID, err)
	}
	defer rows.Close()

	entrants := make([]models.Entrant, 0)
	for rows.Next() {
		var e models.Entrant
		if err := rows.Scan(&e.Ref.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("failed to scan entrant row: %w", err)
		}
		e.Ref.Kind = kind
		entrants = append(entrants, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entrant rows: %w", err)
	}
	return entrants, nil
}
