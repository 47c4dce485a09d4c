package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var (
	ErrCompetitionNotFound     = errors.New("competition not found")
	ErrCompetitionNameConflict = errors.New("competition name conflict")
	ErrCompetitionKindInvalid  = errors.New("competition kind invalid")
	ErrCompetitionHasHistory   = errors.New("competition has recorded matches")
)

type CompetitionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, comp *models.Competition) error
	GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Competition, error)
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Competition, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Competition, error)
	SetChannel(ctx context.Context, exec SQLExecutor, id int64, role models.ChannelRole, channel *string) error
	Delete(ctx context.Context, exec SQLExecutor, id int64) error
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

const competitionColumns = `id, name, kind, affects_handicap, fixtures_channel, results_channel, created_at`

func scanCompetition(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Competition, error) {
	var (
		c                 models.Competition
		fixtures, results sql.NullString
	)
	if err := scanner.Scan(&c.ID, &c.Name, &c.Kind, &c.AffectsHandicap, &fixtures, &results, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.FixturesChannel = stringPtr(fixtures)
	c.ResultsChannel = stringPtr(results)
	return &c, nil
}

func (r *postgresCompetitionRepository) Create(ctx context.Context, exec SQLExecutor, comp *models.Competition) error {
	query := `
		INSERT INTO competitions (name, kind, affects_handicap, fixtures_channel, results_channel)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executorOr(exec, r.db).QueryRowContext(ctx, query,
		comp.Name, comp.Kind, comp.AffectsHandicap,
		nullableString(comp.FixturesChannel), nullableString(comp.ResultsChannel),
	).Scan(&comp.ID, &comp.CreatedAt)
	if err != nil {
		if code, _, ok := pqErrorCode(err); ok {
			switch code {
			case pqUniqueViolation:
				return ErrCompetitionNameConflict
			case pqCheckViolation:
				return ErrCompetitionKindInvalid
			}
		}
		return fmt.Errorf("failed to create competition %q: %w", comp.Name, err)
	}
	return nil
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id = $1`
	return r.getOne(executorOr(exec, r.db).QueryRowContext(ctx, query, id), fmt.Sprintf("id %d", id))
}

func (r *postgresCompetitionRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE name = $1`
	return r.getOne(executorOr(exec, r.db).QueryRowContext(ctx, query, name), fmt.Sprintf("name %q", name))
}

func (r *postgresCompetitionRepository) getOne(row *sql.Row, key string) (*models.Competition, error) {
	c, err := scanCompetition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to scan competition by %s: %w", key, err)
	}
	return c, nil
}

func (r *postgresCompetitionRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions ORDER BY name ASC`

	rows, err := executorOr(exec, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query competitions: %w", err)
	}
	defer rows.Close()

	comps := make([]*models.Competition, 0)
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competition row: %w", err)
		}
		comps = append(comps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competition rows: %w", err)
	}
	return comps, nil
}

func (r *postgresCompetitionRepository) SetChannel(ctx context.Context, exec SQLExecutor, id int64, role models.ChannelRole, channel *string) error {
	var query string
	switch role {
	case models.ChannelFixtures:
		query = `UPDATE competitions SET fixtures_channel = $1 WHERE id = $2`
	case models.ChannelResults:
		query = `UPDATE competitions SET results_channel = $1 WHERE id = $2`
	default:
		return fmt.Errorf("%w: %q", models.ErrInvalidChannelRole, role)
	}

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, nullableString(channel), id)
	if err != nil {
		return fmt.Errorf("failed to set %s channel for competition %d: %w", role, id, err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

// Delete cascades to participants and fixtures; recorded matches block it.
func (r *postgresCompetitionRepository) Delete(ctx context.Context, exec SQLExecutor, id int64) error {
	query := `DELETE FROM competitions WHERE id = $1`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, id)
	if err != nil {
		if code, _, ok := pqErrorCode(err); ok && code == pqForeignKeyViolation {
			return ErrCompetitionHasHistory
		}
		return fmt.Errorf("failed to delete competition %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}
