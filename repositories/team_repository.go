package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Team, error)
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error)
	Delete(ctx context.Context, exec SQLExecutor, id int64) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `INSERT INTO teams (name) VALUES ($1) RETURNING id, created_at`

	err := executorOr(exec, r.db).QueryRowContext(ctx, query, team.Name).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if code, _, ok := pqErrorCode(err); ok && code == pqUniqueViolation {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Team, error) {
	query := `SELECT id, name, created_at FROM teams WHERE id = $1`
	return r.scanOne(executorOr(exec, r.db).QueryRowContext(ctx, query, id), fmt.Sprintf("id %d", id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error) {
	query := `SELECT id, name, created_at FROM teams WHERE name = $1`
	return r.scanOne(executorOr(exec, r.db).QueryRowContext(ctx, query, name), fmt.Sprintf("name %q", name))
}

func (r *postgresTeamRepository) scanOne(row *sql.Row, key string) (*models.Team, error) {
	var team models.Team
	if err := row.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team by %s: %w", key, err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error) {
	query := `SELECT id, name, created_at FROM teams ORDER BY name ASC`

	rows, err := executorOr(exec, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

// Delete removes the team. Players keep their rows with team_id cleared by the FK action.
func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int64) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
