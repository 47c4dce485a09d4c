package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var (
	ErrPlayerNotFound          = errors.New("player not found")
	ErrPlayerAlreadyRegistered = errors.New("player already registered")
	ErrPlayerTeamInvalid       = errors.New("player team reference invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Player, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.Player, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Player, error)
	ListByTeam(ctx context.Context, exec SQLExecutor, teamID int64) ([]*models.Player, error)
	UpdateStanding(ctx context.Context, exec SQLExecutor, player *models.Player) error
	UpdateName(ctx context.Context, exec SQLExecutor, id int64, name string) error
	AssignTeam(ctx context.Context, exec SQLExecutor, id int64, teamID *int64) error
	Delete(ctx context.Context, exec SQLExecutor, id int64) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, handicap, win_streak, loss_streak, team_id, created_at`

func scanPlayer(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Player, error) {
	var (
		p      models.Player
		teamID sql.NullInt64
	)
	if err := scanner.Scan(&p.ID, &p.Name, &p.Handicap, &p.WinStreak, &p.LossStreak, &teamID, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.TeamID = int64Ptr(teamID)
	return &p, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	code, _, ok := pqErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case pqUniqueViolation:
		return ErrPlayerAlreadyRegistered
	case pqForeignKeyViolation:
		return ErrPlayerTeamInvalid
	}
	return err
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, handicap, win_streak, loss_streak, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	var teamID interface{}
	if player.TeamID != nil {
		teamID = *player.TeamID
	}
	err := executorOr(exec, r.db).QueryRowContext(ctx, query,
		player.ID, player.Name, player.Handicap, player.WinStreak, player.LossStreak, teamID,
	).Scan(&player.CreatedAt)
	if err != nil {
		if mapped := r.handlePlayerError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create player %d: %w", player.ID, err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.getOne(ctx, exec, query, id)
}

func (r *postgresPlayerRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int64) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, exec, query, id)
}

func (r *postgresPlayerRepository) getOne(ctx context.Context, exec SQLExecutor, query string, id int64) (*models.Player, error) {
	p, err := scanPlayer(executorOr(exec, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY name ASC, id ASC`
	return r.list(ctx, exec, query)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, exec SQLExecutor, teamID int64) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY name ASC, id ASC`
	return r.list(ctx, exec, query, teamID)
}

func (r *postgresPlayerRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := executorOr(exec, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateStanding(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `UPDATE players SET handicap = $1, win_streak = $2, loss_streak = $3 WHERE id = $4`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, player.Handicap, player.WinStreak, player.LossStreak, player.ID)
	if err != nil {
		return fmt.Errorf("failed to update standing for player %d: %w", player.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateName(ctx context.Context, exec SQLExecutor, id int64, name string) error {
	query := `UPDATE players SET name = $1 WHERE id = $2`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) AssignTeam(ctx context.Context, exec SQLExecutor, id int64, teamID *int64) error {
	query := `UPDATE players SET team_id = $1 WHERE id = $2`

	var team interface{}
	if teamID != nil {
		team = *teamID
	}
	result, err := executorOr(exec, r.db).ExecContext(ctx, query, team, id)
	if err != nil {
		if mapped := r.handlePlayerError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to assign team for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, exec SQLExecutor, id int64) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
