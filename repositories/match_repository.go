package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var (
	ErrMatchCompetitionInvalid = errors.New("match competition reference invalid")
	ErrMatchSameSides          = errors.New("match winner and loser must differ")
)

// MatchRepository stores the append-only result history. There is no update or delete.
type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.MatchRecord) error
	CountWins(ctx context.Context, exec SQLExecutor, winnerID, loserID int64) (int, error)
	CountByPlayer(ctx context.Context, exec SQLExecutor, playerID int64) (int, error)
	ListRecentByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64, limit int) ([]*models.MatchRecord, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.MatchRecord) error {
	query := `
		INSERT INTO match_history (competition_id, winner_id, loser_id, played_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := executorOr(exec, r.db).QueryRowContext(ctx, query,
		match.CompetitionID, match.WinnerID, match.LoserID, match.PlayedAt,
	).Scan(&match.ID)
	if err != nil {
		if code, _, ok := pqErrorCode(err); ok {
			switch code {
			case pqForeignKeyViolation:
				return ErrMatchCompetitionInvalid
			case pqCheckViolation:
				return ErrMatchSameSides
			}
		}
		return fmt.Errorf("failed to record match in competition %d: %w", match.CompetitionID, err)
	}
	return nil
}

func (r *postgresMatchRepository) CountWins(ctx context.Context, exec SQLExecutor, winnerID, loserID int64) (int, error) {
	query := `SELECT COUNT(*) FROM match_history WHERE winner_id = $1 AND loser_id = $2`

	var count int
	if err := executorOr(exec, r.db).QueryRowContext(ctx, query, winnerID, loserID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count wins of %d over %d: %w", winnerID, loserID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) CountByPlayer(ctx context.Context, exec SQLExecutor, playerID int64) (int, error) {
	query := `SELECT COUNT(*) FROM match_history WHERE winner_id = $1 OR loser_id = $1`

	var count int
	if err := executorOr(exec, r.db).QueryRowContext(ctx, query, playerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches for player %d: %w", playerID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) ListRecentByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64, limit int) ([]*models.MatchRecord, error) {
	query := `
		SELECT id, competition_id, winner_id, loser_id, played_at
		FROM match_history
		WHERE competition_id = $1
		ORDER BY played_at DESC, id DESC
		LIMIT $2`

	rows, err := executorOr(exec, r.db).QueryContext(ctx, query, competitionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	matches := make([]*models.MatchRecord, 0)
	for rows.Next() {
		var m models.MatchRecord
		if err := rows.Scan(&m.ID, &m.CompetitionID, &m.WinnerID, &m.LoserID, &m.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}
