package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var (
	ErrFixtureNotFound           = errors.New("fixture not found")
	ErrFixtureCompetitionInvalid = errors.New("fixture competition reference invalid")
)

type FixtureRepository interface {
	// CreateBatch inserts all fixtures through one prepared statement. Callers run it
	// inside a transaction so a schedule is written whole or not at all.
	CreateBatch(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error
	DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) (int64, error)
	CountByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) (int, error)
	ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) ([]*models.Fixture, error)
	GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Fixture, error)
	// FindOpenBetween locks the lowest-slot open fixture pairing a and b in either order.
	FindOpenBetween(ctx context.Context, exec SQLExecutor, competitionID int64, a, b models.ParticipantRef) (*models.Fixture, error)
	MarkComplete(ctx context.Context, exec SQLExecutor, id int64) error
	NextOpenFor(ctx context.Context, exec SQLExecutor, competitionID int64, ref models.ParticipantRef) (*models.Fixture, error)
}

type postgresFixtureRepository struct {
	db *sql.DB
}

func NewPostgresFixtureRepository(db *sql.DB) FixtureRepository {
	return &postgresFixtureRepository{db: db}
}

const fixtureColumns = `id, competition_id, slot, participant1_type, participant1_id, participant1_name,
		participant2_type, participant2_id, participant2_name, is_complete, created_at`

const insertFixtureQuery = `
		INSERT INTO fixtures
			(competition_id, slot, participant1_type, participant1_id, participant1_name,
			 participant2_type, participant2_id, participant2_name, is_complete)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

func scanFixture(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Fixture, error) {
	var (
		f      models.Fixture
		p1Kind string
		p1ID   int64
		p2Kind sql.NullString
		p2ID   sql.NullInt64
	)
	if err := scanner.Scan(&f.ID, &f.CompetitionID, &f.Slot, &p1Kind, &p1ID, &f.Participant1Name,
		&p2Kind, &p2ID, &f.Participant2Name, &f.IsComplete, &f.CreatedAt); err != nil {
		return nil, err
	}

	p1, err := models.NewParticipantRef(p1Kind, p1ID)
	if err != nil {
		return nil, fmt.Errorf("fixture %d participant1: %w", f.ID, err)
	}
	f.Participant1 = p1

	if p2Kind.Valid && p2ID.Valid {
		p2, err := models.NewParticipantRef(p2Kind.String, p2ID.Int64)
		if err != nil {
			return nil, fmt.Errorf("fixture %d participant2: %w", f.ID, err)
		}
		f.Participant2 = &p2
	}
	return &f, nil
}

func fixtureArgs(f *models.Fixture) []interface{} {
	var p2Kind, p2ID interface{}
	if f.Participant2 != nil {
		p2Kind, p2ID = string(f.Participant2.Kind), f.Participant2.ID
	}
	return []interface{}{
		f.CompetitionID, f.Slot,
		string(f.Participant1.Kind), f.Participant1.ID, f.Participant1Name,
		p2Kind, p2ID, f.Participant2Name,
		f.IsComplete,
	}
}

func (r *postgresFixtureRepository) handleFixtureError(err error) error {
	if code, _, ok := pqErrorCode(err); ok && code == pqForeignKeyViolation {
		return ErrFixtureCompetitionInvalid
	}
	return err
}

func (r *postgresFixtureRepository) CreateBatch(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}
	executor := executorOr(exec, r.db)

	preparer, ok := executor.(stmtPreparer)
	if !ok {
		for _, f := range fixtures {
			if err := executor.QueryRowContext(ctx, insertFixtureQuery, fixtureArgs(f)...).Scan(&f.ID, &f.CreatedAt); err != nil {
				return fmt.Errorf("failed to insert fixture for competition %d: %w", f.CompetitionID, r.handleFixtureError(err))
			}
		}
		return nil
	}

	stmt, err := preparer.PrepareContext(ctx, insertFixtureQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare fixture insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range fixtures {
		if err := stmt.QueryRowContext(ctx, fixtureArgs(f)...).Scan(&f.ID, &f.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert fixture for competition %d: %w", f.CompetitionID, r.handleFixtureError(err))
		}
	}
	return nil
}

func (r *postgresFixtureRepository) DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) (int64, error) {
	query := `DELETE FROM fixtures WHERE competition_id = $1`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, competitionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete fixtures for competition %d: %w", competitionID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}

func (r *postgresFixtureRepository) CountByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) (int, error) {
	query := `SELECT COUNT(*) FROM fixtures WHERE competition_id = $1`

	var count int
	if err := executorOr(exec, r.db).QueryRowContext(ctx, query, competitionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count fixtures for competition %d: %w", competitionID, err)
	}
	return count, nil
}

func (r *postgresFixtureRepository) ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int64) ([]*models.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE competition_id = $1 ORDER BY slot ASC, id ASC`

	rows, err := executorOr(exec, r.db).QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	fixtures := make([]*models.Fixture, 0)
	for rows.Next() {
		f, err := scanFixture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixture row: %w", err)
		}
		fixtures = append(fixtures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixture rows: %w", err)
	}
	return fixtures, nil
}

func (r *postgresFixtureRepository) GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE id = $1`
	return r.getOne(executorOr(exec, r.db).QueryRowContext(ctx, query, id))
}

func (r *postgresFixtureRepository) FindOpenBetween(ctx context.Context, exec SQLExecutor, competitionID int64, a, b models.ParticipantRef) (*models.Fixture, error) {
	query := `
		SELECT ` + fixtureColumns + `
		FROM fixtures
		WHERE competition_id = $1 AND is_complete = FALSE
		  AND ((participant1_type = $2 AND participant1_id = $3 AND participant2_type = $4 AND participant2_id = $5)
		    OR (participant1_type = $4 AND participant1_id = $5 AND participant2_type = $2 AND participant2_id = $3))
		ORDER BY slot ASC, id ASC
		LIMIT 1
		FOR UPDATE`

	row := executorOr(exec, r.db).QueryRowContext(ctx, query, competitionID, string(a.Kind), a.ID, string(b.Kind), b.ID)
	return r.getOne(row)
}

func (r *postgresFixtureRepository) MarkComplete(ctx context.Context, exec SQLExecutor, id int64) error {
	query := `UPDATE fixtures SET is_complete = TRUE WHERE id = $1`

	result, err := executorOr(exec, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to complete fixture %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *postgresFixtureRepository) NextOpenFor(ctx context.Context, exec SQLExecutor, competitionID int64, ref models.ParticipantRef) (*models.Fixture, error) {
	query := `
		SELECT ` + fixtureColumns + `
		FROM fixtures
		WHERE competition_id = $1 AND is_complete = FALSE
		  AND ((participant1_type = $2 AND participant1_id = $3)
		    OR (participant2_type = $2 AND participant2_id = $3))
		ORDER BY slot ASC, id ASC
		LIMIT 1`

	return r.getOne(executorOr(exec, r.db).QueryRowContext(ctx, query, competitionID, string(ref.Kind), ref.ID))
}

func (r *postgresFixtureRepository) getOne(row *sql.Row) (*models.Fixture, error) {
	f, err := scanFixture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFixtureNotFound
		}
		return nil, fmt.Errorf("failed to scan fixture: %w", err)
	}
	return f, nil
}
