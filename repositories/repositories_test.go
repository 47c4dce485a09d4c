package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dosada05/league-system/db"
	"github.com/Dosada05/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const integrationEnv = "LEAGUE_INTEGRATION"

var (
	// shared by every test in the package; nil when integration tests are disabled
	testDB *sql.DB

	// keeps names and player ids unique across tests
	idCtr = int64(1000)
)

func TestMain(m *testing.M) {
	if os.Getenv(integrationEnv) != "1" {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16.3-alpine",
		postgres.WithDatabase("league"),
		postgres.WithUsername("league"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("error starting container: %v\n", err)
		os.Exit(1)
	}

	code := func() int {
		defer func() {
			if err := container.Terminate(context.Background()); err != nil {
				fmt.Printf("error terminating container: %v\n", err)
			}
		}()

		connStr, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("error getting connection string: %v\n", err)
			return 1
		}
		testDB, err = db.Connect(connStr, 10*time.Second)
		if err != nil {
			fmt.Printf("error connecting to db: %v\n", err)
			return 1
		}
		defer testDB.Close()

		if err := db.Migrate(ctx, testDB); err != nil {
			fmt.Printf("error migrating: %v\n", err)
			return 1
		}
		return m.Run()
	}()
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skipf("set %s=1 to run repository integration tests", integrationEnv)
	}
}

func nextID() int64 {
	return atomic.AddInt64(&idCtr, 1)
}

func mustCompetition(t *testing.T, kind models.CompetitionKind) *models.Competition {
	t.Helper()
	c := &models.Competition{Name: fmt.Sprintf("comp-%d", nextID()), Kind: kind, AffectsHandicap: true}
	require.NoError(t, NewPostgresCompetitionRepository(testDB).Create(context.Background(), nil, c))
	return c
}

func mustPlayer(t *testing.T, teamID *int64) *models.Player {
	t.Helper()
	id := nextID()
	p := &models.Player{ID: id, Name: fmt.Sprintf("player-%d", id), TeamID: teamID}
	require.NoError(t, NewPostgresPlayerRepository(testDB).Create(context.Background(), nil, p))
	return p
}

func TestTeamRepository_uniqueAndDetach(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	teams := NewPostgresTeamRepository(testDB)
	players := NewPostgresPlayerRepository(testDB)

	team := &models.Team{Name: fmt.Sprintf("team-%d", nextID())}
	require.NoError(t, teams.Create(ctx, nil, team))
	assert.ErrorIs(t, teams.Create(ctx, nil, &models.Team{Name: team.Name}), ErrTeamNameConflict)

	p := mustPlayer(t, &team.ID)
	require.NoError(t, teams.Delete(ctx, nil, team.ID))

	got, err := players.GetByID(ctx, nil, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TeamID, "team delete must detach players")

	_, err = teams.GetByName(ctx, nil, team.Name)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestPlayerRepository_registerTwice(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	players := NewPostgresPlayerRepository(testDB)

	p := mustPlayer(t, nil)
	err := players.Create(ctx, nil, &models.Player{ID: p.ID, Name: "again"})
	assert.ErrorIs(t, err, ErrPlayerAlreadyRegistered)

	bogus := int64(-1)
	assert.ErrorIs(t, players.AssignTeam(ctx, nil, p.ID, &bogus), ErrPlayerTeamInvalid)
}

func TestParticipantRepository_enterOnce(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	participants := NewPostgresParticipantRepository(testDB)
	comp := mustCompetition(t, models.KindCup)
	p := mustPlayer(t, nil)

	cp := &models.CompetitionParticipant{CompetitionID: comp.ID, Participant: models.PlayerRef(p.ID)}
	require.NoError(t, participants.Add(ctx, nil, cp))
	err := participants.Add(ctx, nil, &models.CompetitionParticipant{CompetitionID: comp.ID, Participant: models.PlayerRef(p.ID)})
	assert.ErrorIs(t, err, ErrParticipantAlreadyEntered)

	entrants, err := participants.ListEntrants(ctx, nil, comp.ID, models.ParticipantPlayer)
	require.NoError(t, err)
	require.Len(t, entrants, 1)
	assert.Equal(t, p.Name, entrants[0].Name)

	n, err := participants.RemoveEverywhere(ctx, nil, models.PlayerRef(p.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFixtureRepository_batchIsAtomic(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	fixtures := NewPostgresFixtureRepository(testDB)
	tx := NewPostgresTransactor(testDB)
	comp := mustCompetition(t, models.KindCup)
	a, b, c := mustPlayer(t, nil), mustPlayer(t, nil), mustPlayer(t, nil)

	bRef := models.PlayerRef(b.ID)
	batch := []*models.Fixture{
		{CompetitionID: comp.ID, Slot: 1, Participant1: models.PlayerRef(a.ID), Participant2: &bRef},
		{CompetitionID: comp.ID, Slot: 1, Participant1: models.PlayerRef(c.ID), IsComplete: true},
	}
	require.NoError(t, tx.WithinTx(ctx, func(exec SQLExecutor) error {
		return fixtures.CreateBatch(ctx, exec, batch)
	}))
	assert.NotZero(t, batch[0].ID)

	// a failing statement rolls the whole batch back
	bad := []*models.Fixture{
		{CompetitionID: comp.ID, Slot: 1, Participant1: models.PlayerRef(a.ID), IsComplete: true},
		{CompetitionID: -1, Slot: 1, Participant1: models.PlayerRef(a.ID), IsComplete: true},
	}
	err := tx.WithinTx(ctx, func(exec SQLExecutor) error {
		if _, err := fixtures.DeleteByCompetition(ctx, exec, comp.ID); err != nil {
			return err
		}
		return fixtures.CreateBatch(ctx, exec, bad)
	})
	assert.True(t, errors.Is(err, ErrFixtureCompetitionInvalid), "got %v", err)

	count, err := fixtures.CountByCompetition(ctx, nil, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	open, err := fixtures.FindOpenBetween(ctx, nil, comp.ID, bRef, models.PlayerRef(a.ID))
	require.NoError(t, err)
	assert.Equal(t, batch[0].ID, open.ID)

	require.NoError(t, fixtures.MarkComplete(ctx, nil, open.ID))
	_, err = fixtures.NextOpenFor(ctx, nil, comp.ID, models.PlayerRef(a.ID))
	assert.ErrorIs(t, err, ErrFixtureNotFound)
}

func TestMatchRepository_historyBlocksCompetitionDelete(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	matches := NewPostgresMatchRepository(testDB)
	comps := NewPostgresCompetitionRepository(testDB)
	comp := mustCompetition(t, models.KindCup)

	winner, loser := nextID(), nextID()
	for i := 0; i < 2; i++ {
		require.NoError(t, matches.Create(ctx, nil, &models.MatchRecord{
			CompetitionID: comp.ID, WinnerID: winner, LoserID: loser, PlayedAt: time.Now(),
		}))
	}
	assert.ErrorIs(t, matches.Create(ctx, nil, &models.MatchRecord{
		CompetitionID: comp.ID, WinnerID: winner, LoserID: winner, PlayedAt: time.Now(),
	}), ErrMatchSameSides)

	wins, err := matches.CountWins(ctx, nil, winner, loser)
	require.NoError(t, err)
	assert.Equal(t, 2, wins)

	wins, err = matches.CountWins(ctx, nil, loser, winner)
	require.NoError(t, err)
	assert.Equal(t, 0, wins)

	assert.ErrorIs(t, comps.Delete(ctx, nil, comp.ID), ErrCompetitionHasHistory)
}
