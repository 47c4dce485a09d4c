package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFixtureService struct{ mock.Mock }

func (m *mockFixtureService) GenerateFixtures(ctx context.Context, competitionID int64) (*services.GenerationOutcome, error) {
	args := m.Called(ctx, competitionID)
	out, _ := args.Get(0).(*services.GenerationOutcome)
	return out, args.Error(1)
}

func (m *mockFixtureService) ResolveConfirmation(ctx context.Context, token uuid.UUID, confirm bool) (*services.GenerationOutcome, error) {
	args := m.Called(ctx, token, confirm)
	out, _ := args.Get(0).(*services.GenerationOutcome)
	return out, args.Error(1)
}

func (m *mockFixtureService) SweepExpiredConfirmations() int {
	return m.Called().Int(0)
}

func (m *mockFixtureService) ListFixtures(ctx context.Context, competitionID int64) ([]*models.Fixture, error) {
	args := m.Called(ctx, competitionID)
	out, _ := args.Get(0).([]*models.Fixture)
	return out, args.Error(1)
}

func (m *mockFixtureService) CompleteFixture(ctx context.Context, fixtureID int64) (*models.Fixture, error) {
	args := m.Called(ctx, fixtureID)
	out, _ := args.Get(0).(*models.Fixture)
	return out, args.Error(1)
}

type mockResultService struct{ mock.Mock }

func (m *mockResultService) ReportResult(ctx context.Context, input services.ReportResultInput) (*services.ReportOutcome, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*services.ReportOutcome)
	return out, args.Error(1)
}

type mockQueryService struct{ mock.Mock }

func (m *mockQueryService) NextFixture(ctx context.Context, competitionID, playerID int64) (*models.Fixture, error) {
	args := m.Called(ctx, competitionID, playerID)
	out, _ := args.Get(0).(*models.Fixture)
	return out, args.Error(1)
}

func (m *mockQueryService) HeadToHead(ctx context.Context, playerA, playerB int64) (*models.HeadToHead, error) {
	args := m.Called(ctx, playerA, playerB)
	out, _ := args.Get(0).(*models.HeadToHead)
	return out, args.Error(1)
}

func (m *mockQueryService) CompetitionOverview(ctx context.Context, competitionID int64) (*services.CompetitionOverview, error) {
	args := m.Called(ctx, competitionID)
	out, _ := args.Get(0).(*services.CompetitionOverview)
	return out, args.Error(1)
}

func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var springCup = &models.Competition{ID: 7, Name: "Spring Cup", Kind: models.KindCup, AffectsHandicap: true}

func TestGenerateFixturesCreated(t *testing.T) {
	fs := new(mockFixtureService)
	fs.On("GenerateFixtures", mock.Anything, int64(7)).Return(&services.GenerationOutcome{
		Status:      services.StatusGenerated,
		Competition: springCup,
		Fixtures: []*models.Fixture{
			{ID: 1, CompetitionID: 7, Slot: 1, Participant1: models.PlayerRef(1), Participant1Name: "A"},
		},
	}, nil)

	rec := serve(t, http.MethodPost, "/competitions/{competitionID}/fixtures", "/competitions/7/fixtures", "",
		NewFixtureHandler(fs).GenerateFixtures)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	body := decodeBody(t, rec)
	assert.Equal(t, string(services.StatusGenerated), body["status"])
	assert.Len(t, body["fixtures"], 1)
	fs.AssertExpectations(t)
}

func TestGenerateFixturesNeedsConfirmation(t *testing.T) {
	token := uuid.New()
	fs := new(mockFixtureService)
	fs.On("GenerateFixtures", mock.Anything, int64(7)).Return(&services.GenerationOutcome{
		Status:      services.StatusConfirmationRequired,
		Competition: springCup,
		Pending: &services.PendingConfirmation{
			Token: token, CompetitionID: 7, ExistingFixtures: 2, ExpiresAt: time.Now().Add(time.Minute),
		},
	}, nil)

	rec := serve(t, http.MethodPost, "/competitions/{competitionID}/fixtures", "/competitions/7/fixtures", "",
		NewFixtureHandler(fs).GenerateFixtures)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "/confirmations/"+token.String(), rec.Header().Get("Location"))
}

func TestGenerateFixturesErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad id", "/competitions/abc/fixtures", nil, http.StatusBadRequest},
		{"unknown competition", "/competitions/7/fixtures", services.ErrCompetitionNotFound, http.StatusNotFound},
		{"too few entrants", "/competitions/7/fixtures", services.ErrInsufficientParticipants, http.StatusUnprocessableEntity},
		{"race with another generator", "/competitions/7/fixtures", services.ErrFixturesExist, http.StatusConflict},
		{"database down", "/competitions/7/fixtures", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := new(mockFixtureService)
			if tt.err != nil {
				fs.On("GenerateFixtures", mock.Anything, int64(7)).Return(nil, tt.err)
			}
			rec := serve(t, http.MethodPost, "/competitions/{competitionID}/fixtures", tt.target, "",
				NewFixtureHandler(fs).GenerateFixtures)
			assert.Equal(t, tt.status, rec.Code)
			fs.AssertExpectations(t)
		})
	}
}

func TestResolveConfirmation(t *testing.T) {
	token := uuid.New()
	target := "/confirmations/" + token.String()
	const pattern = "/confirmations/{token}"

	t.Run("confirmed", func(t *testing.T) {
		fs := new(mockFixtureService)
		fs.On("ResolveConfirmation", mock.Anything, token, true).Return(&services.GenerationOutcome{
			Status: services.StatusGenerated, Competition: springCup, ReplacedCount: 2,
		}, nil)
		rec := serve(t, http.MethodPost, pattern, target, `{"confirm": true}`, NewFixtureHandler(fs).ResolveConfirmation)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.EqualValues(t, 2, decodeBody(t, rec)["replaced_count"])
	})

	t.Run("declined", func(t *testing.T) {
		fs := new(mockFixtureService)
		fs.On("ResolveConfirmation", mock.Anything, token, false).Return(nil, services.ErrRegenerationCancelled)
		rec := serve(t, http.MethodPost, pattern, target, `{"confirm": false}`, NewFixtureHandler(fs).ResolveConfirmation)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cancelled", decodeBody(t, rec)["status"])
	})

	t.Run("expired", func(t *testing.T) {
		fs := new(mockFixtureService)
		fs.On("ResolveConfirmation", mock.Anything, token, true).Return(nil, services.ErrConfirmationExpired)
		rec := serve(t, http.MethodPost, pattern, target, `{"confirm": true}`, NewFixtureHandler(fs).ResolveConfirmation)
		assert.Equal(t, http.StatusGone, rec.Code)
	})

	t.Run("already used", func(t *testing.T) {
		fs := new(mockFixtureService)
		fs.On("ResolveConfirmation", mock.Anything, token, true).Return(nil, services.ErrConfirmationNotFound)
		rec := serve(t, http.MethodPost, pattern, target, `{"confirm": true}`, NewFixtureHandler(fs).ResolveConfirmation)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing answer", func(t *testing.T) {
		fs := new(mockFixtureService)
		rec := serve(t, http.MethodPost, pattern, target, `{}`, NewFixtureHandler(fs).ResolveConfirmation)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fs.AssertNotCalled(t, "ResolveConfirmation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed token", func(t *testing.T) {
		fs := new(mockFixtureService)
		rec := serve(t, http.MethodPost, pattern, "/confirmations/not-a-token", `{"confirm": true}`, NewFixtureHandler(fs).ResolveConfirmation)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportResult(t *testing.T) {
	const pattern = "/competitions/{competitionID}/results"

	t.Run("recorded", func(t *testing.T) {
		rs := new(mockResultService)
		rs.On("ReportResult", mock.Anything, services.ReportResultInput{CompetitionID: 7, WinnerID: 1, LoserID: 2}).
			Return(&services.ReportOutcome{
				Competition: springCup,
				Match:       &models.MatchRecord{ID: 10, CompetitionID: 7, WinnerID: 1, LoserID: 2},
			}, nil)

		rec := serve(t, http.MethodPost, pattern, "/competitions/7/results", `{"winner_id":1,"loser_id":2}`,
			NewResultHandler(rs, new(mockQueryService)).ReportResult)

		assert.Equal(t, http.StatusCreated, rec.Code)
		rs.AssertExpectations(t)
	})

	t.Run("missing ids", func(t *testing.T) {
		rs := new(mockResultService)
		rec := serve(t, http.MethodPost, pattern, "/competitions/7/results", `{"winner_id":1}`,
			NewResultHandler(rs, new(mockQueryService)).ReportResult)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		errs, ok := decodeBody(t, rec)["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, errs, "loser_id")
		assert.NotContains(t, errs, "winner_id")
		rs.AssertNotCalled(t, "ReportResult", mock.Anything, mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := serve(t, http.MethodPost, pattern, "/competitions/7/results", `{"winner_id":1,"loser_id":2,"score":"3-1"}`,
			NewResultHandler(new(mockResultService), new(mockQueryService)).ReportResult)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("same player", func(t *testing.T) {
		rs := new(mockResultService)
		rs.On("ReportResult", mock.Anything, mock.Anything).Return(nil, services.ErrSameWinnerLoser)
		rec := serve(t, http.MethodPost, pattern, "/competitions/7/results", `{"winner_id":1,"loser_id":1}`,
			NewResultHandler(rs, new(mockQueryService)).ReportResult)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNextFixtureNone(t *testing.T) {
	qs := new(mockQueryService)
	qs.On("NextFixture", mock.Anything, int64(7), int64(1)).Return(nil, nil)

	rec := serve(t, http.MethodGet, "/competitions/{competitionID}/players/{playerID}/next", "/competitions/7/players/1/next", "",
		NewResultHandler(new(mockResultService), qs).NextFixture)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "fixture")
	assert.Nil(t, body["fixture"])
}

func TestHeadToHead(t *testing.T) {
	qs := new(mockQueryService)
	qs.On("HeadToHead", mock.Anything, int64(1), int64(2)).Return(&models.HeadToHead{PlayerA: 1, PlayerB: 2, WinsA: 3, WinsB: 1}, nil)

	rec := serve(t, http.MethodGet, "/players/{playerID}/h2h/{opponentID}", "/players/1/h2h/2", "",
		NewResultHandler(new(mockResultService), qs).HeadToHead)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 3, body["wins_a"])
	assert.EqualValues(t, 1, body["wins_b"])
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrTeamNotFound, http.StatusNotFound},
		{services.ErrTeamNameConflict, http.StatusConflict},
		{services.ErrHasHistory, http.StatusConflict},
		{services.ErrConfirmationExpired, http.StatusGone},
		{services.ErrInvalidChannelRole, http.StatusBadRequest},
		{services.ErrPlayerHasNoTeam, http.StatusBadRequest},
		{services.ErrInsufficientParticipants, http.StatusUnprocessableEntity},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
