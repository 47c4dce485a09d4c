package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/league-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fs services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fs}
}

// GenerateFixtures godoc
// @Summary Сгенерировать расписание
// @Description Если расписания нет, оно создаётся сразу (201). Если есть, ничего не меняется и возвращается токен подтверждения (202).
// @Tags fixtures
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Success 201 {object} services.GenerationOutcome
// @Success 202 {object} services.GenerationOutcome
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string "Меньше двух участников"
// @Security BearerAuth
// @Router /competitions/{competitionID}/fixtures [post]
func (h *FixtureHandler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.fixtureService.GenerateFixtures(r.Context(), compID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusCreated
	var headers http.Header
	if outcome.Status == services.StatusConfirmationRequired {
		status = http.StatusAccepted
		headers = http.Header{"Location": []string{"/confirmations/" + outcome.Pending.Token.String()}}
	}
	if err := writeJSON(w, status, outcome, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResolveConfirmation godoc
// @Summary Подтвердить или отменить перегенерацию
// @Tags fixtures
// @Accept json
// @Produce json
// @Param token path string true "Confirmation token"
// @Param body body object true "{\"confirm\": true}"
// @Success 201 {object} services.GenerationOutcome
// @Success 200 {object} map[string]interface{} "Отменено"
// @Failure 404 {object} map[string]string "Токен не найден или уже использован"
// @Failure 410 {object} map[string]string "Время подтверждения истекло"
// @Security BearerAuth
// @Router /confirmations/{token} [post]
func (h *FixtureHandler) ResolveConfirmation(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid confirmation token: %w", err))
		return
	}
	var input struct {
		Confirm *bool `json:"confirm"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Confirm == nil {
		failedValidationResponse(w, r, map[string]string{"confirm": "must be true or false"})
		return
	}

	outcome, err := h.fixtureService.ResolveConfirmation(r.Context(), token, *input.Confirm)
	if err != nil {
		if errors.Is(err, services.ErrRegenerationCancelled) {
			if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "cancelled"}, nil); err != nil {
				serverErrorResponse(w, r, err)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, outcome, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListFixtures godoc
// @Summary Расписание соревнования
// @Tags fixtures
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /competitions/{competitionID}/fixtures [get]
func (h *FixtureHandler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	fixtures, err := h.fixtureService.ListFixtures(r.Context(), compID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CompleteFixture godoc
// @Summary Отметить матч расписания сыгранным
// @Description Нужен для матчей лиги: результаты игроков не закрывают командные матчи.
// @Tags fixtures
// @Produce json
// @Param fixtureID path int true "Fixture ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /fixtures/{fixtureID}/complete [post]
func (h *FixtureHandler) CompleteFixture(w http.ResponseWriter, r *http.Request) {
	fixtureID, err := getIDFromURL(r, "fixtureID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	fixture, err := h.fixtureService.CompleteFixture(r.Context(), fixtureID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixture": fixture}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
