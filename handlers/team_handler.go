package handlers

import (
	"net/http"

	"github.com/Dosada05/league-system/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// CreateTeam godoc
// @Summary Создать команду
// @Tags teams
// @Accept json
// @Produce json
// @Param body body object true "{\"name\": \"...\"}"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Имя уже занято"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTeamByID godoc
// @Summary Получить команду с игроками
// @Tags teams
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTeam godoc
// @Summary Удалить команду
// @Description Команда снимается со всех соревнований, игроки остаются без команды. Расписания не меняются.
// @Tags teams
// @Param teamID path int true "Team ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /teams/{teamID} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
