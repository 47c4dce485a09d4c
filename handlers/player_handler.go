package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/league-system/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// RegisterPlayer godoc
// @Summary Зарегистрировать игрока
// @Description Игрок с неизвестной командой регистрируется без команды, в ответе team_not_found=true.
// @Tags players
// @Accept json
// @Produce json
// @Param body body services.RegisterPlayerInput true "id, name, handicap, team_name"
// @Success 201 {object} services.RegisterPlayerResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Игрок уже зарегистрирован"
// @Security BearerAuth
// @Router /players [post]
func (h *PlayerHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.playerService.RegisterPlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayerStatus godoc
// @Summary Гандикап и серии игрока
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} services.PlayerStatus
// @Failure 404 {object} map[string]string
// @Router /players/{playerID}/status [get]
func (h *PlayerHandler) GetPlayerStatus(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	status, err := h.playerService.GetPlayerStatus(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.RenamePlayer(r.Context(), playerID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AssignTeam godoc
// @Summary Назначить игроков в команду
// @Tags players
// @Accept json
// @Produce json
// @Param body body object true "{\"team_name\": \"...\", \"player_ids\": [1,2]}"
// @Success 200 {object} services.AssignTeamReport
// @Failure 404 {object} map[string]string "Команда не найдена"
// @Security BearerAuth
// @Router /players/assign [post]
func (h *PlayerHandler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamName  string  `json:"team_name"`
		PlayerIDs []int64 `json:"player_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.PlayerIDs) == 0 {
		badRequestResponse(w, r, errors.New("player_ids must not be empty"))
		return
	}

	report, err := h.playerService.AssignTeam(r.Context(), input.TeamName, input.PlayerIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, report, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayer godoc
// @Summary Удалить игрока
// @Description Игрока с историей матчей удалить нельзя (409).
// @Tags players
// @Param playerID path int true "Player ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /players/{playerID} [delete]
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.playerService.DeletePlayer(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
