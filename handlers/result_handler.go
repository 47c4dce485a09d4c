package handlers

import (
	"net/http"

	"github.com/Dosada05/league-system/services"
)

type ResultHandler struct {
	resultService services.ResultService
	queryService  services.QueryService
}

func NewResultHandler(rs services.ResultService, qs services.QueryService) *ResultHandler {
	return &ResultHandler{resultService: rs, queryService: qs}
}

// ReportResult godoc
// @Summary Сообщить результат
// @Description Закрывает открытый матч расписания между игроками (если есть), обновляет гандикапы и пишет историю.
// @Tags results
// @Accept json
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Param body body object true "{\"winner_id\": 1, \"loser_id\": 2}"
// @Success 201 {object} services.ReportOutcome
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /competitions/{competitionID}/results [post]
func (h *ResultHandler) ReportResult(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		WinnerID int64 `json:"winner_id"`
		LoserID  int64 `json:"loser_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	fieldErrors := map[string]string{}
	if input.WinnerID <= 0 {
		fieldErrors["winner_id"] = "must be a positive player id"
	}
	if input.LoserID <= 0 {
		fieldErrors["loser_id"] = "must be a positive player id"
	}
	if len(fieldErrors) > 0 {
		failedValidationResponse(w, r, fieldErrors)
		return
	}

	outcome, err := h.resultService.ReportResult(r.Context(), services.ReportResultInput{
		CompetitionID: compID,
		WinnerID:      input.WinnerID,
		LoserID:       input.LoserID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, outcome, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// NextFixture godoc
// @Summary Следующий матч игрока
// @Description Для лиги ищется матч команды игрока. fixture=null, если матчей не осталось.
// @Tags results
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Игрок без команды"
// @Router /competitions/{competitionID}/players/{playerID}/next [get]
func (h *ResultHandler) NextFixture(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	fixture, err := h.queryService.NextFixture(r.Context(), compID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixture": fixture}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// HeadToHead godoc
// @Summary Личные встречи двух игроков
// @Tags results
// @Produce json
// @Param playerID path int true "Player A"
// @Param opponentID path int true "Player B"
// @Success 200 {object} models.HeadToHead
// @Router /players/{playerID}/h2h/{opponentID} [get]
func (h *ResultHandler) HeadToHead(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	opponentID, err := getIDFromURL(r, "opponentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	h2h, err := h.queryService.HeadToHead(r.Context(), playerID, opponentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, h2h, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
