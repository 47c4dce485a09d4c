package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/services"
	"github.com/go-chi/chi/v5"
)

type CompetitionHandler struct {
	competitionService services.CompetitionService
	queryService       services.QueryService
}

func NewCompetitionHandler(cs services.CompetitionService, qs services.QueryService) *CompetitionHandler {
	return &CompetitionHandler{competitionService: cs, queryService: qs}
}

type participantInput struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// CreateCompetition godoc
// @Summary Создать соревнование
// @Tags competitions
// @Accept json
// @Produce json
// @Param body body services.CreateCompetitionInput true "name, kind (league|cup), affects_handicap"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /competitions [post]
func (h *CompetitionHandler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCompetitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comp, err := h.competitionService.CreateCompetition(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competition": comp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCompetitions godoc
// @Summary Список соревнований
// @Tags competitions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /competitions [get]
func (h *CompetitionHandler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	comps, err := h.competitionService.ListCompetitions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitions": comps}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCompetition godoc
// @Summary Соревнование с участниками, расписанием и последними результатами
// @Tags competitions
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Success 200 {object} services.CompetitionOverview
// @Failure 404 {object} map[string]string
// @Router /competitions/{competitionID} [get]
func (h *CompetitionHandler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overview, err := h.queryService.CompetitionOverview(r.Context(), compID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetChannel godoc
// @Summary Назначить канал для расписания или результатов
// @Tags competitions
// @Accept json
// @Param competitionID path int true "Competition ID"
// @Param role path string true "fixtures | results"
// @Param body body object true "{\"channel\": \"...\"} (пустая строка снимает канал)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /competitions/{competitionID}/channels/{role} [put]
func (h *CompetitionHandler) SetChannel(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Channel string `json:"channel"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comp, err := h.competitionService.SetChannel(r.Context(), compID, chi.URLParam(r, "role"), input.Channel)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"competition": comp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddParticipants godoc
// @Summary Записать участников
// @Description Лиги принимают команды, кубки принимают игроков. Ответ разделяет добавленных, уже записанных и ненайденных.
// @Tags competitions
// @Accept json
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Param body body object true "{\"participants\": [{\"type\": \"team\", \"id\": 1}]}"
// @Success 200 {object} services.EntryReport
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /competitions/{competitionID}/participants [post]
func (h *CompetitionHandler) AddParticipants(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Participants []participantInput `json:"participants"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Participants) == 0 {
		badRequestResponse(w, r, errors.New("participants must not be empty"))
		return
	}

	refs := make([]models.ParticipantRef, 0, len(input.Participants))
	fieldErrors := map[string]string{}
	for _, p := range input.Participants {
		ref, err := models.NewParticipantRef(p.Type, p.ID)
		if err != nil {
			fieldErrors[fmt.Sprintf("%s:%d", p.Type, p.ID)] = err.Error()
			continue
		}
		refs = append(refs, ref)
	}
	if len(fieldErrors) > 0 {
		failedValidationResponse(w, r, fieldErrors)
		return
	}

	report, err := h.competitionService.AddParticipants(r.Context(), compID, refs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, report, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitionHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participants, err := h.competitionService.ListParticipants(r.Context(), compID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveParticipant godoc
// @Summary Снять участника с соревнования
// @Tags competitions
// @Param competitionID path int true "Competition ID"
// @Param participantType path string true "team | player"
// @Param participantID path int true "Participant ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /competitions/{competitionID}/participants/{participantType}/{participantID} [delete]
func (h *CompetitionHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	ref, err := models.NewParticipantRef(chi.URLParam(r, "participantType"), participantID)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.competitionService.RemoveParticipant(r.Context(), compID, ref); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCompetition godoc
// @Summary Удалить соревнование
// @Description Соревнование с записанными результатами удалить нельзя (409).
// @Tags competitions
// @Param competitionID path int true "Competition ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /competitions/{competitionID} [delete]
func (h *CompetitionHandler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	compID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.competitionService.DeleteCompetition(r.Context(), compID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
