package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/league-system/middleware"
	"github.com/Dosada05/league-system/services"
	"github.com/itbasis/go-clock"
)

const adminTokenTTL = 12 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	clock       clock.Clock
}

func NewAuthHandler(authService services.AuthService, jwtSecret string, clk clock.Clock) *AuthHandler {
	if clk == nil {
		clk = clock.New()
	}
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		clock:       clk,
	}
}

// AdminLogin godoc
// @Summary Получить токен администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object true "{\"password\": \"...\"}"
// @Success 200 {object} map[string]interface{} "token"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	if err := h.authService.AuthenticateAdmin(r.Context(), input.Password); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	now := h.clock.Now()
	token, err := middleware.IssueAdminToken(h.jwtSecret, now, adminTokenTTL)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"expires_at": now.Add(adminTokenTTL).UTC(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
