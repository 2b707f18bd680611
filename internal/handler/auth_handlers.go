package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/service"
)

// Register godoc
// @Summary Create a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account to create"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, dto.NewErrorResponse("INVALID_JSON", "request body must be valid JSON"))
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.AuthResponse{
		User:  dto.ToUserResponse(result.User),
		Token: result.Token,
	})
}

// Login godoc
// @Summary Exchange credentials for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, dto.NewErrorResponse("INVALID_JSON", "request body must be valid JSON"))
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.AuthResponse{
		User:  dto.ToUserResponse(result.User),
		Token: result.Token,
	})
}
