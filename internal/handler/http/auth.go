package http

import (
	"encoding/json"
	"net/http"

	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/utils"
	"github.com/finpay/gateway/models"
)

type registerRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, r, errValidation("request body is not valid JSON"))
		return
	}

	registered, err := h.services.AuthService.Register(ctx, models.User{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
	}, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIResponse[models.User]{
		Status:  "success",
		Message: "user registered",
		Data:    registered,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, r, errValidation("request body is not valid JSON"))
		return
	}

	pair, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIResponse[models.TokenPair]{
		Status:  "success",
		Message: "logged in",
		Data:    pair,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		respondError(w, r, errValidation("request body is not valid JSON"))
		return
	}

	pair, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIResponse[models.TokenPair]{
		Status:  "success",
		Message: "tokens refreshed",
		Data:    pair,
	}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, errUnauthorized("no authenticated user in request"))
		return
	}

	user, err := h.services.AuthService.Me(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIResponse[models.User]{
		Status:  "success",
		Message: "profile",
		Data:    user,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, errUnauthorized("no authenticated user in request"))
		return
	}

	if err := h.services.AuthService.Logout(ctx, userID); err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIResponse[struct{}]{
		Status:  "success",
		Message: "logged out",
	}, http.StatusOK)
}
