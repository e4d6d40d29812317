package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/maxbiz-creator/audiocraft-studio/internal/metrics"
	"github.com/maxbiz-creator/audiocraft-studio/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if body.Email == "" || body.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, token, err := h.auth.Register(r.Context(), body.Email, body.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.SignupsTotal.Inc()
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    account.Public(),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if body.Email == "" || body.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, token, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    account.Public(),
	})
}

// Verify reports the account behind a bearer token. Auth middleware has
// already resolved it by the time this runs.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    account.Public(),
	})
}
