package handlers

import (
	"net/http"
	"time"
)

type UserHandler struct {
	environment string
}

func NewUserHandler(environment string) *UserHandler {
	return &UserHandler{environment: environment}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	respondWithJSON(w, http.StatusOK, account.Profile())
}

func (h *UserHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}
