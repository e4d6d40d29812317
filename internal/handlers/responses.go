package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/maxbiz-creator/audiocraft-studio/internal/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// respondServiceError translates service sentinels into their HTTP statuses.
// Anything unrecognized is reported as a generic 500 so internals never leak.
func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case services.ErrEmailExists:
		respondWithError(w, http.StatusBadRequest, err.Error())
	case services.ErrInvalidCredentials:
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case services.ErrInvalidToken:
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case services.ErrAccountNotFound:
		respondWithError(w, http.StatusNotFound, err.Error())
	case services.ErrCreditsExhausted:
		respondWithError(w, http.StatusForbidden, err.Error())
	default:
		slog.Error("request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
