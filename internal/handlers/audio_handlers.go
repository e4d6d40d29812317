package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/maxbiz-creator/audiocraft-studio/internal/metrics"
	"github.com/maxbiz-creator/audiocraft-studio/internal/services"
)

// maxUploadBytes caps how much of a multipart body is held in memory.
const maxUploadBytes = 32 << 20

type AudioHandler struct {
	audio     *services.AudioService
	uploadDir string
}

func NewAudioHandler(audio *services.AudioService, uploadDir string) *AudioHandler {
	return &AudioHandler{
		audio:     audio,
		uploadDir: uploadDir,
	}
}

// Enhance accepts a multipart upload with an "audio" file part and an
// optional "settings" JSON string part.
func (h *AudioHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("failed to parse multipart form", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		slog.Error("missing audio upload", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer file.Close()

	uploadPath, err := h.spoolUpload(file, header.Filename)
	if err != nil {
		slog.Error("failed to spool upload", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	result, err := h.audio.Enhance(r.Context(), account, uploadPath, r.FormValue("settings"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.TracksProcessedTotal.Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"fileId":           result.FileID,
		"message":          "Audio enhanced successfully",
		"creditsRemaining": result.CreditsRemaining,
	})
}

// spoolUpload writes the uploaded part to a temp file the audio service
// takes ownership of.
func (h *AudioHandler) spoolUpload(file multipart.File, filename string) (string, error) {
	tmp, err := os.CreateTemp(h.uploadDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return tmp.Name(), nil
}
