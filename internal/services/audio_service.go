package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/maxbiz-creator/audiocraft-studio/internal/models"
)

type EnhanceResult struct {
	FileID           uuid.UUID
	CreditsRemaining int
}

// AudioService simulates the enhancement pipeline. Uploads are accepted,
// charged against the account and then discarded; no audio is transformed.
type AudioService struct {
	entitlements *EntitlementService
}

func NewAudioService(entitlements *EntitlementService) *AudioService {
	return &AudioService{entitlements: entitlements}
}

// Enhance charges the account and returns the handle of the would-be
// enhanced track. The uploaded file at uploadPath is always removed before
// returning, on success and failure alike.
func (s *AudioService) Enhance(ctx context.Context, account *models.Account, uploadPath string, rawSettings string) (*EnhanceResult, error) {
	defer func() {
		if err := os.Remove(uploadPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove upload", "path", uploadPath, "error", err)
		}
	}()

	// Settings are advisory. Anything unparseable is treated as none.
	settings := map[string]interface{}{}
	if rawSettings != "" {
		if err := json.Unmarshal([]byte(rawSettings), &settings); err != nil {
			settings = map[string]interface{}{}
		}
	}

	remaining, err := s.entitlements.AuthorizeAndCharge(ctx, account)
	if err != nil {
		return nil, err
	}

	fileID := uuid.New()
	slog.Info("track enhanced",
		"accountId", account.ID,
		"fileId", fileID,
		"settings", len(settings),
		"creditsRemaining", remaining,
	)

	return &EnhanceResult{
		FileID:           fileID,
		CreditsRemaining: remaining,
	}, nil
}
