package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxbiz-creator/audiocraft-studio/internal/models"
	"github.com/maxbiz-creator/audiocraft-studio/internal/repositories"
)

var ErrCreditsExhausted = errors.New("no free tracks remaining")

// EntitlementService decides whether an account may process a track and
// charges the trial balance when it applies. Subscribers are unmetered.
type EntitlementService struct {
	accountRepo repositories.AccountRepository
}

func NewEntitlementService(accountRepo repositories.AccountRepository) *EntitlementService {
	return &EntitlementService{accountRepo: accountRepo}
}

// AuthorizeAndCharge returns the credits remaining after this request.
// Active subscribers keep their balance untouched. Trial accounts pay one
// credit; when the balance is already zero nothing is charged and
// ErrCreditsExhausted is returned.
func (s *EntitlementService) AuthorizeAndCharge(ctx context.Context, account *models.Account) (int, error) {
	if account.Subscription == models.SubscriptionActive {
		return account.FreeTracksLeft, nil
	}

	remaining, err := s.accountRepo.DebitTrialCredit(ctx, account.ID)
	if err == repositories.ErrNoCredits {
		return 0, ErrCreditsExhausted
	}
	if err == repositories.ErrNotFound {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to debit trial credit: %w", err)
	}

	return remaining, nil
}
