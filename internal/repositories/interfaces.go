package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/maxbiz-creator/audiocraft-studio/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	// DebitTrialCredit decrements the free-track balance by one and returns
	// the remaining balance. The check and the write happen under a single
	// lock so the balance can never go below zero.
	DebitTrialCredit(ctx context.Context, id uuid.UUID) (int, error)
	// ActivateSubscription flips the subscription to active without touching
	// the rest of the record, so it cannot clobber a concurrent debit.
	ActivateSubscription(ctx context.Context, id uuid.UUID) error
}
