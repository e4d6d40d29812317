package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maxbiz-creator/audiocraft-studio/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNoCredits      = errors.New("no trial credits remaining")
)

// MemoryAccountRepository keeps accounts in process memory. All state lives
// behind a single RWMutex; reads hand out copies so callers never touch the
// shared structs outside the lock.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]models.Account
	byEmail  map[string]uuid.UUID
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[uuid.UUID]models.Account),
		byEmail:  make(map[string]uuid.UUID),
	}
}

func (r *MemoryAccountRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return ErrDuplicateEmail
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	r.accounts[account.ID] = *account
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *MemoryAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (r *MemoryAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	account := r.accounts[id]
	return &account, nil
}

func (r *MemoryAccountRepository) Update(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[account.ID]
	if !ok {
		return ErrNotFound
	}

	if current.Email != account.Email {
		if owner, exists := r.byEmail[account.Email]; exists && owner != account.ID {
			return ErrDuplicateEmail
		}
		delete(r.byEmail, current.Email)
		r.byEmail[account.Email] = account.ID
	}

	r.accounts[account.ID] = *account
	return nil
}

func (r *MemoryAccountRepository) ActivateSubscription(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}

	account.Subscription = models.SubscriptionActive
	r.accounts[id] = account
	return nil
}

func (r *MemoryAccountRepository) DebitTrialCredit(ctx context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return 0, ErrNotFound
	}
	if account.FreeTracksLeft <= 0 {
		return 0, ErrNoCredits
	}

	account.FreeTracksLeft--
	r.accounts[id] = account
	return account.FreeTracksLeft, nil
}
