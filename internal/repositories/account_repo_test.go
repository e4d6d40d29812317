package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/maxbiz-creator/audiocraft-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAccountRepository_Create tests account creation and the unique email index
func TestAccountRepository_Create(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	// ACT: Create an account
	account := &models.Account{
		Email:          "artist@example.com",
		PasswordHash:   "hashed",
		FreeTracksLeft: models.DefaultFreeTracks,
		Subscription:   models.SubscriptionNone,
	}
	err := repo.Create(ctx, account)

	// ASSERT: Should succeed and assign identity fields
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID, "ID should be assigned")
	assert.False(t, account.CreatedAt.IsZero(), "CreatedAt should be assigned")

	// Verify lookup by both keys
	byID, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "artist@example.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "artist@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	// ACT: Create a second account with the same email
	dup := &models.Account{Email: "artist@example.com", PasswordHash: "other"}
	err = repo.Create(ctx, dup)

	// ASSERT: Should be rejected
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

// TestAccountRepository_EmailIsCaseSensitive tests that lookups match the stored email exactly
func TestAccountRepository_EmailIsCaseSensitive(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{Email: "Artist@Example.com", PasswordHash: "hashed"}
	require.NoError(t, repo.Create(ctx, account))

	_, err := repo.GetByEmail(ctx, "artist@example.com")
	assert.ErrorIs(t, err, ErrNotFound, "lookup should not fold case")

	found, err := repo.GetByEmail(ctx, "Artist@Example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
}

// TestAccountRepository_GetNotFound tests lookups for unknown keys
func TestAccountRepository_GetNotFound(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestAccountRepository_ReadsReturnCopies tests that callers cannot mutate stored state
func TestAccountRepository_ReadsReturnCopies(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{Email: "artist@example.com", FreeTracksLeft: 3}
	require.NoError(t, repo.Create(ctx, account))

	// ACT: Mutate a returned copy
	copy1, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	copy1.FreeTracksLeft = 999

	// ASSERT: Stored account is unchanged
	copy2, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, copy2.FreeTracksLeft)
}

// TestAccountRepository_Update tests full replacement and email re-indexing
func TestAccountRepository_Update(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{Email: "artist@example.com", Subscription: models.SubscriptionNone}
	require.NoError(t, repo.Create(ctx, account))

	// ACT: Flip subscription and change email
	account.Subscription = models.SubscriptionActive
	account.Email = "renamed@example.com"
	err := repo.Update(ctx, account)

	// ASSERT: Should succeed and re-index
	require.NoError(t, err)

	updated, err := repo.GetByEmail(ctx, "renamed@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, updated.Subscription)

	_, err = repo.GetByEmail(ctx, "artist@example.com")
	assert.ErrorIs(t, err, ErrNotFound, "old email should be unindexed")

	// Updating an unknown account fails
	ghost := &models.Account{ID: uuid.New(), Email: "ghost@example.com"}
	err = repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestAccountRepository_ActivateSubscription tests the narrow subscription flip
func TestAccountRepository_ActivateSubscription(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{
		Email:          "artist@example.com",
		FreeTracksLeft: 2,
		Subscription:   models.SubscriptionNone,
	}
	require.NoError(t, repo.Create(ctx, account))

	// ACT: Activate
	err := repo.ActivateSubscription(ctx, account.ID)

	// ASSERT: Only the subscription changed
	require.NoError(t, err)
	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, stored.Subscription)
	assert.Equal(t, 2, stored.FreeTracksLeft)

	assert.ErrorIs(t, repo.ActivateSubscription(ctx, uuid.New()), ErrNotFound)
}

// TestAccountRepository_DebitTrialCredit tests the conditional decrement
func TestAccountRepository_DebitTrialCredit(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{Email: "artist@example.com", FreeTracksLeft: models.DefaultFreeTracks}
	require.NoError(t, repo.Create(ctx, account))

	// ACT: Drain the trial balance
	for _, want := range []int{2, 1, 0} {
		remaining, err := repo.DebitTrialCredit(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, want, remaining)
	}

	// ASSERT: Further debits fail without mutating the balance
	_, err := repo.DebitTrialCredit(ctx, account.ID)
	assert.ErrorIs(t, err, ErrNoCredits)

	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FreeTracksLeft, "balance should never go negative")

	_, err = repo.DebitTrialCredit(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestAccountRepository_DebitTrialCredit_Concurrent tests that concurrent debits
// never overdraw the balance
func TestAccountRepository_DebitTrialCredit_Concurrent(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{Email: "artist@example.com", FreeTracksLeft: models.DefaultFreeTracks}
	require.NoError(t, repo.Create(ctx, account))

	// ACT: 20 goroutines race for 3 credits
	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	denied := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.DebitTrialCredit(ctx, account.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				granted++
			} else {
				denied++
			}
		}()
	}
	wg.Wait()

	// ASSERT: Exactly the trial balance was granted
	assert.Equal(t, models.DefaultFreeTracks, granted, "grants should match the starting balance")
	assert.Equal(t, workers-models.DefaultFreeTracks, denied)

	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FreeTracksLeft)
}
