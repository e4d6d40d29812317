package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionNone   SubscriptionStatus = "none"
	SubscriptionActive SubscriptionStatus = "active"
)

// DefaultFreeTracks is the trial balance granted to every new account.
const DefaultFreeTracks = 3

type Account struct {
	ID             uuid.UUID          `json:"id"`
	Email          string             `json:"email"`
	PasswordHash   string             `json:"-"`
	FreeTracksLeft int                `json:"freeTracksLeft"`
	Subscription   SubscriptionStatus `json:"subscription"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// PublicAccount is the account shape returned alongside tokens.
type PublicAccount struct {
	ID             uuid.UUID          `json:"id"`
	Email          string             `json:"email"`
	FreeTracksLeft int                `json:"freeTracksLeft"`
	Subscription   SubscriptionStatus `json:"subscription"`
}

// ProfileAccount additionally exposes the account creation time.
type ProfileAccount struct {
	PublicAccount
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:             a.ID,
		Email:          a.Email,
		FreeTracksLeft: a.FreeTracksLeft,
		Subscription:   a.Subscription,
	}
}

func (a *Account) Profile() ProfileAccount {
	return ProfileAccount{
		PublicAccount: a.Public(),
		CreatedAt:     a.CreatedAt,
	}
}
