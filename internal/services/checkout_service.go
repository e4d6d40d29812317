package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/maxbiz-creator/audiocraft-studio/internal/repositories"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

var ErrWebhookSignature = errors.New("webhook signature verification failed")

type CheckoutSession struct {
	SessionID   string
	CheckoutURL string
}

// CheckoutService fabricates checkout sessions instead of calling the
// payment provider. Webhook delivery is acknowledged blindly unless a
// signing secret is configured, in which case events are verified and
// completed checkouts activate the referenced account's subscription.
type CheckoutService struct {
	accountRepo   repositories.AccountRepository
	webhookSecret string
}

func NewCheckoutService(accountRepo repositories.AccountRepository, webhookSecret string) *CheckoutService {
	return &CheckoutService{
		accountRepo:   accountRepo,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckout never fails; every call yields a fresh session ID and a
// checkout URL carrying the requested plan.
func (s *CheckoutService) CreateCheckout(ctx context.Context, plan string) *CheckoutSession {
	sessionID := "cs_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	return &CheckoutSession{
		SessionID:   sessionID,
		CheckoutURL: fmt.Sprintf("https://checkout.stripe.com/pay/%s?plan=%s", sessionID, url.QueryEscape(plan)),
	}
}

// HandleWebhook acknowledges provider callbacks. Without a configured
// secret the payload is not trusted and nothing is mutated.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.webhookSecret == "" {
		var event stripe.Event
		if err := json.Unmarshal(payload, &event); err == nil && event.Type != "" {
			slog.Info("webhook received unverified", "event_type", event.Type)
		}
		return nil
	}

	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		slog.Error("failed to verify webhook signature", "error", err)
		return ErrWebhookSignature
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			slog.Warn("failed to decode checkout session", "error", err)
			return nil
		}
		return s.activateSubscription(ctx, session.ClientReferenceID)

	default:
		slog.Info("webhook event ignored", "event_type", event.Type)
	}

	return nil
}

func (s *CheckoutService) activateSubscription(ctx context.Context, clientReference string) error {
	accountID, err := uuid.Parse(clientReference)
	if err != nil {
		slog.Warn("checkout completed without a usable account reference", "reference", clientReference)
		return nil
	}

	err = s.accountRepo.ActivateSubscription(ctx, accountID)
	if err == repositories.ErrNotFound {
		slog.Warn("checkout completed for unknown account", "accountId", accountID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	slog.Info("subscription activated", "accountId", accountID)
	return nil
}
