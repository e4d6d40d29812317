package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/maxbiz-creator/audiocraft-studio/internal/metrics"
	"github.com/maxbiz-creator/audiocraft-studio/internal/services"
)

// maxWebhookBytes bounds provider callback payloads.
const maxWebhookBytes = int64(65536)

type PaymentHandler struct {
	checkout *services.CheckoutService
}

func NewPaymentHandler(checkout *services.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

type createCheckoutRequest struct {
	Plan string `json:"plan"`
}

// CreateCheckout fabricates a checkout session. The body is decoded
// leniently; an unreadable body just means no plan was named.
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var body createCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body.Plan = ""
	}

	session := h.checkout.CreateCheckout(r.Context(), body.Plan)

	metrics.CheckoutSessionsTotal.Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"checkoutUrl": session.CheckoutURL,
		"sessionId":   session.SessionID,
	})
}

func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook body", "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "failed to read request body")
		return
	}

	err = h.checkout.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if err == services.ErrWebhookSignature {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"received": true})
}
