package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxbiz-creator/audiocraft-studio/internal/config"
	"github.com/maxbiz-creator/audiocraft-studio/internal/metrics"
	"github.com/maxbiz-creator/audiocraft-studio/internal/services"
)

// NewRouter assembles the full HTTP surface of the service.
func NewRouter(cfg *config.Config, auth *services.AuthService, audio *services.AudioService, checkout *services.CheckoutService) *chi.Mux {
	authHandler := NewAuthHandler(auth)
	audioHandler := NewAudioHandler(audio, cfg.UploadDir)
	paymentHandler := NewPaymentHandler(checkout)
	userHandler := NewUserHandler(cfg.Environment)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.With(RequireAuth(auth)).Get("/verify", authHandler.Verify)
		})

		r.Route("/audio", func(r chi.Router) {
			r.Use(RequireAuth(auth))
			r.Post("/enhance", audioHandler.Enhance)
		})

		// Checkout and webhook are deliberately unauthenticated; the webhook
		// caller is the payment provider, not a user.
		r.Route("/payments", func(r chi.Router) {
			r.Post("/create-checkout", paymentHandler.CreateCheckout)
			r.Post("/webhook", paymentHandler.Webhook)
		})

		r.With(RequireAuth(auth)).Get("/users/profile", userHandler.Profile)
		r.Get("/health", userHandler.Health)
	})

	router.Handle("/metrics", promhttp.Handler())

	return router
}
