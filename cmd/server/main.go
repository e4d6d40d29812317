package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/maxbiz-creator/audiocraft-studio/internal/config"
	"github.com/maxbiz-creator/audiocraft-studio/internal/handlers"
	"github.com/maxbiz-creator/audiocraft-studio/internal/repositories"
	"github.com/maxbiz-creator/audiocraft-studio/internal/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize storage. Accounts live in process memory and are lost on
	// restart.
	accountRepo := repositories.NewMemoryAccountRepository()

	// Initialize services
	authService := services.NewAuthService(accountRepo, cfg.JWTSecret, cfg.JWTExpiry)
	entitlementService := services.NewEntitlementService(accountRepo)
	audioService := services.NewAudioService(entitlementService)
	checkoutService := services.NewCheckoutService(accountRepo, cfg.StripeWebhookSecret)

	router := handlers.NewRouter(cfg, authService, audioService, checkoutService)

	// Start Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	slog.Info("starting server", "port", cfg.ServerPort, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
