package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/arpanm/appointment-assistant/internal/api/router"
	"github.com/arpanm/appointment-assistant/internal/auth"
	"github.com/arpanm/appointment-assistant/internal/chat"
	appconfig "github.com/arpanm/appointment-assistant/internal/config"
	"github.com/arpanm/appointment-assistant/internal/observability/metrics"
	"github.com/arpanm/appointment-assistant/internal/salesforce"
	"github.com/arpanm/appointment-assistant/pkg/logging"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting appointment-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}

	sfClient := setupSalesforce(cfg, logger)
	completion := chat.NewOpenAIClient(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, logger)
	store := chat.NewStore()

	registry := prometheus.NewRegistry()
	chatMetrics := metrics.NewChatMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	var records chat.RecordStore
	var crmAuth auth.CRMAuthenticator
	if sfClient != nil {
		records = chat.NewCRMAdapter(sfClient)
		crmAuth = sfClient
	}

	service := chat.NewService(store, completion, records, chatMetrics, logger)
	chatHandler := chat.NewHandler(service, store, logger)
	authHandler := auth.NewHandler(auth.Config{
		Username:    cfg.AuthUsername,
		Password:    cfg.AuthPassword,
		JWTSecret:   cfg.SessionJWTSecret,
		TTL:         cfg.SessionTTL,
		CRMUsername: cfg.SFUsername,
		CRMPassword: cfg.SFPassword,
	}, crmAuth, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		AuthHandler:        authHandler,
		ChatHandler:        chatHandler,
		MetricsHandler:     metricsHandler,
		SessionJWTSecret:   cfg.SessionJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// setupSalesforce builds the CRM client, or returns nil when the
// connected app is not configured so chat still works without booking.
func setupSalesforce(cfg *appconfig.Config, logger *logging.Logger) *salesforce.Client {
	if cfg.SFClientID == "" || cfg.SFClientSecret == "" {
		logger.Warn("salesforce not configured, appointment booking disabled")
		return nil
	}
	client, err := salesforce.New(salesforce.Config{
		LoginURL:     cfg.SFLoginURL,
		ClientID:     cfg.SFClientID,
		ClientSecret: cfg.SFClientSecret,
		APIVersion:   cfg.SFAPIVersion,
	})
	if err != nil {
		logger.Error("failed to build salesforce client", "error", err)
		os.Exit(1)
	}
	return client
}
