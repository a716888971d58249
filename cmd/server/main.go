package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentwood/voice-engine/internal/catalog"
	"github.com/agentwood/voice-engine/internal/config"
	"github.com/agentwood/voice-engine/internal/httpapi"
	"github.com/agentwood/voice-engine/internal/match"
	"github.com/agentwood/voice-engine/internal/observability"
	"github.com/agentwood/voice-engine/internal/pipeline"
	"github.com/agentwood/voice-engine/internal/store"
	"github.com/agentwood/voice-engine/internal/synth"
)

const (
	serviceName    = "voice-engine"
	serviceVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Voice Engine Service starting")

	cat := catalog.Default()
	matcher := match.NewMatcher(cat, logger)

	refs := synth.NewReferenceLoader(
		cfg.ReferenceAudioDir,
		cfg.ReferenceFetchBase,
		cfg.ReferenceSampleRate,
		nil,
		logger,
	)

	clients := map[string]*synth.Client{}
	families := map[string][]string{
		"pocketsynth": cfg.PocketSynthServers(),
		"openvoice":   cfg.OpenVoiceServers(),
	}
	for family, servers := range families {
		if len(servers) == 0 {
			continue
		}
		client, err := synth.NewClient(synth.ClientConfig{
			Family:          family,
			Servers:         servers,
			Timeout:         cfg.Timeout(),
			RetryAttempts:   cfg.RetryMaxAttempts,
			RetryBackoff:    cfg.BackoffBase(),
			BreakerCooldown: cfg.BreakerCooldown(),
			ReferenceLoader: refs,
		}, logger)
		if err != nil {
			logger.Fatal().Str("family", family).Err(err).Msg("Failed to create synthesis client")
		}
		clients[family] = client
		logger.Info().Str("family", family).Int("servers", len(servers)).Msg("Synthesis backend configured")
	}
	if len(clients) == 0 {
		logger.Fatal().Msg("No synthesis backends configured")
	}

	contributions, err := store.NewSQLiteStore(cfg.StorePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open contribution store")
	}
	defer contributions.Close()

	pipe := pipeline.New(pipeline.Config{
		MaxUploadBytes: cfg.MaxUploadBytes,
		MinClipLength:  cfg.MinClipLength(),
		Store:          contributions,
	}, logger)

	api := httpapi.NewServer(httpapi.Config{
		Catalog:  cat,
		Matcher:  matcher,
		Clients:  clients,
		Default:  defaultFamily(clients),
		Pipeline: pipe,
		MaxBody:  cfg.MaxUploadBytes,
	}, logger)

	// Create HTTP server
	mux := http.NewServeMux()
	api.Register(mux)

	// Health check endpoint
	mux.HandleFunc("/health", observability.HealthCheckHandler(serviceName, serviceVersion))

	// Readiness endpoint probes each backend family's /health
	checks := map[string]observability.HealthCheckFunc{}
	for family, client := range clients {
		client := client
		checks[family] = func(ctx context.Context) (bool, error) {
			h, err := client.Health(ctx)
			if err != nil {
				return false, err
			}
			return h.Ready, nil
		}
	}
	mux.HandleFunc("/ready", observability.ReadinessHandler(serviceName, serviceVersion, checks))

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

// defaultFamily prefers the cloning-capable backend when both are up.
func defaultFamily(clients map[string]*synth.Client) string {
	if _, ok := clients["openvoice"]; ok {
		return "openvoice"
	}
	for family := range clients {
		return family
	}
	return ""
}
