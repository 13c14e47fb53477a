// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shopwise-ai/assistant-core/internal/backend"
	"github.com/shopwise-ai/assistant-core/internal/config"
	"github.com/shopwise-ai/assistant-core/internal/handler"
	"github.com/shopwise-ai/assistant-core/internal/llm"
	"github.com/shopwise-ai/assistant-core/internal/middleware"
	natsclient "github.com/shopwise-ai/assistant-core/internal/nats"
	"github.com/shopwise-ai/assistant-core/internal/service"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
	"github.com/shopwise-ai/assistant-core/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting shopping assistant API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "shopwise-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS when configured; the activity feed is advisory and
	// the assistant runs without it.
	var nats *natsclient.Client
	var events service.ActivityPublisher
	if cfg.NATSURL != "" {
		nats, err = natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("failed to connect to NATS, activity feed disabled", zap.Error(err))
		} else {
			defer nats.Close()
			streamManager := natsclient.NewStreamManager(nats)
			if err := streamManager.EnsureStream(ctx); err != nil {
				log.Warn("failed to ensure activity stream, activity feed disabled", zap.Error(err))
			} else {
				events = streamManager
			}
		}
	}

	// Initialize LLM client
	var llmClient llm.Client
	switch {
	case cfg.DefaultLLM == string(llm.ProviderOpenAI) && cfg.OpenAIAPIKey != "":
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	case cfg.AnthropicAPIKey != "":
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	case cfg.OpenAIAPIKey != "":
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	default:
		log.Error("no LLM API key configured, set ANTHROPIC_API_KEY or OPENAI_API_KEY")
		os.Exit(1)
	}
	if err != nil {
		log.Error("failed to create LLM client", zap.Error(err))
		os.Exit(1)
	}

	// Initialize the backend facade and services
	aiBackend := backend.New(llmClient, cfg.ChatHistoryWindow, cfg.LLMTimeout)
	recommendationSvc := service.NewRecommendationService(aiBackend, log)
	chatSvc := service.NewChatService(aiBackend, log)
	sessions := service.NewSessionStore(recommendationSvc, chatSvc, events, cfg.NotificationTTL, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(nats)
	sessionHandler := handler.NewSessionHandler(sessions, log)
	queryHandler := handler.NewQueryHandler(sessions, cfg.Suggestions, log)
	chatHandler := handler.NewChatHandler(sessions, log)
	cartHandler := handler.NewCartHandler(sessions, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Get("/suggestions", queryHandler.Suggestions)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)

				r.Post("/query", queryHandler.Submit)
				r.Post("/suggestion", queryHandler.SubmitSuggestion)
				r.Post("/chat", chatHandler.Send)

				r.Post("/cart/items", cartHandler.AddItem)
				r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)
				r.Post("/favorites/{productId}", cartHandler.ToggleFavorite)

				r.Post("/notifications/dismiss", sessionHandler.DismissNotification)
			})
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
