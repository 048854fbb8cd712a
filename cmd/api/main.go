package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Extra-Chill/extrachill-blocks/internal/config"
	"github.com/Extra-Chill/extrachill-blocks/internal/handlers"
	"github.com/Extra-Chill/extrachill-blocks/internal/logger"
	"github.com/Extra-Chill/extrachill-blocks/internal/middleware"
	"github.com/Extra-Chill/extrachill-blocks/internal/services"
	"github.com/Extra-Chill/extrachill-blocks/internal/services/queue"
	"github.com/Extra-Chill/extrachill-blocks/internal/turn"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting extrachill-blocks API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Error("OpenAI API key is required when using openai provider")
			os.Exit(1)
		}
		llmService = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.ModelName, log)
		log.Info("Using OpenAI LLM provider")
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"openai", "anthropic"})
		os.Exit(1)
	}

	var storage services.Storage = services.NewRedisService(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := storage.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	queueClient, err := queue.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	attemptQueue := queue.NewAttemptQueue(queueClient)

	processor := turn.NewProcessor(llmService, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(storage, log)
	mux.Handle("/health", healthHandler)

	adventureHandler := handlers.NewAdventureHandler(processor, log)
	mux.Handle("/extrachill-blocks/v1/adventure", adventureHandler)

	voteHandler := handlers.NewVoteHandler(storage, log)
	mux.Handle("/extrachill-blocks/v1/vote", voteHandler)
	mux.Handle("/extrachill-blocks/v1/vote-count/", voteHandler)

	triviaHandler := handlers.NewTriviaHandler(attemptQueue, log)
	mux.Handle("/extrachill-blocks/v1/trivia/log-attempt", triviaHandler)

	bandNameHandler := handlers.NewBandNameHandler(log)
	mux.Handle("/extrachill-blocks/v1/band-name", bandNameHandler)

	rapperNameHandler := handlers.NewRapperNameHandler(log)
	mux.Handle("/extrachill-blocks/v1/rapper-name", rapperNameHandler)

	handler := middleware.Logger(mux, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := queueClient.Close(); err != nil {
		log.Error("Error closing queue client", "error", err)
	}
	if err := storage.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
