package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Extra-Chill/extrachill-blocks/internal/config"
	"github.com/Extra-Chill/extrachill-blocks/internal/logger"
	"github.com/Extra-Chill/extrachill-blocks/internal/services"
	"github.com/Extra-Chill/extrachill-blocks/internal/services/queue"
	"github.com/Extra-Chill/extrachill-blocks/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting extrachill-blocks worker",
		"environment", cfg.Environment,
		"redis_url", cfg.RedisURL)

	queueClient, err := queue.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing queue client", "error", err)
		}
	}()

	attemptQueue := queue.NewAttemptQueue(queueClient)
	log.Info("Queue service initialized successfully")

	storage := services.NewRedisService(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := storage.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("Error closing storage connection", "error", err)
		}
	}()
	log.Info("Storage service initialized successfully")

	w := worker.New(attemptQueue, storage, log, "")

	done := make(chan error, 1)
	go func() {
		done <- w.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Worker is shutting down...")
	w.Stop()

	if err := <-done; err != nil {
		log.Error("Worker exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Worker exited")
}
