package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/SafePrompt/pkg/config"
	"github.com/NeuralTrust/SafePrompt/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/SafePrompt/pkg/infra/logger"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/prometheus"
	"github.com/NeuralTrust/SafePrompt/pkg/server"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, logCloser := infraLogger.NewLogger("safeprompt")
	defer func() {
		_ = logCloser.Close()
	}()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency:         cfg.Metrics.EnableLatency,
		EnableUpstreamLatency: cfg.Metrics.EnableUpstream,
	})

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.AudioStore.Start(ctx)

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: container.MiddlewareTransport,
		HandlerTransport:    container.HandlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	exitCode := 0
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		exitCode = 1
	}
	cancel()
	container.AudioStore.Stop()
	container.TelemetryWorker.Shutdown()
	if container.CacheClient != nil {
		_ = container.CacheClient.Close()
	}
	fmt.Println("server gracefully stopped")
	if exitCode != 0 {
		_ = logCloser.Close()
		os.Exit(exitCode)
	}
}
