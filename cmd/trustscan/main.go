package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/TrustScan/pkg/config"
	"github.com/NeuralTrust/TrustScan/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/TrustScan/pkg/infra/logger"
	"github.com/NeuralTrust/TrustScan/pkg/server"
	"github.com/NeuralTrust/TrustScan/pkg/server/router"
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

	logger := infraLogger.NewLogger(getComponent())

	// Load configuration
	if err := config.Load(getConfigPath()); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize dependencies: %v", err)
	}

	apiRouter := router.NewAPIRouter(
		container.MiddlewareTransport(),
		container.HandlerTransport,
		container.RouteLimits,
	)

	srv := server.NewAPIServer(server.APIServerDI{
		Config:  cfg,
		Logger:  logger,
		Routers: []router.ServerRouter{apiRouter},
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}

func getComponent() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return "api"
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "./config"
}
