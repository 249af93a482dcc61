package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banditLab/app/echo-server/router"
	"banditLab/business/bandit"
	"banditLab/business/simulation"
	"banditLab/internal/middleware"
	"banditLab/internal/rest"
	"banditLab/pkg/config"
	"banditLab/pkg/logger"
	"banditLab/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Starting Bandit Lab", "version", cfg.App.Version)

	metrics.Init()

	// Init service
	simulationService := simulation.NewService(simulation.Config{
		Defaults: bandit.Config{
			Arms:     cfg.Simulation.Arms,
			Policies: cfg.Simulation.Policies,
			Rounds:   cfg.Simulation.Rounds,
			Seed:     cfg.Simulation.Seed,
		},
		DefaultTrials: cfg.Simulation.Trials,
		MaxRounds:     cfg.Simulation.MaxRounds,
		MaxTrials:     cfg.Simulation.MaxTrials,
		CacheSize:     cfg.Simulation.CacheSize,
	})

	// Init handler
	simulationHandler := rest.NewSimulationHandler(simulationService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(middleware.TraceID())
	if cfg.Server.RateLimit > 0 {
		e.Use(middleware.RateLimit(cfg.Server.RateLimit))
	}

	// Setup routes
	router.SetOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetSimulationRoutes(api, simulationHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
