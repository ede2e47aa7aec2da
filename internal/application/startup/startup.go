// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AtRiskMedia/cartgate-go/internal/application/container"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/cartgate-go/internal/presentation/http/server"
	"github.com/AtRiskMedia/cartgate-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("\033[32m" + `
                   _             _
   ___ __ _ _ __ | |_ __ _  __ | |_ ___
  / __/ _` + "`" + ` | '__|| __/ _` + "`" + ` |/ _` + "`" + ` | __/ _ \
 | (_| (_| | |   | || (_| | (_| | ||  __/
  \___\__,_|_|    \__\__, |\__,_|\__\___|
                     |___/
` + "\033[97m" + `
  made by At Risk Media
` + "\033[0m")

	// Step 1: Initialize the channeled logger
	log.Println("Initializing channeled logging...")
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.LogDirectory = config.LogDirectory
	if os.Getenv("LOG_LEVEL") == "debug" {
		loggerConfig.DefaultLevel = slog.LevelDebug
	}
	logger, err := logging.NewChanneledLogger(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Step 2: Initialize tenant system
	logger.Startup().Info("Initializing tenant manager",
		"configDir", config.TenantConfigDir,
	)
	tenantManager := tenant.NewManager(logger)

	// Step 3: Create dependency injection container
	appContainer := container.NewContainer(tenantManager, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 4: Start HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", port)

	// Step 5: Setup graceful shutdown
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"multiTenant", tenantManager.IsMultiTenant(),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	if err := tenantManager.Close(); err != nil {
		logger.Shutdown().Error("Error closing tenant manager", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return logger.Close()
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
