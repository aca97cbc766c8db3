// Package main provides the entry point for the dormdex catalog API server.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/dormdex/dormdex-server/internal/config"
	"github.com/dormdex/dormdex-server/internal/di"
	"github.com/dormdex/dormdex-server/internal/di/providers"
	"github.com/dormdex/dormdex-server/internal/logger"
)

var (
	target   = flag.String("target", "", "Subreddit whose catalog to serve (default from TARGET env)")
	dataPath = flag.String("data", "", "Data directory (default from DATA_PATH env)")
	port     = flag.String("port", "", "HTTP listen port")
	logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error")
	envFile  = flag.String("env-file", "", "Path to .env file")
)

func main() {
	flag.Parse()

	// Create DI container
	injector := di.NewContainer(config.Flags{
		Subreddit: *target,
		DataPath:  *dataPath,
		Port:      *port,
		LogLevel:  *logLevel,
		EnvFile:   *envFile,
	})

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The store uses a wrapper type, so close it explicitly
	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		log.Info("Closing database...")
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		} else {
			log.Info("Database closed successfully")
		}
	}

	log.Info("Goodnight, Storrs.")
}
