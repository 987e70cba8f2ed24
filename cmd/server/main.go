// Command server exposes processed semester results over HTTP: rankings,
// per-student standing, and module grade distributions. All configured
// semesters are processed at startup; POST /api/refresh reprocesses them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gradecli/internal/config"
	"gradecli/internal/infrastructure"
	"gradecli/internal/services"
	transport "gradecli/internal/transport/http"
	"gradecli/pkg/contracts"
)

func main() {
	port := flag.Int("port", 0, "listen port (overrides configuration)")
	flag.Parse()

	_ = godotenv.Load()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	cfg.Logging.FilePath = paths.GetLogPath("server.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	svc, err := services.NewSemesterService(cfg, paths, logger)
	if err != nil {
		logger.Error("Failed to initialize pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := services.NewResultsStore(svc)
	if err := store.Refresh(); err != nil {
		// The surface still comes up; /api/refresh can retry once the
		// inputs are fixed.
		logger.Warn("Initial processing failed, serving empty results",
			slog.String("error", err.Error()))
	}

	router := transport.NewRouter(cfg, store, contracts.Version, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Server listening",
			slog.Int("port", cfg.Server.Port),
			slog.String("version", contracts.GetVersionString()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
