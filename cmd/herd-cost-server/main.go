package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/herd-cost/internal/config"
	"github.com/iwvelando/herd-cost/internal/server"
	"github.com/iwvelando/herd-cost/internal/session"
	"github.com/iwvelando/herd-cost/pkg/constants"
	"github.com/iwvelando/herd-cost/pkg/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override, e.g. :8080")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	dashboard := config.Default()
	if cfg.Dashboard != "" {
		dashboard, err = config.LoadConfiguration(cfg.Dashboard)
		if err != nil {
			logger.Fatal("failed to load dashboard configuration",
				zap.String("op", "main"),
				zap.String("path", cfg.Dashboard),
				zap.Error(err),
			)
		}
	}
	for _, warning := range dashboard.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning, zap.String("op", "main"))
	}
	if err := dashboard.Validate(); err != nil {
		logger.Fatal("invalid dashboard configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	sel, err := dashboard.Selection()
	if err != nil {
		logger.Fatal("invalid month selection", zap.String("op", "main"), zap.Error(err))
	}
	reportDate, err := dashboard.ReportDate(time.Now())
	if err != nil {
		logger.Fatal("invalid report date", zap.String("op", "main"), zap.Error(err))
	}

	sess := session.New(logger, session.NewState(dashboard.Inputs, sel), session.Options{
		CommitDelay: cfg.Session.CommitDelay,
		ExportDelay: cfg.Session.ExportDelay,
		ReportDate:  reportDate,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, sess, cfg.BodySizeBytes(), cfg.Version),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("dashboard server listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.Int64("maxBodySize", cfg.BodySizeBytes()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("server failed", zap.String("op", "main"), zap.Error(err))
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("op", "main"), zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", zap.String("op", "main"), zap.Error(err))
	}
	logger.Info("server exited", zap.String("op", "main"))
}
