package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"effort-planner/internal/app"
	"effort-planner/internal/config"
	"effort-planner/internal/lib/logger"
)

func main() {
	cfg := config.MustConfig()

	log, closeLog := logger.Setup(cfg.Env, cfg.ErrorLogPath)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	planner, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start planner", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer planner.Close()

	log.Info("template loaded", slog.String("template", planner.Template.Name()))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      routes(cfg, log, planner),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down server", slog.String("error", err.Error()))
		}
	}()

	log.Info("server started", slog.String("address", cfg.HTTPServer.Address), slog.String("env", cfg.Env))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to start server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
