// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airtime-analytics/airtime/internal/api"
	"github.com/airtime-analytics/airtime/internal/config"
	"github.com/airtime-analytics/airtime/internal/logging"
	"github.com/airtime-analytics/airtime/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("schedule_path", cfg.Data.SchedulePath).
		Str("ratings_path", cfg.Data.RatingsPath).
		Msg("Starting airtime server")

	engine, err := recommend.NewEngine(cfg.Engine.ToEngine(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(cfg, engine)

	// Initial load. A missing ratings file downgrades to frequency
	// mode; a missing schedule file is fatal.
	if _, err := handler.ReloadData(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load schedule data")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.NewRouter(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}
