package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spycats/internal/app"
	"github.com/MrJamesThe3rd/spycats/internal/config"
	spyHttp "github.com/MrJamesThe3rd/spycats/internal/http"
	breedHandler "github.com/MrJamesThe3rd/spycats/internal/http/breed"
	catHandler "github.com/MrJamesThe3rd/spycats/internal/http/cat"
	missionHandler "github.com/MrJamesThe3rd/spycats/internal/http/mission"
	targetHandler "github.com/MrJamesThe3rd/spycats/internal/http/target"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("starting app: %w", err)
	}
	defer a.Close()

	var (
		catsH     = catHandler.NewHandler(a.Service)
		missionsH = missionHandler.NewHandler(a.Service)
		targetsH  = targetHandler.NewHandler(a.Service)
		breedsH   = breedHandler.NewHandler(a.Breeds)
	)

	router := spyHttp.New(spyHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
		Timeout:        cfg.Server.Timeout,
		Ping:           a.Ping,
	}, catsH, missionsH, targetsH, breedsH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "store", cfg.App.Store)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
