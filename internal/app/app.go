// Package app assembles the engine and its collaborators from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
	"github.com/MrJamesThe3rd/spycats/internal/agency/memstore"
	"github.com/MrJamesThe3rd/spycats/internal/agency/store"
	"github.com/MrJamesThe3rd/spycats/internal/breed"
	"github.com/MrJamesThe3rd/spycats/internal/config"
	"github.com/MrJamesThe3rd/spycats/internal/database"
)

type App struct {
	Service *agency.Service
	Breeds  *breed.Client

	db      *sql.DB
	closers []func() error
}

// New connects the configured store and breed registry. Postgres schemas are
// migrated before the service is returned.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	repo, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	var opts []breed.Option

	switch {
	case cfg.Redis.URL != "":
		client, err := breed.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("connecting to redis: %w", err), a.Close())
		}

		a.closers = append(a.closers, client.Close)
		opts = append(opts, breed.WithCache(breed.NewRedisCache(client, ""), cfg.Breed.CacheTTL))
	case cfg.Breed.CacheTTL > 0:
		opts = append(opts, breed.WithCache(breed.NewMemoryCache(), cfg.Breed.CacheTTL))
	}

	a.Breeds = breed.NewClient(cfg.Breed.URL, cfg.Breed.Timeout, opts...)
	a.Service = agency.NewService(repo, a.Breeds)

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (agency.Repository, error) {
	if cfg.App.Store == config.StoreMemory {
		slog.Warn("using in-memory store, data is lost on exit")
		return memstore.New(), nil
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	a.db = db
	a.closers = append(a.closers, db.Close)

	if err := database.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return store.New(db), nil
}

// Ping reports whether the backing database is reachable.
func (a *App) Ping(ctx context.Context) error {
	if a.db == nil {
		return nil
	}

	return a.db.PingContext(ctx)
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	a.closers = nil

	return errors.Join(errs...)
}
