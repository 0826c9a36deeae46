package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/homekitchen/internal/config"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
	"github.com/polkiloo/homekitchen/internal/storage/memory"
	"github.com/polkiloo/homekitchen/internal/storage/postgres"
	"github.com/polkiloo/homekitchen/internal/storage/seed"
)

// Module wires the configured store backend and its repositories.
var Module = fx.Options(
	fx.Provide(newBackend),
	fx.Provide(
		func(b repository.Backend) repository.MenuRepository { return b.Menu() },
		func(b repository.Backend) repository.OrderRepository { return b.Orders() },
		func(b repository.Backend) repository.UnitOfWork { return b.UnitOfWork() },
		func(b repository.Backend) repository.SnapshotRepository { return b.Snapshots() },
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var openPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (postgresBackend, error) {
	store, err := postgres.New(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

type postgresBackend interface {
	repository.Backend
	SeedMenu(ctx context.Context, items []model.MenuItem) error
}

func newBackend(p backendParams) (repository.Backend, error) {
	items, err := seed.LoadMenu(p.Config.MenuFile)
	if err != nil {
		return nil, err
	}

	switch p.Config.StorageDriver {
	case config.StorageMemory:
		p.Logger.Info("using in-memory store", slog.Int("menu_items", len(items)))
		return memory.New(items), nil
	case config.StoragePostgres, "":
		store, err := openPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		if err := store.SeedMenu(p.Ctx, items); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.StorageDriver)
	}
}

func registerLifecycle(lc fx.Lifecycle, backend repository.Backend) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			backend.Close()
			return nil
		},
	})
}
