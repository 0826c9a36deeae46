package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/homekitchen/internal/adapter/events"
	"github.com/polkiloo/homekitchen/internal/app"
	"github.com/polkiloo/homekitchen/internal/config"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
	"github.com/polkiloo/homekitchen/internal/logger"
	"github.com/polkiloo/homekitchen/internal/pkg/backup"
	"github.com/polkiloo/homekitchen/internal/server/http/handlers"
	"github.com/polkiloo/homekitchen/internal/server/http/router"
	"github.com/polkiloo/homekitchen/internal/storage"
	"github.com/polkiloo/homekitchen/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		storage.Module,
		events.Module,
		backup.Module,
		usecase.Module,
		fx.Provide(
			func(p events.Publisher) usecase.OrderPublisher { return p },
			func(b repository.Backend) usecase.HealthChecker { return b },
			func(w *backup.FileWriter) usecase.BackupWriter { return w },
			func(f *app.KitchenFacade) handlers.KitchenFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
