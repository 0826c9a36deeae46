package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/homekitchen/internal/config"
)

// Module exposes the order event publisher to fx graph.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

var dial = func(url, exchange string, logger *slog.Logger) (Publisher, error) {
	p, err := Dial(url, exchange, logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("order events disabled")
		return NoopPublisher{}, nil
	}
	return dial(p.Config.AMQPURL, p.Config.AMQPExchange, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}
