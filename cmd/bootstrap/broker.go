package bootstrap

import (
	"context"
	"log/slog"

	"room-slot-service/internal/infra/broker"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/usecase/shared"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewNATS,
		fx.Annotate(
			func(js jetstream.JetStream, cfg config.Config) *broker.Publisher {
				return broker.NewPublisher(js, cfg.NATS)
			},
			fx.As(new(shared.Publisher)),
		),
		func(nc *nats.Conn, handler broker.PaymentEventHandler, cfg config.Config, logger *slog.Logger) *broker.PaymentConsumer {
			return broker.NewPaymentConsumer(nc, handler, cfg.NATS, logger)
		},
	),
	fx.Invoke(startPaymentConsumer),
)

func NewNATS(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*nats.Conn, jetstream.JetStream, error) {
	nc, js, err := broker.Connect(cfg.NATS, logger)
	if err != nil {
		return nil, nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return nc.Drain()
		},
	})
	return nc, js, nil
}

func startPaymentConsumer(lc fx.Lifecycle, consumer *broker.PaymentConsumer) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return consumer.Start()
		},
		OnStop: func(_ context.Context) error {
			consumer.Stop()
			return nil
		},
	})
}
