package bootstrap

import (
	"context"
	"log/slog"

	"room-slot-service/internal/infra/lock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			func(client *redis.Client, cfg config.Config, logger *slog.Logger) *lock.RedisLock {
				return lock.NewRedisLock(client, cfg.Redis, logger)
			},
			fx.As(new(shared.DistributedLock)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, err := lock.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
