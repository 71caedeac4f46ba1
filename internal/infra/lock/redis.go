package lock

import (
	"context"
	"log/slog"
	"time"

	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseTimeout = 5 * time.Second

// releaseScript deletes the key only while we still own it. When the hold
// has been shorter than lock-at-least, the key is kept alive for the rest of
// that period so a fast run on one instance does not let another instance
// start the same job right away.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	local keep = tonumber(ARGV[2])
	if keep > 0 then
		return redis.call("pexpire", KEYS[1], keep)
	end
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLock is a lease lock over SET NX PX. The owner token is a fresh UUID
// per acquisition, so a lease that expired and was taken by someone else is
// never released by the former holder.
type RedisLock struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

func NewRedisLock(client redis.UniversalClient, cfg config.RedisConfig, logger *slog.Logger) *RedisLock {
	return &RedisLock{
		client: client,
		prefix: cfg.LockKeyPrefix,
		logger: logger.With("component", "redis_lock"),
	}
}

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "connect to redis")
	}
	return client, nil
}

func (l *RedisLock) TryLock(ctx context.Context, name string, atMost, atLeast time.Duration) (func(), bool, error) {
	if atMost <= 0 {
		return nil, false, errs.Newf("lock %s: lock-at-most must be positive", name)
	}
	key := l.prefix + name
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, atMost).Result()
	if err != nil {
		return nil, false, errs.Wrapf(err, "acquire lock %s", name)
	}
	if !acquired {
		return nil, false, nil
	}

	lockedAt := time.Now()
	release := func() {
		keep := max(atLeast-time.Since(lockedAt), 0)

		rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		if err := releaseScript.Run(rctx, l.client, []string{key}, token, keep.Milliseconds()).Err(); err != nil {
			l.logger.Warn("failed to release lock", "lock", name, "error", err.Error())
		}
	}
	return release, true, nil
}
