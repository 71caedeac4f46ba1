package bootstrap

import (
	"context"
	"log/slog"

	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/scheduler"
	"room-slot-service/internal/usecase/expiry"
	"room-slot-service/internal/usecase/generation"
	"room-slot-service/internal/usecase/outbox"
	"room-slot-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(startBackground),
)

func NewScheduler(
	lock shared.DistributedLock,
	engine *generation.Engine,
	worker *generation.Worker,
	reclaimer *expiry.Reclaimer,
	sweeper *outbox.RetrySweeper,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *scheduler.Scheduler {
	s := scheduler.New(lock, cfg.Jobs, logger)
	s.Register(scheduler.SlotJobs(scheduler.JobDeps{
		Engine:    engine,
		Worker:    worker,
		Reclaimer: reclaimer,
		Sweeper:   sweeper,
		Clock:     clk,
		Config:    cfg,
		Logger:    logger,
	})...)
	return s
}

// startBackground ties the dispatcher, the request worker and the scheduler
// to the application lifecycle. Stop order is the reverse of start order so
// the dispatcher outlives everything that feeds it.
func startBackground(
	lc fx.Lifecycle,
	dispatcher *outbox.Dispatcher,
	worker *generation.Worker,
	sched *scheduler.Scheduler,
	cfg config.Config,
	logger *slog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return dispatcher.Stop(ctx)
		},
	})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return worker.Stop(ctx)
		},
	})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if !cfg.Jobs.Enabled {
				logger.Info("scheduled jobs disabled")
				return nil
			}
			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sched.Stop(ctx)
		},
	})
}
