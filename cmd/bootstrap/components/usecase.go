package components

import (
	"log/slog"

	"room-slot-service/internal/infra/broker"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/usecase/commands"
	"room-slot-service/internal/usecase/expiry"
	"room-slot-service/internal/usecase/generation"
	"room-slot-service/internal/usecase/outbox"
	"room-slot-service/internal/usecase/queries"
	"room-slot-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseOutboxModule,
	usecaseGenerationModule,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseOutboxModule = fx.Module("usecase/outbox",
	fx.Provide(
		func(uow shared.UnitOfWork, publisher shared.Publisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.Dispatcher {
			return outbox.NewDispatcher(uow, publisher, clk, cfg.Outbox, logger)
		},
		func(d *outbox.Dispatcher) shared.Dispatcher {
			return d
		},
		func(uow shared.UnitOfWork, d *outbox.Dispatcher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.RetrySweeper {
			return outbox.NewRetrySweeper(uow, d, clk, cfg.Outbox, logger)
		},
	),
)

var usecaseGenerationModule = fx.Module("usecase/generation",
	fx.Provide(
		generation.NewEngine,
		generation.NewWorker,
		func(w *generation.Worker) commands.JobLauncher {
			return w
		},
		func(uow shared.UnitOfWork, d shared.Dispatcher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *expiry.Reclaimer {
			return expiry.NewReclaimer(uow, d, clk, cfg.Slot, logger)
		},
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSlotCommands,
		func(
			uow shared.UnitOfWork,
			d shared.Dispatcher,
			launcher commands.JobLauncher,
			clk clock.Clock,
			cfg config.Config,
			logger *slog.Logger,
		) commands.PolicyCommands {
			return commands.NewPolicyCommands(uow, d, launcher, clk, cfg.Slot, logger)
		},
		fx.Annotate(
			commands.NewPaymentEventHandler,
			fx.As(new(broker.PaymentEventHandler)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewRequestQueries,
	),
)
