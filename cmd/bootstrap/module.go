package bootstrap

import (
	"room-slot-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	BrokerModule,
	LockModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	JobsModule,
)
