package bootstrap

import (
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewClock,
	),
)

// NewClock reports time in SLOT_TIMEZONE so "today" matches the slot calendar.
func NewClock(cfg config.Config) (clock.Clock, error) {
	loc, err := cfg.Slot.Location()
	if err != nil {
		return nil, err
	}
	return clock.NewRealClock(loc), nil
}
