package components

import (
	"room-slot-service/internal/handler"
	"room-slot-service/internal/handler/api"
	"room-slot-service/internal/scheduler"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewPolicyHandler,
		api.NewRequestHandler,
		func(s *scheduler.Scheduler) *api.JobHandler {
			return api.NewJobHandler(s)
		},
		func(slot *api.SlotHandler, policy *api.PolicyHandler, request *api.RequestHandler, job *api.JobHandler) handler.Handlers {
			return handler.Handlers{Slot: slot, Policy: policy, Request: request, Job: job}
		},
	),
	fx.Invoke(handler.NewRouter),
)
