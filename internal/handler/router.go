package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"room-slot-service/internal/handler/api"
	"room-slot-service/internal/handler/middleware"
	"room-slot-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Slot    *api.SlotHandler
	Policy  *api.PolicyHandler
	Request *api.RequestHandler
	Job     *api.JobHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	slogger := logger.GetSlogLogger()
	engine.Use(middleware.CustomRecovery(slogger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, slogger))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler(slogger))
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		rooms := apiGroup.Group("/rooms/:roomId")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "/policy", Handler: h.Policy.GetPolicy},
				{Method: http.MethodPost, Path: "/policy", Handler: h.Policy.SetupPolicy},
				{Method: http.MethodPut, Path: "/policy/operating-hours", Handler: h.Policy.UpdateOperatingHours},
				{Method: http.MethodPut, Path: "/policy/closed-dates", Handler: h.Policy.SetClosedDates},
				{Method: http.MethodGet, Path: "/slots", Handler: h.Slot.ListSlots},
				{Method: http.MethodPost, Path: "/slots/confirm", Handler: h.Slot.ConfirmSlot},
				{Method: http.MethodPost, Path: "/slots/cancel", Handler: h.Slot.CancelSlot},
				{Method: http.MethodPost, Path: "/reservations", Handler: h.Slot.ReserveSlots},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/reservations/:reservationId/cancel", Handler: h.Slot.CancelReservation},
			{Method: http.MethodGet, Path: "/generation-requests/:id", Handler: h.Request.GetGenerationRequest},
			{Method: http.MethodGet, Path: "/closed-date-update-requests/:id", Handler: h.Request.GetClosedDateUpdateRequest},
		})

		if h.Job != nil {
			jobs := apiGroup.Group("/admin/jobs")
			addRoutes(jobs, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Job.ListJobs},
				{Method: http.MethodPost, Path: "/:name/run", Handler: h.Job.RunJob},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, r.Handler)
	}
}
