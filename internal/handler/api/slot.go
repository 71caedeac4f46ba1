package api

import (
	"context"
	"net/http"

	"room-slot-service/internal/domain/slot"
	reqdto "room-slot-service/internal/handler/dto/request"
	resdto "room-slot-service/internal/handler/dto/response"
	"room-slot-service/internal/handler/httperr"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/usecase/commands"
	"room-slot-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// ReserveSlots holds every requested slot for the reservation, or none of them.
func (h *SlotHandler) ReserveSlots(c *gin.Context) {
	roomID, ok := int64Param(c, "roomId")
	if !ok {
		return
	}
	var req reqdto.ReserveSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := req.Validate(); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}

	n, err := h.cmds.MarkMultipleSlotsAsPending(c.Request.Context(), roomID, req.Date, req.StartTimes, req.ReservationID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.SlotsChangedResponse{
		ReservationID: req.ReservationID,
		Slots:         n,
	})
}

func (h *SlotHandler) ConfirmSlot(c *gin.Context) {
	h.singleSlot(c, h.cmds.ConfirmSlot)
}

func (h *SlotHandler) CancelSlot(c *gin.Context) {
	h.singleSlot(c, h.cmds.CancelSlot)
}

func (h *SlotHandler) singleSlot(c *gin.Context, op func(ctx context.Context, key slot.Key) error) {
	roomID, ok := int64Param(c, "roomId")
	if !ok {
		return
	}
	var req reqdto.SlotKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	key, err := req.ToKey(roomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	if err := op(c.Request.Context(), key); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelReservation releases every slot held by the reservation. Repeating
// the call is harmless.
func (h *SlotHandler) CancelReservation(c *gin.Context) {
	reservationID, ok := int64Param(c, "reservationId")
	if !ok {
		return
	}
	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	n, err := h.cmds.CancelSlotsByReservationID(c.Request.Context(), reservationID, req.Reason)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SlotsChangedResponse{ReservationID: reservationID, Slots: n})
}

func (h *SlotHandler) ListSlots(c *gin.Context) {
	roomID, ok := int64Param(c, "roomId")
	if !ok {
		return
	}
	date, err := civil.ParseDate(c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	views, err := h.q.ListSlots(c.Request.Context(), roomID, date)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromSlotViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
