package api

import (
	"net/http"

	reqdto "room-slot-service/internal/handler/dto/request"
	resdto "room-slot-service/internal/handler/dto/response"
	"room-slot-service/internal/handler/httperr"
	"room-slot-service/internal/usecase/commands"
	"room-slot-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	cmds     commands.PolicyCommands
	slots    queries.SlotQueries
	requests queries.RequestQueries
}

func NewPolicyHandler(cmds commands.PolicyCommands, slots queries.SlotQueries, requests queries.RequestQueries) *PolicyHandler {
	return &PolicyHandler{cmds: cmds, slots: slots, requests: requests}
}

// SetupPolicy answers 202: slot generation continues in the background and
// is tracked by the returned request.
func (h *PolicyHandler) SetupPolicy(c *gin.Context) {
	roomID, ok := int64Param(c, "roomId")
	if !ok {
		return
	}
	var req reqdto.SetupPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(roomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}

	genReq, err := h.cmds.SetupPolicy(c.Request.Context(), cmd)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondGenerationRequest(c, genReq.ID)
}

func (h *PolicyHandler) UpdateOperatingHours(c *gin.Context) {
	roomID, ok := int64Param(c, "roomId")
	if !ok {
		return
	}
	var req reqdto.UpdateOperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(roomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}

	genReq, err := h.cmds.UpdateOperatingHours(c.Request.Context(), cmd)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondGenerationRequest(c, genReq.ID)
}

func (h *PolicyHandler) SetClosedDates(c *gin.Context) {
	roomID, ok := int64Param(c, "roomId")
	if !ok {
		return
	}
	var req reqdto.SetClosedDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(roomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}

	cdReq, err := h.cmds.SetClosedDates(c.Request.Context(), cmd)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	view, err := h.requests.GetClosedDateUpdateRequest(c.Request.Context(), cdReq.ID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	respondRequest(c, http.StatusAccepted, view)
}

func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	roomID, ok := int64Param(c, "roomId")
	if !ok {
		return
	}
	view, err := h.slots.GetPolicy(c.Request.Context(), roomID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromPolicyView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PolicyHandler) respondGenerationRequest(c *gin.Context, id int64) {
	view, err := h.requests.GetGenerationRequest(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	respondRequest(c, http.StatusAccepted, view)
}
