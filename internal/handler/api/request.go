package api

import (
	"net/http"

	resdto "room-slot-service/internal/handler/dto/response"
	"room-slot-service/internal/handler/httperr"
	"room-slot-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	q queries.RequestQueries
}

func NewRequestHandler(q queries.RequestQueries) *RequestHandler {
	return &RequestHandler{q: q}
}

func (h *RequestHandler) GetGenerationRequest(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetGenerationRequest(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	respondRequest(c, http.StatusOK, view)
}

func (h *RequestHandler) GetClosedDateUpdateRequest(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetClosedDateUpdateRequest(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	respondRequest(c, http.StatusOK, view)
}

func respondRequest(c *gin.Context, status int, view *queries.RequestView) {
	res, err := resdto.FromRequestView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
