package api

import (
	"net/http"
	"strconv"

	"room-slot-service/internal/handler/httperr"
	"room-slot-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithUsecaseError maps usecase sentinels onto HTTP statuses.
func abortWithUsecaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
	case errs.Is(err, errs.ErrSlotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
	case errs.Is(err, errs.ErrPolicyNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Operating policy not found", nil)
	case errs.Is(err, errs.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found", nil)
	case errs.Is(err, errs.ErrSlotConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot is not in a state that allows this operation", nil)
	case errs.Is(err, errs.ErrPolicyConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Operating policy already exists", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.Abort(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
