package api

import (
	"context"
	"net/http"

	"room-slot-service/internal/handler/httperr"
	"room-slot-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type JobRunner interface {
	Jobs() []string
	RunNow(ctx context.Context, name string) (bool, error)
}

// JobHandler lets operators trigger a scheduled job out of band. The run
// still goes through the job's distributed lock.
type JobHandler struct {
	runner JobRunner
}

func NewJobHandler(runner JobRunner) *JobHandler {
	return &JobHandler{runner: runner}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.runner.Jobs()})
}

func (h *JobHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	ran, err := h.runner.RunNow(c.Request.Context(), name)
	if err != nil {
		status := http.StatusInternalServerError
		if errs.Is(err, errs.ErrValidation) {
			status = http.StatusBadRequest
		}
		httperr.AbortWithError(c, status, err, "Job run failed", err.Error())
		return
	}
	if !ran {
		c.JSON(http.StatusConflict, gin.H{"job": name, "ran": false, "message": "job is running on another instance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": name, "ran": true})
}
