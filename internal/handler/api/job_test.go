//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"room-slot-service/internal/handler/api"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubRunner struct {
	names []string
	ran   bool
	err   error
	calls []string
}

func (r *stubRunner) Jobs() []string { return r.names }

func (r *stubRunner) RunNow(_ context.Context, name string) (bool, error) {
	r.calls = append(r.calls, name)
	return r.ran, r.err
}

func newJobRouter(runner api.JobRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := api.NewJobHandler(runner)
	r := gin.New()
	r.GET("/admin/jobs", h.ListJobs)
	r.POST("/admin/jobs/:name/run", h.RunJob)
	return r
}

func TestJobHandler_ListJobs(t *testing.T) {
	router := newJobRouter(&stubRunner{names: []string{"daily-slot-generation", "outbox-retry-sweep"}})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/admin/jobs", nil)

	var body struct {
		Jobs []string `json:"jobs"`
	}
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.Equal(t, []string{"daily-slot-generation", "outbox-retry-sweep"}, body.Jobs)
}

func TestJobHandler_RunJob(t *testing.T) {
	type result struct {
		Job string `json:"job"`
		Ran bool   `json:"ran"`
	}

	t.Run("ran under the lock", func(t *testing.T) {
		runner := &stubRunner{ran: true}
		router := newJobRouter(runner)

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/admin/jobs/outbox-retry-sweep/run", nil)

		var body result
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, result{Job: "outbox-retry-sweep", Ran: true}, body)
		assert.Equal(t, []string{"outbox-retry-sweep"}, runner.calls)
	})

	t.Run("lock held by another instance", func(t *testing.T) {
		router := newJobRouter(&stubRunner{ran: false})

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/admin/jobs/pending-expiry-reclaim/run", nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ran":false`)
	})

	t.Run("unknown job", func(t *testing.T) {
		err := errs.Mark(errs.New(`job "nope"`), errs.ErrValidation)
		router := newJobRouter(&stubRunner{err: err})

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/admin/jobs/nope/run", nil)

		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Job run failed")
	})

	t.Run("job failure", func(t *testing.T) {
		router := newJobRouter(&stubRunner{ran: true, err: errs.New("database unavailable")})

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/admin/jobs/outbox-archive/run", nil)

		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Job run failed")
	})
}
