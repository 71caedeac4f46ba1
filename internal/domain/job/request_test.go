//go:build unit

package job_test

import (
	"errors"
	"testing"
	"time"

	"room-slot-service/internal/domain/job"
	"room-slot-service/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func TestNewGenerationRequest(t *testing.T) {
	r, err := job.NewGenerationRequest(1, job.KindInitial, builder.MustDate("2025-03-03"), builder.MustDate("2025-03-30"), t0)
	require.NoError(t, err)
	assert.Equal(t, job.StatusRequested, r.Status)
	assert.Equal(t, t0, r.RequestedAt)

	_, err = job.NewGenerationRequest(1, job.KindInitial, builder.MustDate("2025-03-30"), builder.MustDate("2025-03-03"), t0)
	assert.Error(t, err)
}

func TestTracking(t *testing.T) {
	t.Run("requested -> in progress -> completed", func(t *testing.T) {
		r := job.NewClosedDateUpdateRequest(1, t0)

		require.NoError(t, r.Start(t0.Add(time.Second)))
		require.NoError(t, r.Complete(12, t0.Add(2*time.Second)))

		assert.Equal(t, job.StatusCompleted, r.Status)
		require.NotNil(t, r.ResultCount)
		assert.Equal(t, 12, *r.ResultCount)
		assert.True(t, r.Status.IsFinished())
	})

	t.Run("fail before start", func(t *testing.T) {
		r := job.NewClosedDateUpdateRequest(1, t0)

		require.NoError(t, r.Fail(errors.New("policy missing"), t0))

		assert.Equal(t, job.StatusFailed, r.Status)
		require.NotNil(t, r.Error)
		assert.Equal(t, "policy missing", *r.Error)
	})

	t.Run("finished requests are immutable", func(t *testing.T) {
		r := job.NewClosedDateUpdateRequest(1, t0)
		require.NoError(t, r.Start(t0))
		require.NoError(t, r.Complete(0, t0))

		assert.ErrorIs(t, r.Fail(errors.New("late"), t0), job.ErrInvalidRequestTransition)
		assert.ErrorIs(t, r.Start(t0), job.ErrInvalidRequestTransition)
	})

	t.Run("complete requires start", func(t *testing.T) {
		r := job.NewClosedDateUpdateRequest(1, t0)
		assert.ErrorIs(t, r.Complete(1, t0), job.ErrInvalidRequestTransition)
	})

	t.Run("resume claims requested and abandoned runs", func(t *testing.T) {
		r := job.NewClosedDateUpdateRequest(1, t0)
		require.NoError(t, r.Resume(t0.Add(time.Minute)))
		assert.Equal(t, job.StatusInProgress, r.Status)

		later := t0.Add(time.Hour)
		require.NoError(t, r.Resume(later))
		require.NotNil(t, r.StartedAt)
		assert.Equal(t, later, *r.StartedAt)

		require.NoError(t, r.Complete(3, later))
		assert.ErrorIs(t, r.Resume(later), job.ErrInvalidRequestTransition)
	})

	t.Run("requeue returns an interrupted run to requested", func(t *testing.T) {
		r := job.NewClosedDateUpdateRequest(1, t0)
		assert.ErrorIs(t, r.Requeue(), job.ErrInvalidRequestTransition)

		require.NoError(t, r.Start(t0))
		require.NoError(t, r.Requeue())
		assert.Equal(t, job.StatusRequested, r.Status)
		assert.Nil(t, r.StartedAt)
		require.NoError(t, r.Start(t0.Add(time.Minute)))
	})
}
