//go:build unit

package policy_test

import (
	"testing"

	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewClosedDateRange(t *testing.T) {
	start := builder.MustDate("2025-03-10")

	cases := []struct {
		name      string
		end       *civil.Date
		startTime *civil.TimeOfDay
		endTime   *civil.TimeOfDay
		errIs     error
	}{
		{name: "single full day"},
		{name: "multi day", end: ptr(builder.MustDate("2025-03-12"))},
		{name: "partial day", startTime: ptr(builder.MustTime("12:00")), endTime: ptr(builder.MustTime("13:00"))},
		{name: "end before start", end: ptr(builder.MustDate("2025-03-09")), errIs: policy.ErrInvalidClosedDate},
		{name: "only start time", startTime: ptr(builder.MustTime("12:00")), errIs: policy.ErrInvalidClosedDate},
		{name: "end time before start time", startTime: ptr(builder.MustTime("13:00")), endTime: ptr(builder.MustTime("12:00")), errIs: policy.ErrInvalidClosedDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := policy.NewClosedDateRange(start, tc.end, tc.startTime, tc.endTime)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
		})
	}

	t.Run("zero start date", func(t *testing.T) {
		_, err := policy.FullDay(civil.Date{}, nil)
		assert.ErrorIs(t, err, policy.ErrInvalidClosedDate)
	})
}

func TestClosedDateRange_Contains(t *testing.T) {
	lunch, err := policy.NewClosedDateRange(
		builder.MustDate("2025-03-10"), nil,
		ptr(builder.MustTime("12:00")), ptr(builder.MustTime("13:00")),
	)
	require.NoError(t, err)

	t.Run("half-open interval", func(t *testing.T) {
		d := builder.MustDate("2025-03-10")
		assert.False(t, lunch.Contains(d, builder.MustTime("11:00")))
		assert.True(t, lunch.Contains(d, builder.MustTime("12:00")))
		assert.True(t, lunch.Contains(d, builder.MustTime("12:30")))
		assert.False(t, lunch.Contains(d, builder.MustTime("13:00")))
	})

	t.Run("other dates are untouched", func(t *testing.T) {
		assert.False(t, lunch.Contains(builder.MustDate("2025-03-11"), builder.MustTime("12:00")))
	})

	t.Run("zero length blocks exactly its start", func(t *testing.T) {
		r, err := policy.NewClosedDateRange(
			builder.MustDate("2025-03-10"), nil,
			ptr(builder.MustTime("09:00")), ptr(builder.MustTime("09:00")),
		)
		require.NoError(t, err)
		d := builder.MustDate("2025-03-10")
		assert.True(t, r.Contains(d, builder.MustTime("09:00")))
		assert.False(t, r.Contains(d, builder.MustTime("09:30")))
	})

	t.Run("inclusive date span", func(t *testing.T) {
		r, err := policy.FullDay(builder.MustDate("2025-03-10"), ptr(builder.MustDate("2025-03-12")))
		require.NoError(t, err)
		assert.False(t, r.ContainsDate(builder.MustDate("2025-03-09")))
		assert.True(t, r.ContainsDate(builder.MustDate("2025-03-10")))
		assert.True(t, r.ContainsDate(builder.MustDate("2025-03-12")))
		assert.False(t, r.ContainsDate(builder.MustDate("2025-03-13")))
	})
}

func TestIsFullDayClosed(t *testing.T) {
	full, err := policy.FullDay(builder.MustDate("2025-03-10"), nil)
	require.NoError(t, err)
	partial, err := policy.NewClosedDateRange(
		builder.MustDate("2025-03-11"), nil,
		ptr(builder.MustTime("12:00")), ptr(builder.MustTime("13:00")),
	)
	require.NoError(t, err)
	ranges := []policy.ClosedDateRange{full, partial}

	assert.True(t, policy.IsFullDayClosed(ranges, builder.MustDate("2025-03-10")))
	assert.False(t, policy.IsFullDayClosed(ranges, builder.MustDate("2025-03-11")))
	assert.True(t, policy.IsClosedAt(ranges, builder.MustDate("2025-03-10"), builder.MustTime("18:00")))
	assert.True(t, policy.IsClosedAt(ranges, builder.MustDate("2025-03-11"), builder.MustTime("12:00")))
	assert.False(t, policy.IsClosedAt(nil, builder.MustDate("2025-03-11"), builder.MustTime("12:00")))
}
