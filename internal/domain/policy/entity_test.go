//go:build unit

package policy_test

import (
	"testing"
	"time"

	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.PolicyBuilder)
	errIs  error
}

func TestNewOperatingPolicy(t *testing.T) {
	cases := []testCase{
		{name: "defaults are valid", mutate: func(*builder.PolicyBuilder) {}},
		{name: "non-positive room", mutate: func(b *builder.PolicyBuilder) { b.RoomID = 0 }, errIs: policy.ErrInvalidPolicy},
		{name: "unknown recurrence", mutate: func(b *builder.PolicyBuilder) { b.Recurrence = "MONTHLY" }, errIs: policy.ErrInvalidPolicy},
		{name: "unknown unit", mutate: func(b *builder.PolicyBuilder) { b.SlotUnit = "DAY" }, errIs: policy.ErrInvalidPolicy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := builder.NewPolicyBuilder().With(tc.mutate).BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), p.RoomID())
		})
	}

	t.Run("nil weekly schedule", func(t *testing.T) {
		_, err := policy.NewOperatingPolicy(1, policy.WeeklySchedule{}, policy.EveryWeek, slot.UnitHour, nil, time.Now())
		assert.ErrorIs(t, err, policy.ErrNilArgument)
	})
}

func TestOperatingPolicy_GenerateSlotsFor(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("emits the weekday's times in order", func(t *testing.T) {
		p, err := builder.NewPolicyBuilder().BuildDomain()
		require.NoError(t, err)

		got, err := p.GenerateSlotsFor(builder.MustDate("2025-03-03"), slot.UnitHour, now)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, want := range []string{"09:00", "10:00", "11:00"} {
			assert.Equal(t, builder.MustTime(want), got[i].StartTime())
			assert.Equal(t, slot.StatusAvailable, got[i].Status())
			assert.Equal(t, now, got[i].UpdatedAt())
			assert.Nil(t, got[i].ReservationID())
		}
	})

	t.Run("weekend yields nothing", func(t *testing.T) {
		p, err := builder.NewPolicyBuilder().BuildDomain()
		require.NoError(t, err)

		got, err := p.GenerateSlotsFor(builder.MustDate("2025-03-08"), slot.UnitHour, now)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("recurrence mismatch yields nothing", func(t *testing.T) {
		p, err := builder.NewPolicyBuilder().With(func(b *builder.PolicyBuilder) {
			b.Recurrence = policy.OddWeek
		}).BuildDomain()
		require.NoError(t, err)

		even, err := p.GenerateSlotsFor(builder.MustDate("2025-03-03"), slot.UnitHour, now)
		require.NoError(t, err)
		assert.Empty(t, even)

		odd, err := p.GenerateSlotsFor(builder.MustDate("2025-03-10"), slot.UnitHour, now)
		require.NoError(t, err)
		assert.Len(t, odd, 3)
	})

	t.Run("full-day closure yields nothing", func(t *testing.T) {
		closed, err := policy.FullDay(builder.MustDate("2025-03-03"), nil)
		require.NoError(t, err)
		p, err := builder.NewPolicyBuilder().With(func(b *builder.PolicyBuilder) {
			b.ClosedDates = []policy.ClosedDateRange{closed}
		}).BuildDomain()
		require.NoError(t, err)

		got, err := p.GenerateSlotsFor(builder.MustDate("2025-03-03"), slot.UnitHour, now)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("partial closure emits CLOSED slots", func(t *testing.T) {
		closed, err := policy.NewClosedDateRange(
			builder.MustDate("2025-03-03"), nil,
			ptr(builder.MustTime("10:00")), ptr(builder.MustTime("11:00")),
		)
		require.NoError(t, err)
		p, err := builder.NewPolicyBuilder().With(func(b *builder.PolicyBuilder) {
			b.ClosedDates = []policy.ClosedDateRange{closed}
		}).BuildDomain()
		require.NoError(t, err)

		got, err := p.GenerateSlotsFor(builder.MustDate("2025-03-03"), slot.UnitHour, now)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, slot.StatusAvailable, got[0].Status())
		assert.Equal(t, slot.StatusClosed, got[1].Status())
		assert.Equal(t, slot.StatusAvailable, got[2].Status())
	})

	t.Run("unit is recorded without changing start times", func(t *testing.T) {
		p, err := builder.NewPolicyBuilder().BuildDomain()
		require.NoError(t, err)

		got, err := p.GenerateSlotsFor(builder.MustDate("2025-03-03"), slot.UnitHalfHour, now)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, slot.UnitHalfHour, got[0].Unit())
	})
}

func TestOperatingPolicy_Mutations(t *testing.T) {
	later := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	p, err := builder.NewPolicyBuilder().BuildDomain()
	require.NoError(t, err)

	assert.ErrorIs(t, p.UpdateRecurrence("", later), policy.ErrNilArgument)
	assert.ErrorIs(t, p.UpdateSlotUnit("WEEK", later), policy.ErrInvalidPolicy)
	assert.ErrorIs(t, p.UpdateClosedDates(nil, later), policy.ErrNilArgument)
	assert.ErrorIs(t, p.AddClosedDate(nil, later), policy.ErrNilArgument)

	closed, err := policy.FullDay(builder.MustDate("2025-03-05"), nil)
	require.NoError(t, err)
	require.NoError(t, p.AddClosedDate(&closed, later))
	require.NoError(t, p.AddClosedDate(&closed, later))
	assert.Len(t, p.ClosedDates(), 2)
	assert.Equal(t, later, p.UpdatedAt())

	require.NoError(t, p.RemoveClosedDate(&closed, later))
	assert.Empty(t, p.ClosedDates())

	require.NoError(t, p.UpdateClosedDates([]policy.ClosedDateRange{}, later))
	assert.Empty(t, p.ClosedDates())
}

func TestParseWeekday(t *testing.T) {
	d, err := policy.ParseWeekday("wednesday")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d)

	_, err = policy.ParseWeekday("someday")
	assert.ErrorIs(t, err, policy.ErrInvalidPolicy)
}
