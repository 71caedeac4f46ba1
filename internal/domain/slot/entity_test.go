//go:build unit

package slot_test

import (
	"testing"
	"time"

	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var later = time.Date(2025, 3, 3, 8, 30, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	date := civil.NewDate(2025, time.March, 3)
	nine := civil.MustTimeOfDay(9, 0)

	cases := []struct {
		name   string
		roomID int64
		date   civil.Date
		unit   slot.Unit
		status slot.Status
		errIs  error
	}{
		{name: "available", roomID: 1, date: date, unit: slot.UnitHour, status: slot.StatusAvailable},
		{name: "closed", roomID: 1, date: date, unit: slot.UnitHalfHour, status: slot.StatusClosed},
		{name: "pending is not an initial state", roomID: 1, date: date, unit: slot.UnitHour, status: slot.StatusPending, errIs: slot.ErrInvalidSlot},
		{name: "missing room", roomID: 0, date: date, unit: slot.UnitHour, status: slot.StatusAvailable, errIs: slot.ErrInvalidSlot},
		{name: "missing date", roomID: 1, unit: slot.UnitHour, status: slot.StatusAvailable, errIs: slot.ErrInvalidSlot},
		{name: "unknown unit", roomID: 1, date: date, unit: "DAY", status: slot.StatusAvailable, errIs: slot.ErrInvalidSlot},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := slot.New(tc.roomID, tc.date, nine, tc.unit, tc.status, later)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.status, s.Status())
			assert.Nil(t, s.ReservationID())
		})
	}
}

func TestTimeSlot_Transitions(t *testing.T) {
	type transition func(*slot.TimeSlot) error

	pending := func(s *slot.TimeSlot) error { return s.MarkAsPending(42, later) }
	confirm := func(s *slot.TimeSlot) error { return s.Confirm(later) }
	cancel := func(s *slot.TimeSlot) error { return s.Cancel(later) }
	closeSlot := func(s *slot.TimeSlot) error { return s.MarkAsClosed(later) }
	reopen := func(s *slot.TimeSlot) error { return s.MarkAsAvailable(later) }

	start := map[slot.Status]func() *builder.SlotBuilder{
		slot.StatusAvailable: builder.NewSlotBuilder,
		slot.StatusPending: func() *builder.SlotBuilder {
			return builder.NewSlotBuilder().Pending(42, later.Add(-time.Minute))
		},
		slot.StatusReserved: func() *builder.SlotBuilder { return builder.NewSlotBuilder().Reserved(42) },
		slot.StatusClosed: func() *builder.SlotBuilder {
			return builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) { b.Status = slot.StatusClosed })
		},
	}

	cases := []struct {
		name string
		from slot.Status
		do   transition
		want slot.Status // empty means refused
	}{
		{name: "available -> pending", from: slot.StatusAvailable, do: pending, want: slot.StatusPending},
		{name: "available -> closed", from: slot.StatusAvailable, do: closeSlot, want: slot.StatusClosed},
		{name: "available confirm refused", from: slot.StatusAvailable, do: confirm},
		{name: "available cancel refused", from: slot.StatusAvailable, do: cancel},
		{name: "pending -> reserved", from: slot.StatusPending, do: confirm, want: slot.StatusReserved},
		{name: "pending -> available", from: slot.StatusPending, do: cancel, want: slot.StatusAvailable},
		{name: "pending again refused", from: slot.StatusPending, do: pending},
		{name: "pending close refused", from: slot.StatusPending, do: closeSlot},
		{name: "reserved -> available", from: slot.StatusReserved, do: cancel, want: slot.StatusAvailable},
		{name: "reserved confirm refused", from: slot.StatusReserved, do: confirm},
		{name: "reserved close refused", from: slot.StatusReserved, do: closeSlot},
		{name: "closed -> available", from: slot.StatusClosed, do: reopen, want: slot.StatusAvailable},
		{name: "closed pending refused", from: slot.StatusClosed, do: pending},
		{name: "closed cancel refused", from: slot.StatusClosed, do: cancel},
		{name: "available reopen refused", from: slot.StatusAvailable, do: reopen},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := start[tc.from]().BuildDomain()
			before := s.UpdatedAt()

			err := tc.do(s)

			if tc.want == "" {
				require.ErrorIs(t, err, slot.ErrInvalidStateTransition)
				var ite *slot.InvalidStateTransitionError
				require.ErrorAs(t, err, &ite)
				assert.Equal(t, tc.from, ite.Current)
				assert.Equal(t, tc.from, s.Status())
				assert.Equal(t, before, s.UpdatedAt())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Status())
			assert.Equal(t, later, s.UpdatedAt())
			if tc.want == slot.StatusAvailable {
				assert.Nil(t, s.ReservationID())
			}
		})
	}
}

func TestTimeSlot_MarkAsPending(t *testing.T) {
	t.Run("records the reservation", func(t *testing.T) {
		s := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, s.MarkAsPending(7, later))
		require.NotNil(t, s.ReservationID())
		assert.Equal(t, int64(7), *s.ReservationID())
	})

	t.Run("reservation id is required", func(t *testing.T) {
		s := builder.NewSlotBuilder().BuildDomain()
		assert.ErrorIs(t, s.MarkAsPending(0, later), slot.ErrReservationIDRequired)
		assert.Equal(t, slot.StatusAvailable, s.Status())
	})

	t.Run("confirm keeps the reservation", func(t *testing.T) {
		s := builder.NewSlotBuilder().Pending(7, later).BuildDomain()
		require.NoError(t, s.Confirm(later))
		require.NotNil(t, s.ReservationID())
		assert.Equal(t, int64(7), *s.ReservationID())
	})
}

func TestTimeSlot_Restore(t *testing.T) {
	for _, b := range []*builder.SlotBuilder{
		builder.NewSlotBuilder(),
		builder.NewSlotBuilder().Pending(3, later.Add(-time.Hour)),
		builder.NewSlotBuilder().Reserved(3),
		builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) { b.Status = slot.StatusClosed }),
	} {
		t.Run(string(b.Status), func(t *testing.T) {
			s := b.BuildDomain()
			s.Restore(later)
			s.Restore(later)
			assert.Equal(t, slot.StatusAvailable, s.Status())
			assert.Nil(t, s.ReservationID())
			assert.Equal(t, later, s.UpdatedAt())
		})
	}
}

func TestTimeSlot_IsExpired(t *testing.T) {
	ttl := 15 * time.Minute
	heldAt := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	s := builder.NewSlotBuilder().Pending(1, heldAt).BuildDomain()

	assert.False(t, s.IsExpired(heldAt.Add(ttl), ttl))
	assert.True(t, s.IsExpired(heldAt.Add(ttl+time.Second), ttl))

	reserved := builder.NewSlotBuilder().Reserved(1).BuildDomain()
	assert.False(t, reserved.IsExpired(heldAt.Add(24*time.Hour), ttl))
}

func TestTimeSlot_EndTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	s := builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) { b.Unit = slot.UnitHalfHour }).BuildDomain()

	assert.Equal(t, time.Date(2025, 3, 3, 9, 0, 0, 0, loc), s.StartsAt(loc))
	assert.Equal(t, time.Date(2025, 3, 3, 9, 30, 0, 0, loc), s.EndTime(loc))
}

func TestParseUnit(t *testing.T) {
	u, err := slot.ParseUnit("HALF_HOUR")
	require.NoError(t, err)
	assert.Equal(t, 30, u.Minutes())

	_, err = slot.ParseUnit("half")
	assert.ErrorIs(t, err, slot.ErrInvalidSlot)
}
