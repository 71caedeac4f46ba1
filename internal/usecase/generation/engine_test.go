//go:build unit

package generation_test

import (
	"context"
	"testing"
	"time"

	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/generation"
	"room-slot-service/internal/usecase/shared"
	"room-slot-service/tests/common/builder"
	"room-slot-service/tests/common/memstore"
	"room-slot-service/tests/common/testutil"

	"github.com/stretchr/testify/suite"
)

var (
	mon = builder.MustDate("2025-03-03")
	tue = builder.MustDate("2025-03-04")
	wed = builder.MustDate("2025-03-05")
	sun = builder.MustDate("2025-03-09")
)

func testConfig() config.Config {
	cfg := config.NewTestConfig()
	cfg.Slot.WindowDays = 7
	return cfg
}

type EngineTestSuite struct {
	suite.Suite
	store  *memstore.Store
	clock  *clock.MockClock
	engine *generation.Engine
	policy *policy.OperatingPolicy
}

func (s *EngineTestSuite) SetupTest() {
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC))
	s.engine = generation.NewEngine(s.store, s.clock, testConfig(), testutil.DiscardLogger())

	p, err := builder.NewPolicyBuilder().BuildDomain()
	s.Require().NoError(err)
	s.store.PutPolicy(p)
	s.policy = p
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) slotAt(date civil.Date, hhmm string) (*slot.TimeSlot, bool) {
	return s.store.Slot(slot.Key{RoomID: 1, Date: date, Time: builder.MustTime(hhmm)})
}

func (s *EngineTestSuite) countOn(date civil.Date) int {
	n := 0
	for _, ts := range s.store.Slots() {
		if ts.Date() == date {
			n++
		}
	}
	return n
}

func (s *EngineTestSuite) replacePolicy(mutate func(*builder.PolicyBuilder)) {
	p, err := builder.NewPolicyBuilder().With(mutate).BuildDomain()
	s.Require().NoError(err)
	p.SetID(s.policy.ID())
	s.store.PutPolicy(p)
}

func (s *EngineTestSuite) TestWindow() {
	start, end := s.engine.Window()
	s.Equal(mon, start)
	s.Equal(sun, end)
}

func (s *EngineTestSuite) TestGenerateRange() {
	n, err := s.engine.GenerateRange(context.Background(), 1, mon, sun)
	s.Require().NoError(err)
	s.Equal(15, n)
	s.Zero(s.countOn(builder.MustDate("2025-03-08")))

	// existing keys are skipped
	n, err = s.engine.GenerateRange(context.Background(), 1, mon, sun)
	s.Require().NoError(err)
	s.Zero(n)
	s.Len(s.store.Slots(), 15)
}

func (s *EngineTestSuite) TestGenerateRange_KeepsExistingState() {
	s.store.PutSlot(builder.NewSlotBuilder().Reserved(4).BuildDomain())

	n, err := s.engine.GenerateRange(context.Background(), 1, mon, mon)

	s.Require().NoError(err)
	s.Equal(2, n)
	ts, _ := s.slotAt(mon, "09:00")
	s.Equal(slot.StatusReserved, ts.Status())
}

func (s *EngineTestSuite) TestGenerateRange_Errors() {
	_, err := s.engine.GenerateRange(context.Background(), 99, mon, mon)
	s.True(errs.Is(err, errs.ErrPolicyNotFound))

	_, err = s.engine.GenerateRange(context.Background(), 1, tue, mon)
	s.True(errs.Is(err, errs.ErrValidation))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.engine.GenerateRange(ctx, 1, mon, sun)
	s.Error(err)
	s.Empty(s.store.Slots())
}

func (s *EngineTestSuite) TestGenerateAllRooms() {
	other, err := builder.NewPolicyBuilder().With(func(b *builder.PolicyBuilder) {
		b.RoomID = 2
		b.Weekly = builder.DayAt(time.Monday, "14:00")
	}).BuildDomain()
	s.Require().NoError(err)
	s.store.PutPolicy(other)

	n, err := s.engine.GenerateAllRooms(context.Background(), mon)

	s.Require().NoError(err)
	s.Equal(4, n)
	_, ok := s.store.Slot(slot.Key{RoomID: 2, Date: mon, Time: builder.MustTime("14:00")})
	s.True(ok)
}

func (s *EngineTestSuite) TestRetireBefore() {
	_, err := s.engine.GenerateRange(context.Background(), 1, mon, wed)
	s.Require().NoError(err)

	deleted, err := s.engine.RetireBefore(context.Background(), wed)

	s.Require().NoError(err)
	s.Equal(int64(6), deleted)
	s.Zero(s.countOn(mon))
	s.Zero(s.countOn(tue))
	s.Equal(3, s.countOn(wed))
}

func (s *EngineTestSuite) TestRegenerate() {
	s.Run("replaces available slots and preserves commitments", func() {
		s.SetupTest()
		_, err := s.engine.GenerateRange(context.Background(), 1, mon, mon)
		s.Require().NoError(err)
		s.store.PutSlot(builder.NewSlotBuilder().Pending(5, s.clock.Now()).BuildDomain())
		s.store.PutSlot(builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
			b.StartTime = builder.MustTime("10:00")
		}).Reserved(6).BuildDomain())

		s.replacePolicy(func(b *builder.PolicyBuilder) {
			b.Weekly = builder.DayAt(time.Monday, "10:00", "13:00", "14:00")
		})

		n, err := s.engine.Regenerate(context.Background(), 1, mon, mon)

		s.Require().NoError(err)
		s.Equal(2, n)

		pending, ok := s.slotAt(mon, "09:00")
		s.Require().True(ok, "pending slot outside the new schedule survives")
		s.Equal(slot.StatusPending, pending.Status())
		reserved, _ := s.slotAt(mon, "10:00")
		s.Equal(slot.StatusReserved, reserved.Status())
		s.Equal(int64(6), *reserved.ReservationID())
		_, ok = s.slotAt(mon, "11:00")
		s.False(ok)
		added, ok := s.slotAt(mon, "13:00")
		s.Require().True(ok)
		s.Equal(slot.StatusAvailable, added.Status())
		s.Equal(4, s.countOn(mon))
	})

	s.Run("new unit is applied to regenerated slots", func() {
		s.SetupTest()
		_, err := s.engine.GenerateRange(context.Background(), 1, mon, mon)
		s.Require().NoError(err)
		s.replacePolicy(func(b *builder.PolicyBuilder) { b.SlotUnit = slot.UnitHalfHour })

		_, err = s.engine.Regenerate(context.Background(), 1, mon, mon)

		s.Require().NoError(err)
		ts, _ := s.slotAt(mon, "09:00")
		s.Equal(slot.UnitHalfHour, ts.Unit())
	})
}

// interleavedUoW runs before once, ahead of the first write transaction.
type interleavedUoW struct {
	*memstore.Store
	before func()
}

func (u *interleavedUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if f := u.before; f != nil {
		u.before = nil
		f()
	}
	return u.Store.Within(ctx, fn)
}

func (s *EngineTestSuite) TestRegenerate_OlderJobWritesCurrentPolicy() {
	ctx := context.Background()
	_, err := s.engine.GenerateRange(ctx, 1, mon, tue)
	s.Require().NoError(err)

	uow := &interleavedUoW{Store: s.store}
	older := generation.NewEngine(uow, s.clock, testConfig(), testutil.DiscardLogger())
	uow.before = func() {
		s.replacePolicy(func(b *builder.PolicyBuilder) {
			b.Weekly = builder.DayAt(time.Monday, "15:00")
		})
		_, err := s.engine.Regenerate(ctx, 1, mon, tue)
		s.Require().NoError(err)
	}

	_, err = older.Regenerate(ctx, 1, mon, tue)

	s.Require().NoError(err)
	s.Equal(1, s.countOn(mon))
	ts, ok := s.slotAt(mon, "15:00")
	s.Require().True(ok)
	s.Equal(slot.StatusAvailable, ts.Status())
	_, ok = s.slotAt(mon, "09:00")
	s.False(ok, "replaced schedule must not come back")
	s.Zero(s.countOn(tue))
}

func (s *EngineTestSuite) TestPropagateClosedDates_OlderJobWritesCurrentPolicy() {
	ctx := context.Background()
	_, err := s.engine.GenerateRange(ctx, 1, mon, mon)
	s.Require().NoError(err)

	uow := &interleavedUoW{Store: s.store}
	older := generation.NewEngine(uow, s.clock, testConfig(), testutil.DiscardLogger())
	uow.before = func() {
		holiday, err := policy.FullDay(mon, nil)
		s.Require().NoError(err)
		s.replacePolicy(func(b *builder.PolicyBuilder) {
			b.ClosedDates = []policy.ClosedDateRange{holiday}
		})
	}

	_, err = older.PropagateClosedDates(ctx, 1, mon, mon)

	s.Require().NoError(err)
	for _, ts := range s.store.Slots() {
		s.Equal(slot.StatusClosed, ts.Status(), ts.Key().String())
	}
}

func (s *EngineTestSuite) TestPropagateClosedDates() {
	ctx := context.Background()
	_, err := s.engine.GenerateRange(ctx, 1, mon, tue)
	s.Require().NoError(err)
	s.store.PutSlot(builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
		b.StartTime = builder.MustTime("10:00")
	}).Pending(2, s.clock.Now()).BuildDomain())

	lunch, err := policy.NewClosedDateRange(mon, nil, ptr(builder.MustTime("09:00")), ptr(builder.MustTime("11:00")))
	s.Require().NoError(err)
	holiday, err := policy.FullDay(tue, nil)
	s.Require().NoError(err)
	s.replacePolicy(func(b *builder.PolicyBuilder) {
		b.ClosedDates = []policy.ClosedDateRange{lunch, holiday}
	})

	changed, err := s.engine.PropagateClosedDates(ctx, 1, mon, tue)
	s.Require().NoError(err)
	s.Equal(4, changed)

	nine, _ := s.slotAt(mon, "09:00")
	s.Equal(slot.StatusClosed, nine.Status())
	ten, _ := s.slotAt(mon, "10:00")
	s.Equal(slot.StatusPending, ten.Status(), "held slots are never closed")
	eleven, _ := s.slotAt(mon, "11:00")
	s.Equal(slot.StatusAvailable, eleven.Status())
	for _, hhmm := range []string{"09:00", "10:00", "11:00"} {
		ts, _ := s.slotAt(tue, hhmm)
		s.Equal(slot.StatusClosed, ts.Status())
	}

	s.replacePolicy(func(b *builder.PolicyBuilder) {})
	changed, err = s.engine.PropagateClosedDates(ctx, 1, mon, tue)
	s.Require().NoError(err)
	s.Equal(4, changed)
	for _, ts := range s.store.Slots() {
		if ts.Date() == mon && ts.StartTime() == builder.MustTime("10:00") {
			continue
		}
		s.Equal(slot.StatusAvailable, ts.Status(), ts.Key().String())
	}
}

func (s *EngineTestSuite) TestPropagateClosedDates_ReopenedDayIsMaterialized() {
	ctx := context.Background()
	holiday, err := policy.FullDay(wed, nil)
	s.Require().NoError(err)
	s.replacePolicy(func(b *builder.PolicyBuilder) {
		b.ClosedDates = []policy.ClosedDateRange{holiday}
	})

	n, err := s.engine.GenerateRange(ctx, 1, wed, wed)
	s.Require().NoError(err)
	s.Zero(n)

	s.replacePolicy(func(b *builder.PolicyBuilder) {})
	n, err = s.engine.PropagateClosedDates(ctx, 1, wed, wed)

	s.Require().NoError(err)
	s.Equal(3, n)
	s.Equal(3, s.countOn(wed))
}

func ptr[T any](v T) *T { return &v }
