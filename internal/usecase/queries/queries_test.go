//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"room-slot-service/internal/domain/job"
	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/queries"
	"room-slot-service/internal/usecase/shared"
	"room-slot-service/tests/common/builder"
	"room-slot-service/tests/common/memstore"

	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite
	store *memstore.Store
	slots queries.SlotQueries
	reqs  queries.RequestQueries
	now   time.Time
}

func (s *QueriesTestSuite) SetupTest() {
	s.store = memstore.New()
	s.slots = queries.NewSlotQueries(s.store)
	s.reqs = queries.NewRequestQueries(s.store)
	s.now = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) TestListSlots() {
	monday := builder.MustDate("2025-03-03")
	s.store.PutSlot(builder.NewSlotBuilder().BuildDomain())
	s.store.PutSlot(builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
		b.StartTime = builder.MustTime("10:00")
	}).Pending(77, s.now).BuildDomain())
	s.store.PutSlot(builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
		b.Date = monday.AddDays(1)
	}).BuildDomain())
	s.store.PutSlot(builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
		b.RoomID = 2
	}).BuildDomain())

	s.Run("only the room's slots on that date", func() {
		views, err := s.slots.ListSlots(context.Background(), 1, monday)

		s.Require().NoError(err)
		s.Require().Len(views, 2)
		byStatus := map[string]*queries.SlotView{}
		for _, v := range views {
			s.Equal(monday, v.Date)
			s.Equal("HOUR", v.SlotUnit)
			byStatus[v.Status] = v
		}
		s.Require().Contains(byStatus, "PENDING")
		s.Require().NotNil(byStatus["PENDING"].ReservationID)
		s.Equal(int64(77), *byStatus["PENDING"].ReservationID)
		s.Nil(byStatus["AVAILABLE"].ReservationID)
	})

	s.Run("empty date gives an empty list", func() {
		views, err := s.slots.ListSlots(context.Background(), 1, monday.AddDays(5))

		s.Require().NoError(err)
		s.Empty(views)
	})
}

func (s *QueriesTestSuite) TestGetPolicy() {
	s.Run("renders schedule and closed dates", func() {
		closed, err := policy.NewClosedDateRange(builder.MustDate("2025-03-10"), nil, nil, nil)
		s.Require().NoError(err)
		p, err := builder.NewPolicyBuilder().With(func(b *builder.PolicyBuilder) {
			b.RoomID = 4
			b.Weekly = builder.DayAt(time.Tuesday, "13:00")
			b.Recurrence = policy.EvenWeek
			b.ClosedDates = []policy.ClosedDateRange{closed}
		}).BuildDomain()
		s.Require().NoError(err)
		s.store.PutPolicy(p)

		view, err := s.slots.GetPolicy(context.Background(), 4)

		s.Require().NoError(err)
		s.Equal(int64(4), view.RoomID)
		s.Equal("EVEN_WEEK", view.Recurrence)
		s.Require().Len(view.WeeklySlots, 1)
		s.Equal("Tuesday", view.WeeklySlots[0].Day)
		s.Equal(builder.MustTime("13:00"), view.WeeklySlots[0].Start)
		s.Require().Len(view.ClosedDates, 1)
		s.Equal(builder.MustDate("2025-03-10"), view.ClosedDates[0].StartDate)
		s.Nil(view.ClosedDates[0].StartTime)
	})

	s.Run("unknown room", func() {
		_, err := s.slots.GetPolicy(context.Background(), 99)

		s.True(errs.Is(err, errs.ErrPolicyNotFound))
	})
}

func (s *QueriesTestSuite) TestRequests() {
	ctx := context.Background()
	start := builder.MustDate("2025-03-03")
	end := start.AddDays(13)

	var genID, cdID int64
	s.Require().NoError(s.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		gen, err := job.NewGenerationRequest(1, job.KindInitial, start, end, s.now)
		if err != nil {
			return err
		}
		if err := gen.Start(s.now); err != nil {
			return err
		}
		if err := gen.Complete(42, s.now.Add(time.Second)); err != nil {
			return err
		}
		if genID, err = tx.GenerationRequests().Create(ctx, gen); err != nil {
			return err
		}

		cd := job.NewClosedDateUpdateRequest(1, s.now)
		if err := cd.Fail(errors.New("room 1 has no policy"), s.now); err != nil {
			return err
		}
		cdID, err = tx.ClosedDateRequests().Create(ctx, cd)
		return err
	}))

	s.Run("completed generation request", func() {
		view, err := s.reqs.GetGenerationRequest(ctx, genID)

		s.Require().NoError(err)
		s.Equal("COMPLETED", view.Status)
		s.Equal(string(job.KindInitial), view.Kind)
		s.Require().NotNil(view.StartDate)
		s.Equal(start, *view.StartDate)
		s.Equal(end, *view.EndDate)
		s.Require().NotNil(view.ResultCount)
		s.Equal(42, *view.ResultCount)
		s.NotNil(view.CompletedAt)
	})

	s.Run("failed closed-date request keeps the cause", func() {
		view, err := s.reqs.GetClosedDateUpdateRequest(ctx, cdID)

		s.Require().NoError(err)
		s.Equal("FAILED", view.Status)
		s.Require().NotNil(view.Error)
		s.Contains(*view.Error, "no policy")
		s.Nil(view.StartDate)
	})

	s.Run("unknown ids", func() {
		_, err := s.reqs.GetGenerationRequest(ctx, 404)
		s.True(errs.Is(err, errs.ErrRequestNotFound))

		_, err = s.reqs.GetClosedDateUpdateRequest(ctx, 404)
		s.True(errs.Is(err, errs.ErrRequestNotFound))
	})
}
