//go:build unit

package outbox_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domain "room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/usecase/outbox"
	"room-slot-service/internal/usecase/shared"
	"room-slot-service/tests/common/memstore"
	"room-slot-service/tests/common/testutil"
	sharedmock "room-slot-service/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DispatcherTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *memstore.Store
	publisher *sharedmock.MockPublisher
	clock     *clock.MockClock
	cfg       config.OutboxConfig
}

func (s *DispatcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.publisher = sharedmock.NewMockPublisher(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC))
	s.cfg = config.OutboxConfig{
		Workers:        2,
		QueueSize:      0,
		MaxRetries:     3,
		SweepGrace:     time.Minute,
		BatchSize:      10,
		PublishTimeout: time.Second,
	}
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) newDispatcher() *outbox.Dispatcher {
	return outbox.NewDispatcher(s.store, s.publisher, s.clock, s.cfg, testutil.DiscardLogger())
}

// commit appends a message the way a command does and returns it.
func (s *DispatcherTestSuite) commit(reservationID int64) *domain.Message {
	msg, err := domain.NewMessage(domain.SlotConfirmed{ReservationID: reservationID}, s.clock.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().Append(ctx, msg)
	}))
	return msg
}

func (s *DispatcherTestSuite) stored(m *domain.Message) *domain.Message {
	got, ok := s.store.Message(m.ID)
	s.Require().True(ok)
	return got
}

func (s *DispatcherTestSuite) TestDispatch_CallerRunsWhenQueueIsFull() {
	// no workers are started and the queue has no capacity
	d := s.newDispatcher()
	msg := s.commit(1)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	d.Dispatch(context.Background(), msg)

	got := s.stored(msg)
	s.Equal(domain.StatusPublished, got.Status)
	s.NotNil(got.PublishedAt)
}

func (s *DispatcherTestSuite) TestDispatch_Workers() {
	s.cfg.QueueSize = 16
	d := s.newDispatcher()
	d.Start()

	var published atomic.Int32
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Message) error {
			published.Add(1)
			return nil
		}).Times(5)

	var msgs []*domain.Message
	for i := int64(1); i <= 5; i++ {
		msgs = append(msgs, s.commit(i))
	}
	d.Dispatch(context.Background(), msgs...)

	s.Require().NoError(d.Stop(context.Background()))
	s.Equal(int32(5), published.Load())
	for _, m := range msgs {
		s.Equal(domain.StatusPublished, s.stored(m).Status)
	}
}

func (s *DispatcherTestSuite) TestDispatch_AfterStopLeavesRowPending() {
	d := s.newDispatcher()
	d.Start()
	s.Require().NoError(d.Stop(context.Background()))
	msg := s.commit(1)

	d.Dispatch(context.Background(), msg)

	s.Equal(domain.StatusPending, s.stored(msg).Status)
}

func (s *DispatcherTestSuite) TestDeliver_FailureCountsUntilFailed() {
	d := s.newDispatcher()
	msg := s.commit(1)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("nats: timeout")).Times(3)

	for i := 1; i <= 3; i++ {
		err := d.Deliver(context.Background(), msg, outbox.PathSweep)
		s.Error(err)
		s.Equal(i, s.stored(msg).RetryCount)
	}

	got := s.stored(msg)
	s.Equal(domain.StatusFailed, got.Status)
	s.Require().NotNil(got.LastError)
	s.Equal("nats: timeout", *got.LastError)
}

func (s *DispatcherTestSuite) TestDeliver_StaleCopiesEachCountOneAttempt() {
	d := s.newDispatcher()
	msg := s.commit(1)
	worker, sweep := *msg, *msg
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("nats: timeout")).Times(2)

	s.Error(d.Deliver(context.Background(), &worker, outbox.PathWorker))
	s.Error(d.Deliver(context.Background(), &sweep, outbox.PathSweep))

	got := s.stored(msg)
	s.Equal(2, got.RetryCount)
	s.Equal(domain.StatusPending, got.Status)
	s.Equal(2, sweep.RetryCount, "the caller sees the stored count")
}

func (s *DispatcherTestSuite) TestDeliver_DoesNotResurrectPublishedRow() {
	d := s.newDispatcher()
	msg := s.commit(1)
	stale := *msg

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	s.Require().NoError(d.Deliver(context.Background(), msg, outbox.PathWorker))

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("late failure"))
	s.Error(d.Deliver(context.Background(), &stale, outbox.PathSweep))

	got := s.stored(msg)
	s.Equal(domain.StatusPublished, got.Status)
	s.Zero(got.RetryCount)
}

func (s *DispatcherTestSuite) TestSweep() {
	d := s.newDispatcher()
	sweeper := outbox.NewRetrySweeper(s.store, d, s.clock, s.cfg, testutil.DiscardLogger())
	old := s.commit(1)
	s.clock.Add(2 * time.Minute)
	young := s.commit(2)

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *domain.Message) error {
			s.Equal(old.ID, m.ID)
			return nil
		})

	n, err := sweeper.Sweep(context.Background())

	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal(domain.StatusPublished, s.stored(old).Status)
	s.Equal(domain.StatusPending, s.stored(young).Status)
}

func (s *DispatcherTestSuite) TestSweep_SkipsFailedRows() {
	s.cfg.MaxRetries = 1
	d := s.newDispatcher()
	sweeper := outbox.NewRetrySweeper(s.store, d, s.clock, s.cfg, testutil.DiscardLogger())
	msg := s.commit(1)
	s.clock.Add(2 * time.Minute)

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("down")).Times(1)

	n, err := sweeper.Sweep(context.Background())
	s.Require().NoError(err)
	s.Zero(n)
	s.Equal(domain.StatusFailed, s.stored(msg).Status)

	n, err = sweeper.Sweep(context.Background())
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *DispatcherTestSuite) TestArchive() {
	s.cfg.ArchiveRetention = time.Hour
	d := s.newDispatcher()
	sweeper := outbox.NewRetrySweeper(s.store, d, s.clock, s.cfg, testutil.DiscardLogger())
	msg := s.commit(1)
	pending := s.commit(2)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	s.Require().NoError(d.Deliver(context.Background(), msg, outbox.PathWorker))

	n, err := sweeper.Archive(context.Background())
	s.Require().NoError(err)
	s.Zero(n)

	s.clock.Add(2 * time.Hour)
	n, err = sweeper.Archive(context.Background())

	s.Require().NoError(err)
	s.Equal(int64(1), n)
	_, ok := s.store.Message(msg.ID)
	s.False(ok)
	s.Equal(domain.StatusPending, s.stored(pending).Status)
}
