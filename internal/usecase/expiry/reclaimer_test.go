//go:build unit

package expiry_test

import (
	"context"
	"testing"
	"time"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/expiry"
	"room-slot-service/tests/common/builder"
	"room-slot-service/tests/common/memstore"
	"room-slot-service/tests/common/testutil"
	sharedmock "room-slot-service/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var heldAt = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*expiry.Reclaimer, *memstore.Store, *clock.MockClock, *sharedmock.MockDispatcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := memstore.New()
	clk := clock.NewMockClock(heldAt)
	dispatcher := sharedmock.NewMockDispatcher(ctrl)
	r := expiry.NewReclaimer(store, dispatcher, clk, config.SlotConfig{PendingExpirationMinutes: 10}, testutil.DiscardLogger())
	return r, store, clk, dispatcher
}

func TestReclaimer_Reclaim(t *testing.T) {
	t.Run("expired holds become available with one event each", func(t *testing.T) {
		r, store, clk, dispatcher := setup(t)
		expired := builder.NewSlotBuilder().Pending(1, heldAt)
		expiredToo := builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
			b.StartTime = builder.MustTime("10:00")
		}).Pending(1, heldAt)
		fresh := builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
			b.StartTime = builder.MustTime("11:00")
		}).Pending(2, heldAt.Add(5*time.Minute))
		reserved := builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
			b.StartTime = builder.MustTime("12:00")
		}).Reserved(3)
		for _, b := range []*builder.SlotBuilder{expired, expiredToo, fresh, reserved} {
			store.PutSlot(b.BuildDomain())
		}

		clk.Set(heldAt.Add(10*time.Minute + time.Second))
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any())

		n, err := r.Reclaim(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, n)

		for _, b := range []*builder.SlotBuilder{expired, expiredToo} {
			ts, _ := store.Slot(b.Key())
			assert.Equal(t, slot.StatusAvailable, ts.Status())
			assert.Nil(t, ts.ReservationID())
			assert.Equal(t, clk.Now(), ts.UpdatedAt())
		}
		ts, _ := store.Slot(fresh.Key())
		assert.Equal(t, slot.StatusPending, ts.Status())
		ts, _ = store.Slot(reserved.Key())
		assert.Equal(t, slot.StatusReserved, ts.Status())

		msgs := store.Messages()
		require.Len(t, msgs, 2)
		for _, m := range msgs {
			assert.Equal(t, outbox.TopicSlotRestored, m.Topic)
			assert.JSONEq(t, `{"reservationId":"1","restoreReason":"PENDING_EXPIRED"}`, string(m.Payload))
		}
	})

	t.Run("hold exactly at the ttl is kept", func(t *testing.T) {
		r, store, clk, _ := setup(t)
		store.PutSlot(builder.NewSlotBuilder().Pending(1, heldAt).BuildDomain())
		clk.Set(heldAt.Add(10 * time.Minute))

		n, err := r.Reclaim(context.Background())

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, store.Messages())
	})

	t.Run("store failure", func(t *testing.T) {
		r, store, _, _ := setup(t)
		store.FailWith = errs.New("connection refused")

		_, err := r.Reclaim(context.Background())

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}
