//go:build unit

package commands_test

import (
	"context"
	"testing"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/commands"
	"room-slot-service/tests/common/testutil"
	commandsmock "room-slot-service/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPaymentEventHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("completed confirms the reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		slots := commandsmock.NewMockSlotCommands(ctrl)
		slots.EXPECT().ConfirmSlotsByReservationID(ctx, int64(11)).Return(2, nil)

		h := commands.NewPaymentEventHandler(slots, testutil.DiscardLogger())

		assert.NoError(t, h.HandlePaymentCompleted(ctx, outbox.PaymentCompleted{PaymentID: 1, ReservationID: 11}))
	})

	t.Run("completed after the hold was reclaimed is acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		slots := commandsmock.NewMockSlotCommands(ctrl)
		slots.EXPECT().ConfirmSlotsByReservationID(ctx, int64(11)).
			Return(0, errs.Mark(errs.New("no slots"), errs.ErrSlotNotFound))

		h := commands.NewPaymentEventHandler(slots, testutil.DiscardLogger())

		assert.NoError(t, h.HandlePaymentCompleted(ctx, outbox.PaymentCompleted{ReservationID: 11}))
	})

	t.Run("completed propagates other failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		slots := commandsmock.NewMockSlotCommands(ctrl)
		slots.EXPECT().ConfirmSlotsByReservationID(ctx, int64(11)).
			Return(0, errs.Mark(errs.New("tx aborted"), errs.ErrDatabaseOperationFailed))

		h := commands.NewPaymentEventHandler(slots, testutil.DiscardLogger())

		assert.Error(t, h.HandlePaymentCompleted(ctx, outbox.PaymentCompleted{ReservationID: 11}))
	})

	t.Run("cancelled and refunded release with their reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		slots := commandsmock.NewMockSlotCommands(ctrl)
		slots.EXPECT().CancelSlotsByReservationID(ctx, int64(12), outbox.ReasonPaymentCancelled).Return(1, nil)
		slots.EXPECT().CancelSlotsByReservationID(ctx, int64(13), outbox.ReasonRefundCompleted).Return(0, nil)

		h := commands.NewPaymentEventHandler(slots, testutil.DiscardLogger())

		assert.NoError(t, h.HandlePaymentCancelled(ctx, outbox.PaymentCancelled{ReservationID: 12}))
		assert.NoError(t, h.HandleRefundCompleted(ctx, outbox.RefundCompleted{ReservationID: 13}))
	})
}
