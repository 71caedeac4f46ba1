package commands

import (
	"context"
	"log/slog"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/errs"
)

// PaymentEventHandler turns payment outcomes into slot transitions.
// Redelivered events are absorbed by the idempotent reservation-id flows.
type PaymentEventHandler struct {
	slots  SlotCommands
	logger *slog.Logger
}

func NewPaymentEventHandler(slots SlotCommands, logger *slog.Logger) *PaymentEventHandler {
	return &PaymentEventHandler{
		slots:  slots,
		logger: logger.With("component", "payment_events"),
	}
}

func (h *PaymentEventHandler) HandlePaymentCompleted(ctx context.Context, evt outbox.PaymentCompleted) error {
	n, err := h.slots.ConfirmSlotsByReservationID(ctx, evt.ReservationID)
	if err != nil {
		if errs.Is(err, errs.ErrSlotNotFound) {
			// The reservation was already released, typically by the expiry reclaimer.
			h.logger.Warn("payment completed for reservation without slots",
				"reservation_id", evt.ReservationID,
				"payment_id", evt.PaymentID)
			return nil
		}
		return err
	}
	h.logger.Info("payment completed", "reservation_id", evt.ReservationID, "slots", n)
	return nil
}

func (h *PaymentEventHandler) HandlePaymentCancelled(ctx context.Context, evt outbox.PaymentCancelled) error {
	_, err := h.slots.CancelSlotsByReservationID(ctx, evt.ReservationID, outbox.ReasonPaymentCancelled)
	return err
}

func (h *PaymentEventHandler) HandleRefundCompleted(ctx context.Context, evt outbox.RefundCompleted) error {
	_, err := h.slots.CancelSlotsByReservationID(ctx, evt.ReservationID, outbox.ReasonRefundCompleted)
	return err
}
