package commands

import (
	"context"
	"errors"
	"time"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/shared"
)

// appendEvent writes evt to the outbox inside tx. The returned message is
// handed to the dispatcher once the transaction has committed.
func appendEvent(ctx context.Context, tx shared.Tx, evt outbox.Event, now time.Time) (*outbox.Message, error) {
	msg, err := outbox.NewMessage(evt, now)
	if err != nil {
		return nil, err
	}
	if err := tx.Outbox().Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// classify marks domain errors with the usecase sentinel the handler maps.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, slot.ErrInvalidStateTransition):
		return errs.Mark(err, errs.ErrSlotConflict)
	case errors.Is(err, slot.ErrInvalidSlot),
		errors.Is(err, slot.ErrReservationIDRequired),
		errors.Is(err, policy.ErrInvalidPolicy),
		errors.Is(err, policy.ErrInvalidClosedDate),
		errors.Is(err, policy.ErrNilArgument):
		return errs.Mark(err, errs.ErrValidation)
	default:
		return err
	}
}
