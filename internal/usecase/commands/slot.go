package commands

import (
	"context"
	"log/slog"
	"sort"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/shared"
)

type SlotCommands interface {
	MarkSlotAsPending(ctx context.Context, key slot.Key, reservationID int64) error
	ConfirmSlot(ctx context.Context, key slot.Key) error
	CancelSlot(ctx context.Context, key slot.Key) error
	// MarkMultipleSlotsAsPending returns how many distinct slots were held.
	MarkMultipleSlotsAsPending(ctx context.Context, roomID int64, date civil.Date, times []civil.TimeOfDay, reservationID int64) (int, error)
	CancelSlotsByReservationID(ctx context.Context, reservationID int64, reason string) (int, error)
	ConfirmSlotsByReservationID(ctx context.Context, reservationID int64) (int, error)
}

type slotCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher shared.Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewSlotCommands(uow shared.UnitOfWork, dispatcher shared.Dispatcher, clk clock.Clock, logger *slog.Logger) SlotCommands {
	return &slotCommandsImpl{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
		logger:     logger.With("component", "slot_commands"),
	}
}

func (c *slotCommandsImpl) MarkSlotAsPending(ctx context.Context, key slot.Key, reservationID int64) error {
	_, err := c.MarkMultipleSlotsAsPending(ctx, key.RoomID, key.Date, []civil.TimeOfDay{key.Time}, reservationID)
	return err
}

func (c *slotCommandsImpl) ConfirmSlot(ctx context.Context, key slot.Key) error {
	return c.mutateOne(ctx, key, func(s *slot.TimeSlot) (outbox.Event, error) {
		if err := s.Confirm(c.clock.Now()); err != nil {
			return nil, err
		}
		return outbox.SlotConfirmed{ReservationID: *s.ReservationID()}, nil
	})
}

func (c *slotCommandsImpl) CancelSlot(ctx context.Context, key slot.Key) error {
	return c.mutateOne(ctx, key, func(s *slot.TimeSlot) (outbox.Event, error) {
		var reservationID int64
		if id := s.ReservationID(); id != nil {
			reservationID = *id
		}
		if err := s.Cancel(c.clock.Now()); err != nil {
			return nil, err
		}
		return outbox.SlotCancelled{ReservationID: reservationID, CancelReason: outbox.ReasonUserCancelled}, nil
	})
}

// mutateOne locks one slot, applies fn and records the event fn returns, all
// in one transaction.
func (c *slotCommandsImpl) mutateOne(ctx context.Context, key slot.Key, fn func(s *slot.TimeSlot) (outbox.Event, error)) error {
	var msg *outbox.Message
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindForUpdate(ctx, key)
		if err != nil {
			return err
		}
		evt, err := fn(s)
		if err != nil {
			return classify(err)
		}
		if err := tx.Slots().Save(ctx, s); err != nil {
			return err
		}
		msg, err = appendEvent(ctx, tx, evt, c.clock.Now())
		return err
	})
	if err != nil {
		return err
	}
	c.dispatcher.Dispatch(ctx, msg)
	return nil
}

// MarkMultipleSlotsAsPending is all-or-nothing: every targeted row is locked
// before any of them is inspected, and nothing is written unless all of them
// are AVAILABLE.
func (c *slotCommandsImpl) MarkMultipleSlotsAsPending(
	ctx context.Context,
	roomID int64,
	date civil.Date,
	times []civil.TimeOfDay,
	reservationID int64,
) (int, error) {
	if reservationID <= 0 {
		return 0, errs.Mark(slot.ErrReservationIDRequired, errs.ErrValidation)
	}
	times = uniqueSortedTimes(times)
	if len(times) == 0 {
		return 0, errs.Mark(errs.New("at least one start time is required"), errs.ErrValidation)
	}

	var msg *outbox.Message
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slots, err := tx.Slots().FindManyForUpdate(ctx, roomID, date, times)
		if err != nil {
			return err
		}
		if len(slots) != len(times) {
			return errs.Mark(
				errs.Newf("room %d has %d of %d requested slots on %s", roomID, len(slots), len(times), date),
				errs.ErrSlotNotFound,
			)
		}

		for _, s := range slots {
			if !s.IsAvailable() {
				return errs.Mark(
					errs.Newf("slot %s is %s", s.Key(), s.Status()),
					errs.ErrSlotConflict,
				)
			}
		}

		now := c.clock.Now()
		for _, s := range slots {
			if err := s.MarkAsPending(reservationID, now); err != nil {
				return classify(err)
			}
			if err := tx.Slots().Save(ctx, s); err != nil {
				return err
			}
		}

		msg, err = appendEvent(ctx, tx, outbox.SlotReserved{
			RoomID:        roomID,
			SlotDate:      date,
			StartTimes:    times,
			ReservationID: reservationID,
		}, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	c.logger.Info("slots marked pending",
		"room_id", roomID,
		"date", date.String(),
		"slots", len(times),
		"reservation_id", reservationID)
	c.dispatcher.Dispatch(ctx, msg)
	return len(times), nil
}

// CancelSlotsByReservationID releases every slot tagged with the reservation.
// Slots that are already AVAILABLE are skipped, so repeating the call is harmless.
func (c *slotCommandsImpl) CancelSlotsByReservationID(ctx context.Context, reservationID int64, reason string) (int, error) {
	if reason == "" {
		reason = outbox.ReasonUserCancelled
	}

	var (
		msg       *outbox.Message
		cancelled int
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		msg, cancelled = nil, 0
		slots, err := tx.Slots().FindByReservationIDForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		for _, s := range slots {
			if s.IsAvailable() {
				continue
			}
			if err := s.Cancel(now); err != nil {
				return classify(err)
			}
			if err := tx.Slots().Save(ctx, s); err != nil {
				return err
			}
			cancelled++
		}
		if cancelled == 0 {
			return nil
		}

		msg, err = appendEvent(ctx, tx, outbox.SlotCancelled{
			ReservationID: reservationID,
			CancelReason:  reason,
		}, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	if msg != nil {
		c.logger.Info("reservation slots cancelled",
			"reservation_id", reservationID,
			"slots", cancelled,
			"reason", reason)
		c.dispatcher.Dispatch(ctx, msg)
	}
	return cancelled, nil
}

// ConfirmSlotsByReservationID confirms the reservation's PENDING slots.
// RESERVED slots are skipped so a redelivered payment event is a no-op.
func (c *slotCommandsImpl) ConfirmSlotsByReservationID(ctx context.Context, reservationID int64) (int, error) {
	var (
		msg       *outbox.Message
		confirmed int
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		msg, confirmed = nil, 0
		slots, err := tx.Slots().FindByReservationIDForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			return errs.Mark(errs.Newf("no slots hold reservation %d", reservationID), errs.ErrSlotNotFound)
		}

		now := c.clock.Now()
		for _, s := range slots {
			if s.Status() == slot.StatusReserved {
				continue
			}
			if err := s.Confirm(now); err != nil {
				return classify(err)
			}
			if err := tx.Slots().Save(ctx, s); err != nil {
				return err
			}
			confirmed++
		}
		if confirmed == 0 {
			return nil
		}

		msg, err = appendEvent(ctx, tx, outbox.SlotConfirmed{ReservationID: reservationID}, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	if msg != nil {
		c.logger.Info("reservation slots confirmed", "reservation_id", reservationID, "slots", confirmed)
		c.dispatcher.Dispatch(ctx, msg)
	}
	return confirmed, nil
}

func uniqueSortedTimes(times []civil.TimeOfDay) []civil.TimeOfDay {
	seen := make(map[civil.TimeOfDay]struct{}, len(times))
	out := make([]civil.TimeOfDay, 0, len(times))
	for _, t := range times {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
