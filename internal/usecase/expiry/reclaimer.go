package expiry

import (
	"context"
	"log/slog"
	"time"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/metrics"
	"room-slot-service/internal/usecase/shared"
)

const batchSize = 200

// Reclaimer returns PENDING slots whose reservation never completed to
// AVAILABLE. Each slot goes through Cancel and then Restore so the release
// takes the same validated transition as a user cancel, and the
// intermediate state is logged for audit.
type Reclaimer struct {
	uow        shared.UnitOfWork
	dispatcher shared.Dispatcher
	clock      clock.Clock
	ttl        time.Duration
	logger     *slog.Logger
}

func NewReclaimer(uow shared.UnitOfWork, dispatcher shared.Dispatcher, clk clock.Clock, cfg config.SlotConfig, logger *slog.Logger) *Reclaimer {
	return &Reclaimer{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
		ttl:        cfg.PendingExpiration(),
		logger:     logger.With("component", "expiry_reclaimer"),
	}
}

// Reclaim sweeps until no expired PENDING slot is left and returns how many
// were released. Zero is a normal outcome.
func (r *Reclaimer) Reclaim(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.reclaimBatch(ctx)
		total += n
		if err != nil {
			return total, err
		}
		if n < batchSize {
			break
		}
	}

	if total > 0 {
		r.logger.Info("expired pending slots reclaimed", "count", total)
	}
	return total, nil
}

func (r *Reclaimer) reclaimBatch(ctx context.Context) (int, error) {
	var msgs []*outbox.Message
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		msgs = msgs[:0]
		now := r.clock.Now()

		expired, err := tx.Slots().FindExpiredPendingForUpdate(ctx, now.Add(-r.ttl), batchSize)
		if err != nil {
			return err
		}

		for _, s := range expired {
			// Cancel clears the reservation id; keep it for the event.
			resID := s.ReservationID()
			if resID == nil {
				r.logger.Warn("pending slot without reservation id", "slot", s.Key().String())
				s.Restore(now)
				if err := tx.Slots().Save(ctx, s); err != nil {
					return err
				}
				continue
			}
			reservationID := *resID

			if err := s.Cancel(now); err != nil {
				return err
			}
			r.logger.Info("expired pending slot cancelled",
				"slot", s.Key().String(),
				"reservation_id", reservationID,
				"status", s.Status().String())
			s.Restore(now)

			if err := tx.Slots().Save(ctx, s); err != nil {
				return err
			}

			msg, err := outbox.NewMessage(outbox.SlotRestored{
				ReservationID: reservationID,
				RestoreReason: outbox.ReasonPendingExpired,
			}, now)
			if err != nil {
				return err
			}
			if err := tx.Outbox().Append(ctx, msg); err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if len(msgs) == 0 {
		return 0, nil
	}
	metrics.SlotsReclaimedTotal.Add(float64(len(msgs)))
	r.dispatcher.Dispatch(ctx, msgs...)
	return len(msgs), nil
}
