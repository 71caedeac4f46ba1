package generation

import (
	"context"
	"log/slog"

	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/metrics"
	"room-slot-service/internal/usecase/shared"
)

// Engine materializes and retires slots over the rolling window. Every date
// is written in its own transaction so a failure or timeout only loses the
// date in flight. Each of those transactions reads the policy row FOR UPDATE,
// so a job started under an older policy writes the current one from then on.
type Engine struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	cfg    config.SlotConfig
	logger *slog.Logger
}

func NewEngine(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		uow:    uow,
		clock:  clk,
		cfg:    cfg.Slot,
		logger: logger.With("component", "generation_engine"),
	}
}

// Window returns the first and last date currently kept materialized.
func (e *Engine) Window() (civil.Date, civil.Date) {
	today := clock.Today(e.clock)
	return today, today.AddDays(e.cfg.WindowDays - 1)
}

// GenerateRange inserts the slots the room's policy yields for every date in
// [start, end]. Keys that already exist are left untouched.
func (e *Engine) GenerateRange(ctx context.Context, roomID int64, start, end civil.Date) (int, error) {
	if end.Before(start) {
		return 0, errs.Mark(errs.Newf("range end %s is before start %s", end, start), errs.ErrValidation)
	}
	total, err := e.eachDate(ctx, roomID, start, end, e.generateDate)
	if err != nil {
		return total, errs.Wrapf(err, "generate room %d", roomID)
	}

	e.logger.Info("slot range generated",
		"room_id", roomID,
		"start_date", start.String(),
		"end_date", end.String(),
		"inserted", total)
	return total, nil
}

// GenerateAllRooms extends every room's window to date. A room that fails is
// logged and skipped.
func (e *Engine) GenerateAllRooms(ctx context.Context, date civil.Date) (int, error) {
	var roomIDs []int64
	err := e.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		roomIDs, err = tx.Policies().ListRoomIDs(ctx)
		return err
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	total, failed := 0, 0
	for _, roomID := range roomIDs {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		n, err := e.GenerateRange(ctx, roomID, date, date)
		if err != nil {
			failed++
			e.logger.Error("daily generation failed for room",
				"room_id", roomID,
				"date", date.String(),
				"error", err.Error())
			continue
		}
		total += n
	}

	e.logger.Info("daily generation finished",
		"date", date.String(),
		"rooms", len(roomIDs),
		"failed_rooms", failed,
		"inserted", total)
	return total, nil
}

// RetireBefore deletes every slot dated before cutoff.
func (e *Engine) RetireBefore(ctx context.Context, cutoff civil.Date) (int64, error) {
	var deleted int64
	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		deleted, err = tx.Slots().DeleteBefore(ctx, cutoff)
		return err
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	metrics.SlotsRetiredTotal.Add(float64(deleted))
	e.logger.Info("past slots retired", "cutoff", cutoff.String(), "deleted", deleted)
	return deleted, nil
}

// Regenerate rebuilds the AVAILABLE surface of [start, end] from the current
// policy. Slots in any other state are commitments: they are neither deleted
// nor shadowed by a regenerated slot with the same key, even when the new
// schedule no longer contains their time.
func (e *Engine) Regenerate(ctx context.Context, roomID int64, start, end civil.Date) (int, error) {
	if end.Before(start) {
		return 0, errs.Mark(errs.Newf("range end %s is before start %s", end, start), errs.ErrValidation)
	}
	total, err := e.eachDate(ctx, roomID, start, end, e.regenerateDate)
	if err != nil {
		return total, errs.Wrapf(err, "regenerate room %d", roomID)
	}

	e.logger.Info("slot range regenerated",
		"room_id", roomID,
		"start_date", start.String(),
		"end_date", end.String(),
		"inserted", total)
	return total, nil
}

func (e *Engine) regenerateDate(ctx context.Context, tx shared.Tx, p *policy.OperatingPolicy, date civil.Date) (int, error) {
	committed, err := tx.Slots().CommittedKeys(ctx, p.RoomID(), date, date)
	if err != nil {
		return 0, err
	}
	preserved := make(map[slot.Key]struct{}, len(committed))
	for _, k := range committed {
		preserved[k] = struct{}{}
	}

	if _, err := tx.Slots().DeleteAvailableInRange(ctx, p.RoomID(), date, date); err != nil {
		return 0, err
	}
	return e.insertGenerated(ctx, tx, p, date, preserved)
}

// PropagateClosedDates brings existing slots in [start, end] in line with the
// policy's closed dates: AVAILABLE slots that are now closed become CLOSED,
// CLOSED slots that are no longer closed become AVAILABLE, and slots the
// policy yields but that do not exist yet (a re-opened full day) are
// inserted. PENDING and RESERVED slots are never touched.
func (e *Engine) PropagateClosedDates(ctx context.Context, roomID int64, start, end civil.Date) (int, error) {
	total, err := e.eachDate(ctx, roomID, start, end, e.propagateDate)
	if err != nil {
		return total, errs.Wrapf(err, "propagate closed dates for room %d", roomID)
	}

	e.logger.Info("closed dates propagated",
		"room_id", roomID,
		"start_date", start.String(),
		"end_date", end.String(),
		"changed", total)
	return total, nil
}

func (e *Engine) propagateDate(ctx context.Context, tx shared.Tx, p *policy.OperatingPolicy, date civil.Date) (int, error) {
	existing, err := tx.Slots().FindByDateForUpdate(ctx, p.RoomID(), date)
	if err != nil {
		return 0, err
	}

	changed := 0
	now := e.clock.Now()
	for _, s := range existing {
		closed := p.IsClosedAt(date, s.StartTime())
		switch {
		case closed && s.Status() == slot.StatusAvailable:
			if err := s.MarkAsClosed(now); err != nil {
				return 0, err
			}
		case !closed && s.Status() == slot.StatusClosed:
			if err := s.MarkAsAvailable(now); err != nil {
				return 0, err
			}
		default:
			continue
		}
		if err := tx.Slots().Save(ctx, s); err != nil {
			return 0, err
		}
		changed++
	}

	inserted, err := e.insertGenerated(ctx, tx, p, date, nil)
	if err != nil {
		return 0, err
	}
	return changed + inserted, nil
}

func (e *Engine) generateDate(ctx context.Context, tx shared.Tx, p *policy.OperatingPolicy, date civil.Date) (int, error) {
	return e.insertGenerated(ctx, tx, p, date, nil)
}

func (e *Engine) insertGenerated(
	ctx context.Context,
	tx shared.Tx,
	p *policy.OperatingPolicy,
	date civil.Date,
	preserved map[slot.Key]struct{},
) (int, error) {
	generated, err := p.GenerateSlotsFor(date, p.SlotUnit(), e.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, errs.ErrValidation)
	}
	if len(preserved) > 0 {
		kept := generated[:0]
		for _, s := range generated {
			if _, ok := preserved[s.Key()]; ok {
				continue
			}
			kept = append(kept, s)
		}
		generated = kept
	}
	if len(generated) == 0 {
		return 0, nil
	}

	inserted, err := tx.Slots().InsertMissing(ctx, generated)
	if err != nil {
		return 0, err
	}
	metrics.SlotsGeneratedTotal.Add(float64(inserted))
	return inserted, nil
}

type dateOp func(ctx context.Context, tx shared.Tx, p *policy.OperatingPolicy, date civil.Date) (int, error)

// eachDate applies op to every date in [start, end], one transaction per
// date, with the policy row locked and read inside that transaction.
func (e *Engine) eachDate(ctx context.Context, roomID int64, start, end civil.Date, op dateOp) (int, error) {
	total := 0
	for _, date := range civil.DatesBetween(start, end) {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		var n int
		err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			p, err := tx.Policies().FindByRoomIDForUpdate(ctx, roomID)
			if err != nil {
				return err
			}
			n, err = op(ctx, tx, p, date)
			return err
		})
		if err != nil {
			return total, errs.Wrapf(err, "on %s", date)
		}
		total += n
	}
	return total, nil
}
