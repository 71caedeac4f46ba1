package commands

import (
	"context"
	"log/slog"

	"room-slot-service/internal/domain/job"
	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/shared"
)

// JobLauncher starts request-tracked background work once the request row
// has been committed.
type JobLauncher interface {
	SubmitGeneration(requestID int64)
	SubmitClosedDateUpdate(requestID int64)
}

type PolicyCommands interface {
	SetupPolicy(ctx context.Context, req SetupPolicyRequest) (*job.GenerationRequest, error)
	UpdateOperatingHours(ctx context.Context, req UpdateOperatingHoursRequest) (*job.GenerationRequest, error)
	SetClosedDates(ctx context.Context, req SetClosedDatesRequest) (*job.ClosedDateUpdateRequest, error)
}

type SetupPolicyRequest struct {
	RoomID      int64
	Weekly      policy.WeeklySchedule
	Recurrence  policy.RecurrenceRule
	SlotUnit    slot.Unit
	ClosedDates []policy.ClosedDateRange
}

type UpdateOperatingHoursRequest struct {
	RoomID   int64
	Weekly   policy.WeeklySchedule
	SlotUnit slot.Unit
	// Recurrence is left unchanged when empty.
	Recurrence policy.RecurrenceRule
}

type SetClosedDatesRequest struct {
	RoomID      int64
	ClosedDates []policy.ClosedDateRange
}

type policyCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher shared.Dispatcher
	launcher   JobLauncher
	clock      clock.Clock
	windowDays int
	logger     *slog.Logger
}

func NewPolicyCommands(
	uow shared.UnitOfWork,
	dispatcher shared.Dispatcher,
	launcher JobLauncher,
	clk clock.Clock,
	cfg config.SlotConfig,
	logger *slog.Logger,
) PolicyCommands {
	return &policyCommandsImpl{
		uow:        uow,
		dispatcher: dispatcher,
		launcher:   launcher,
		clock:      clk,
		windowDays: cfg.WindowDays,
		logger:     logger.With("component", "policy_commands"),
	}
}

func (c *policyCommandsImpl) window() (civil.Date, civil.Date) {
	today := clock.Today(c.clock)
	return today, today.AddDays(c.windowDays - 1)
}

// SetupPolicy stores the room's first policy and asks for the window to be
// materialized in the background.
func (c *policyCommandsImpl) SetupPolicy(ctx context.Context, req SetupPolicyRequest) (*job.GenerationRequest, error) {
	if req.SlotUnit == "" {
		req.SlotUnit = slot.UnitHour
	}
	if req.Recurrence == "" {
		req.Recurrence = policy.EveryWeek
	}

	now := c.clock.Now()
	p, err := policy.NewOperatingPolicy(req.RoomID, req.Weekly, req.Recurrence, req.SlotUnit, req.ClosedDates, now)
	if err != nil {
		return nil, classify(err)
	}

	start, end := c.window()
	var (
		genReq *job.GenerationRequest
		msg    *outbox.Message
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Policies().Create(ctx, p); err != nil {
			return err
		}
		genReq, msg, err = c.requestGeneration(ctx, tx, req.RoomID, job.KindInitial, start, end)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("operating policy created",
		"room_id", req.RoomID,
		"request_id", genReq.ID,
		"slot_unit", req.SlotUnit.String())
	c.dispatcher.Dispatch(ctx, msg)
	c.launcher.SubmitGeneration(genReq.ID)
	return genReq, nil
}

// UpdateOperatingHours replaces the weekly schedule and slot unit, then asks
// for the window to be regenerated. Committed slots survive regeneration.
func (c *policyCommandsImpl) UpdateOperatingHours(ctx context.Context, req UpdateOperatingHoursRequest) (*job.GenerationRequest, error) {
	start, end := c.window()
	var (
		genReq *job.GenerationRequest
		msg    *outbox.Message
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Policies().FindByRoomIDForUpdate(ctx, req.RoomID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if err := p.UpdateWeeklySchedule(req.Weekly, now); err != nil {
			return classify(err)
		}
		if req.SlotUnit != "" {
			if err := p.UpdateSlotUnit(req.SlotUnit, now); err != nil {
				return classify(err)
			}
		}
		if req.Recurrence != "" {
			if err := p.UpdateRecurrence(req.Recurrence, now); err != nil {
				return classify(err)
			}
		}
		if err := tx.Policies().Update(ctx, p); err != nil {
			return err
		}

		genReq, msg, err = c.requestGeneration(ctx, tx, req.RoomID, job.KindRegeneration, start, end)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("operating hours updated", "room_id", req.RoomID, "request_id", genReq.ID)
	c.dispatcher.Dispatch(ctx, msg)
	c.launcher.SubmitGeneration(genReq.ID)
	return genReq, nil
}

func (c *policyCommandsImpl) requestGeneration(
	ctx context.Context,
	tx shared.Tx,
	roomID int64,
	kind job.GenerationKind,
	start, end civil.Date,
) (*job.GenerationRequest, *outbox.Message, error) {
	now := c.clock.Now()
	genReq, err := job.NewGenerationRequest(roomID, kind, start, end, now)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrValidation)
	}
	if _, err := tx.GenerationRequests().Create(ctx, genReq); err != nil {
		return nil, nil, err
	}
	msg, err := appendEvent(ctx, tx, outbox.SlotGenerationRequested{
		RequestID: genReq.ID,
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
	}, now)
	if err != nil {
		return nil, nil, err
	}
	return genReq, msg, nil
}

// SetClosedDates replaces the room's closed-date list and asks for the
// change to be pushed onto the materialized slots.
func (c *policyCommandsImpl) SetClosedDates(ctx context.Context, req SetClosedDatesRequest) (*job.ClosedDateUpdateRequest, error) {
	if req.ClosedDates == nil {
		req.ClosedDates = []policy.ClosedDateRange{}
	}

	var (
		cdReq *job.ClosedDateUpdateRequest
		msg   *outbox.Message
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Policies().FindByRoomIDForUpdate(ctx, req.RoomID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if err := p.UpdateClosedDates(req.ClosedDates, now); err != nil {
			return classify(err)
		}
		if err := tx.Policies().Update(ctx, p); err != nil {
			return err
		}

		cdReq = job.NewClosedDateUpdateRequest(req.RoomID, now)
		if _, err := tx.ClosedDateRequests().Create(ctx, cdReq); err != nil {
			return err
		}
		msg, err = appendEvent(ctx, tx, outbox.ClosedDateUpdateRequested{
			RequestID: cdReq.ID,
			RoomID:    req.RoomID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("closed dates updated",
		"room_id", req.RoomID,
		"request_id", cdReq.ID,
		"ranges", len(req.ClosedDates))
	c.dispatcher.Dispatch(ctx, msg)
	c.launcher.SubmitClosedDateUpdate(cdReq.ID)
	return cdReq, nil
}
