package queries

import (
	"context"

	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/usecase/shared"
)

type SlotQueries interface {
	ListSlots(ctx context.Context, roomID int64, date civil.Date) ([]*SlotView, error)
	GetPolicy(ctx context.Context, roomID int64) (*PolicyView, error)
}

type slotQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSlotQueries(uow shared.UnitOfWork) SlotQueries {
	return &slotQueriesImpl{uow: uow}
}

func (q *slotQueriesImpl) ListSlots(ctx context.Context, roomID int64, date civil.Date) ([]*SlotView, error) {
	var views []*SlotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		slots, err := tx.Slots().ListByRoomAndDate(ctx, roomID, date)
		if err != nil {
			return err
		}
		views = make([]*SlotView, 0, len(slots))
		for _, s := range slots {
			views = append(views, slotView(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *slotQueriesImpl) GetPolicy(ctx context.Context, roomID int64) (*PolicyView, error) {
	var view *PolicyView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Policies().FindByRoomID(ctx, roomID)
		if err != nil {
			return err
		}
		view = policyView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
