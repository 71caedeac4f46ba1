package queries

import (
	"context"

	"room-slot-service/internal/usecase/shared"
)

type RequestQueries interface {
	GetGenerationRequest(ctx context.Context, id int64) (*RequestView, error)
	GetClosedDateUpdateRequest(ctx context.Context, id int64) (*RequestView, error)
}

type requestQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewRequestQueries(uow shared.UnitOfWork) RequestQueries {
	return &requestQueriesImpl{uow: uow}
}

func (q *requestQueriesImpl) GetGenerationRequest(ctx context.Context, id int64) (*RequestView, error) {
	var view *RequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.GenerationRequests().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = trackingView(r.ID, r.RoomID, r.Tracking)
		view.Kind = string(r.Kind)
		start, end := r.StartDate, r.EndDate
		view.StartDate, view.EndDate = &start, &end
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) GetClosedDateUpdateRequest(ctx context.Context, id int64) (*RequestView, error) {
	var view *RequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.ClosedDateRequests().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = trackingView(r.ID, r.RoomID, r.Tracking)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
