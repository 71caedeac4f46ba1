package repository

import (
	"context"
	"time"

	"room-slot-service/internal/domain/job"
	"room-slot-service/internal/infra"
	"room-slot-service/internal/infra/repository/converter"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type GenerationRequestQueries interface {
	CreateGenerationRequest(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateGenerationRequestParams) (int64, error)
	GetGenerationRequest(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.GenerationRequest, error)
	GetGenerationRequestForUpdate(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.GenerationRequest, error)
	ListStalledGenerationRequests(ctx context.Context, db sqlc.DBTX, arg sqlc.ListStalledGenerationRequestsParams) ([]sqlc.GenerationRequest, error)
	UpdateGenerationRequest(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateGenerationRequestParams) (int64, error)
	DeleteFinishedGenerationRequestsBefore(ctx context.Context, db sqlc.DBTX, completedAt pgtype.Timestamptz) (int64, error)
}

type GenerationRequestRepository struct {
	queries GenerationRequestQueries
	db      sqlc.DBTX
}

func NewGenerationRequestRepository(queries GenerationRequestQueries, db sqlc.DBTX) *GenerationRequestRepository {
	return &GenerationRequestRepository{
		queries: queries,
		db:      db,
	}
}

func (r *GenerationRequestRepository) Create(ctx context.Context, req *job.GenerationRequest) (int64, error) {
	id, err := r.queries.CreateGenerationRequest(ctx, r.db, sqlc.CreateGenerationRequestParams{
		RoomID:      req.RoomID,
		Kind:        string(req.Kind),
		StartDate:   pgconv.DateToPgtype(req.StartDate),
		EndDate:     pgconv.DateToPgtype(req.EndDate),
		Status:      req.Status.String(),
		RequestedAt: pgconv.TimeToPgtype(req.RequestedAt),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create generation request", err)
	}
	req.ID = id
	return id, nil
}

func (r *GenerationRequestRepository) FindByID(ctx context.Context, id int64) (*job.GenerationRequest, error) {
	row, err := r.queries.GetGenerationRequest(ctx, r.db, id)
	if err != nil {
		return nil, wrapRequestFindErr("generation request", err)
	}
	return converter.GenerationRequestFromInfra(row), nil
}

func (r *GenerationRequestRepository) FindByIDForUpdate(ctx context.Context, id int64) (*job.GenerationRequest, error) {
	row, err := r.queries.GetGenerationRequestForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapRequestFindErr("generation request", err)
	}
	return converter.GenerationRequestFromInfra(row), nil
}

// ListStalledForUpdate locks unfinished requests nobody has advanced since
// before, skipping rows another transaction holds.
func (r *GenerationRequestRepository) ListStalledForUpdate(ctx context.Context, before time.Time, limit int) ([]*job.GenerationRequest, error) {
	rows, err := r.queries.ListStalledGenerationRequests(ctx, r.db, sqlc.ListStalledGenerationRequestsParams{
		StalledBefore: pgconv.TimeToPgtype(before),
		MaxRows:       int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stalled generation requests", err)
	}
	out := make([]*job.GenerationRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.GenerationRequestFromInfra(row))
	}
	return out, nil
}

func (r *GenerationRequestRepository) Update(ctx context.Context, req *job.GenerationRequest) error {
	n, err := r.queries.UpdateGenerationRequest(ctx, r.db, converter.GenerationRequestToUpdateParams(req))
	if err != nil {
		return infra.WrapRepoErr("failed to update generation request", err)
	}
	if n == 0 {
		return errs.Mark(infra.WrapRepoErr("generation request vanished", nil, infra.KindNotFound), errs.ErrRequestNotFound)
	}
	return nil
}

func (r *GenerationRequestRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteFinishedGenerationRequestsBefore(ctx, r.db, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete finished generation requests", err)
	}
	return n, nil
}

type ClosedDateRequestQueries interface {
	CreateClosedDateUpdateRequest(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateClosedDateUpdateRequestParams) (int64, error)
	GetClosedDateUpdateRequest(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.ClosedDateUpdateRequest, error)
	GetClosedDateUpdateRequestForUpdate(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.ClosedDateUpdateRequest, error)
	ListStalledClosedDateUpdateRequests(ctx context.Context, db sqlc.DBTX, arg sqlc.ListStalledClosedDateUpdateRequestsParams) ([]sqlc.ClosedDateUpdateRequest, error)
	UpdateClosedDateUpdateRequest(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateClosedDateUpdateRequestParams) (int64, error)
	DeleteFinishedClosedDateUpdateRequestsBefore(ctx context.Context, db sqlc.DBTX, completedAt pgtype.Timestamptz) (int64, error)
}

type ClosedDateRequestRepository struct {
	queries ClosedDateRequestQueries
	db      sqlc.DBTX
}

func NewClosedDateRequestRepository(queries ClosedDateRequestQueries, db sqlc.DBTX) *ClosedDateRequestRepository {
	return &ClosedDateRequestRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ClosedDateRequestRepository) Create(ctx context.Context, req *job.ClosedDateUpdateRequest) (int64, error) {
	id, err := r.queries.CreateClosedDateUpdateRequest(ctx, r.db, sqlc.CreateClosedDateUpdateRequestParams{
		RoomID:      req.RoomID,
		Status:      req.Status.String(),
		RequestedAt: pgconv.TimeToPgtype(req.RequestedAt),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create closed-date update request", err)
	}
	req.ID = id
	return id, nil
}

func (r *ClosedDateRequestRepository) FindByID(ctx context.Context, id int64) (*job.ClosedDateUpdateRequest, error) {
	row, err := r.queries.GetClosedDateUpdateRequest(ctx, r.db, id)
	if err != nil {
		return nil, wrapRequestFindErr("closed-date update request", err)
	}
	return converter.ClosedDateRequestFromInfra(row), nil
}

func (r *ClosedDateRequestRepository) FindByIDForUpdate(ctx context.Context, id int64) (*job.ClosedDateUpdateRequest, error) {
	row, err := r.queries.GetClosedDateUpdateRequestForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapRequestFindErr("closed-date update request", err)
	}
	return converter.ClosedDateRequestFromInfra(row), nil
}

func (r *ClosedDateRequestRepository) ListStalledForUpdate(ctx context.Context, before time.Time, limit int) ([]*job.ClosedDateUpdateRequest, error) {
	rows, err := r.queries.ListStalledClosedDateUpdateRequests(ctx, r.db, sqlc.ListStalledClosedDateUpdateRequestsParams{
		StalledBefore: pgconv.TimeToPgtype(before),
		MaxRows:       int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stalled closed-date update requests", err)
	}
	out := make([]*job.ClosedDateUpdateRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.ClosedDateRequestFromInfra(row))
	}
	return out, nil
}

func (r *ClosedDateRequestRepository) Update(ctx context.Context, req *job.ClosedDateUpdateRequest) error {
	n, err := r.queries.UpdateClosedDateUpdateRequest(ctx, r.db, converter.ClosedDateRequestToUpdateParams(req))
	if err != nil {
		return infra.WrapRepoErr("failed to update closed-date update request", err)
	}
	if n == 0 {
		return errs.Mark(infra.WrapRepoErr("closed-date update request vanished", nil, infra.KindNotFound), errs.ErrRequestNotFound)
	}
	return nil
}

func (r *ClosedDateRequestRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteFinishedClosedDateUpdateRequestsBefore(ctx, r.db, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete finished closed-date update requests", err)
	}
	return n, nil
}

func wrapRequestFindErr(what string, err error) error {
	if pgconv.IsNoRows(err) {
		return errs.Mark(infra.WrapRepoErr(what+" not found", err), errs.ErrRequestNotFound)
	}
	return infra.WrapRepoErr("failed to load "+what, err)
}
