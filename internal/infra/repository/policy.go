package repository

import (
	"context"

	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/infra"
	"room-slot-service/internal/infra/repository/converter"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/pgconv"
)

type PolicyQueries interface {
	CreatePolicy(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePolicyParams) (int64, error)
	GetPolicyByRoomID(ctx context.Context, db sqlc.DBTX, roomID int64) (sqlc.OperatingPolicy, error)
	GetPolicyByRoomIDForUpdate(ctx context.Context, db sqlc.DBTX, roomID int64) (sqlc.OperatingPolicy, error)
	UpdatePolicy(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePolicyParams) (int64, error)
	ListPolicyRoomIDs(ctx context.Context, db sqlc.DBTX) ([]int64, error)
}

type PolicyRepository struct {
	queries PolicyQueries
	db      sqlc.DBTX
}

func NewPolicyRepository(queries PolicyQueries, db sqlc.DBTX) *PolicyRepository {
	return &PolicyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PolicyRepository) Create(ctx context.Context, p *policy.OperatingPolicy) (int64, error) {
	params, err := converter.PolicyToCreateParams(p)
	if err != nil {
		return 0, err
	}
	id, err := r.queries.CreatePolicy(ctx, r.db, params)
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to create operating policy", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) {
			return 0, errs.Mark(wrapped, errs.ErrPolicyConflict)
		}
		return 0, wrapped
	}
	p.SetID(id)
	return id, nil
}

func (r *PolicyRepository) FindByRoomID(ctx context.Context, roomID int64) (*policy.OperatingPolicy, error) {
	row, err := r.queries.GetPolicyByRoomID(ctx, r.db, roomID)
	if err != nil {
		return nil, r.wrapFindErr(err)
	}
	return converter.PolicyFromInfra(row)
}

func (r *PolicyRepository) FindByRoomIDForUpdate(ctx context.Context, roomID int64) (*policy.OperatingPolicy, error) {
	row, err := r.queries.GetPolicyByRoomIDForUpdate(ctx, r.db, roomID)
	if err != nil {
		return nil, r.wrapFindErr(err)
	}
	return converter.PolicyFromInfra(row)
}

func (r *PolicyRepository) Update(ctx context.Context, p *policy.OperatingPolicy) error {
	params, err := converter.PolicyToUpdateParams(p)
	if err != nil {
		return err
	}
	n, err := r.queries.UpdatePolicy(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update operating policy", err)
	}
	if n == 0 {
		return errs.Mark(infra.WrapRepoErr("operating policy vanished", nil, infra.KindNotFound), errs.ErrPolicyNotFound)
	}
	return nil
}

func (r *PolicyRepository) ListRoomIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.queries.ListPolicyRoomIDs(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	return ids, nil
}

func (r *PolicyRepository) wrapFindErr(err error) error {
	if pgconv.IsNoRows(err) {
		return errs.Mark(infra.WrapRepoErr("operating policy not found", err), errs.ErrPolicyNotFound)
	}
	return infra.WrapRepoErr("failed to load operating policy", err)
}
