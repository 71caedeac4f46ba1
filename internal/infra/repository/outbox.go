package repository

import (
	"context"
	"time"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/infra"
	"room-slot-service/internal/infra/repository/converter"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxQueries interface {
	InsertOutboxMessage(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxMessageParams) error
	GetOutboxMessage(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.OutboxMessage, error)
	ListPendingOutboxMessages(ctx context.Context, db sqlc.DBTX, arg sqlc.ListPendingOutboxMessagesParams) ([]sqlc.OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxPublishedParams) (int64, error)
	RecordOutboxFailure(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordOutboxFailureParams) (sqlc.RecordOutboxFailureRow, error)
	DeletePublishedOutboxBefore(ctx context.Context, db sqlc.DBTX, publishedAt pgtype.Timestamptz) (int64, error)
}

type OutboxRepository struct {
	queries OutboxQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Append(ctx context.Context, msg *outbox.Message) error {
	if err := r.queries.InsertOutboxMessage(ctx, r.db, converter.OutboxToInsertParams(msg)); err != nil {
		return infra.WrapRepoErr("failed to append outbox message", err)
	}
	return nil
}

func (r *OutboxRepository) FindByID(ctx context.Context, id uuid.UUID) (*outbox.Message, error) {
	row, err := r.queries.GetOutboxMessage(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("outbox message not found", err), errs.ErrRequestNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load outbox message", err)
	}
	return converter.OutboxFromInfra(row), nil
}

func (r *OutboxRepository) ListPending(ctx context.Context, createdBefore time.Time, limit int) ([]*outbox.Message, error) {
	rows, err := r.queries.ListPendingOutboxMessages(ctx, r.db, sqlc.ListPendingOutboxMessagesParams{
		CreatedBefore: pgconv.TimeToPgtype(createdBefore),
		MaxRows:       pgconv.IntToInt32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending outbox messages", err)
	}
	out := make([]*outbox.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.OutboxFromInfra(row))
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, msg *outbox.Message) (bool, error) {
	params := sqlc.MarkOutboxPublishedParams{ID: msg.ID}
	if msg.PublishedAt != nil {
		params.PublishedAt = pgconv.TimeToPgtype(*msg.PublishedAt)
	}
	n, err := r.queries.MarkOutboxPublished(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark outbox message published", err)
	}
	return n > 0, nil
}

// RecordFailure counts the attempt on the stored row, so concurrent failures
// of the same message each add one. msg receives the stored outcome.
func (r *OutboxRepository) RecordFailure(ctx context.Context, msg *outbox.Message, cause error, maxRetries int) (bool, error) {
	lastError := outbox.FailureText(cause)
	row, err := r.queries.RecordOutboxFailure(ctx, r.db, sqlc.RecordOutboxFailureParams{
		MaxRetries: pgconv.IntToInt32(maxRetries),
		LastError:  lastError,
		ID:         msg.ID,
	})
	if pgconv.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, infra.WrapRepoErr("failed to record outbox failure", err)
	}
	msg.RetryCount = int(row.RetryCount)
	msg.Status = outbox.Status(row.Status)
	msg.LastError = &lastError
	return true, nil
}

func (r *OutboxRepository) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeletePublishedOutboxBefore(ctx, r.db, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to archive published outbox messages", err)
	}
	return n, nil
}
