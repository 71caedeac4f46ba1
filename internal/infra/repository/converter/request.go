package converter

import (
	"room-slot-service/internal/domain/job"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func GenerationRequestFromInfra(row sqlc.GenerationRequest) *job.GenerationRequest {
	return &job.GenerationRequest{
		ID:        row.ID,
		RoomID:    row.RoomID,
		Kind:      job.GenerationKind(row.Kind),
		StartDate: pgconv.DateFromPgtype(row.StartDate),
		EndDate:   pgconv.DateFromPgtype(row.EndDate),
		Tracking: trackingFromInfra(
			row.Status, row.RequestedAt, row.StartedAt, row.CompletedAt, row.ResultCount, row.Error,
		),
	}
}

func GenerationRequestToUpdateParams(r *job.GenerationRequest) sqlc.UpdateGenerationRequestParams {
	return sqlc.UpdateGenerationRequestParams{
		ID:          r.ID,
		Status:      r.Status.String(),
		StartedAt:   pgconv.TimePtrToPgtype(r.StartedAt),
		CompletedAt: pgconv.TimePtrToPgtype(r.CompletedAt),
		ResultCount: pgconv.IntPtrToPgtype(r.ResultCount),
		Error:       pgconv.StringPtrToPgtype(r.Error),
	}
}

func ClosedDateRequestFromInfra(row sqlc.ClosedDateUpdateRequest) *job.ClosedDateUpdateRequest {
	return &job.ClosedDateUpdateRequest{
		ID:     row.ID,
		RoomID: row.RoomID,
		Tracking: trackingFromInfra(
			row.Status, row.RequestedAt, row.StartedAt, row.CompletedAt, row.ResultCount, row.Error,
		),
	}
}

func ClosedDateRequestToUpdateParams(r *job.ClosedDateUpdateRequest) sqlc.UpdateClosedDateUpdateRequestParams {
	return sqlc.UpdateClosedDateUpdateRequestParams{
		ID:          r.ID,
		Status:      r.Status.String(),
		StartedAt:   pgconv.TimePtrToPgtype(r.StartedAt),
		CompletedAt: pgconv.TimePtrToPgtype(r.CompletedAt),
		ResultCount: pgconv.IntPtrToPgtype(r.ResultCount),
		Error:       pgconv.StringPtrToPgtype(r.Error),
	}
}

func trackingFromInfra(
	status string,
	requestedAt, startedAt, completedAt pgtype.Timestamptz,
	resultCount pgtype.Int4,
	errText pgtype.Text,
) job.Tracking {
	return job.Tracking{
		Status:      job.Status(status),
		RequestedAt: pgconv.TimeFromPgtype(requestedAt),
		StartedAt:   pgconv.TimePtrFromPgtype(startedAt),
		CompletedAt: pgconv.TimePtrFromPgtype(completedAt),
		ResultCount: pgconv.IntPtrFromPgtype(resultCount),
		Error:       pgconv.StringPtrFromPgtype(errText),
	}
}
