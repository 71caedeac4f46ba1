package converter

import (
	"room-slot-service/internal/domain/outbox"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/pgconv"
)

func OutboxToInsertParams(m *outbox.Message) sqlc.InsertOutboxMessageParams {
	return sqlc.InsertOutboxMessageParams{
		ID:            m.ID,
		AggregateType: m.AggregateType,
		AggregateID:   m.AggregateID,
		Topic:         m.Topic,
		EventType:     m.EventType,
		Payload:       m.Payload,
		Status:        string(m.Status),
		CreatedAt:     pgconv.TimeToPgtype(m.CreatedAt),
		RetryCount:    pgconv.IntToInt32(m.RetryCount),
	}
}

func OutboxFromInfra(row sqlc.OutboxMessage) *outbox.Message {
	return &outbox.Message{
		ID:            row.ID,
		AggregateType: row.AggregateType,
		AggregateID:   row.AggregateID,
		Topic:         row.Topic,
		EventType:     row.EventType,
		Payload:       row.Payload,
		Status:        outbox.Status(row.Status),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		PublishedAt:   pgconv.TimePtrFromPgtype(row.PublishedAt),
		RetryCount:    int(row.RetryCount),
		LastError:     pgconv.StringPtrFromPgtype(row.LastError),
	}
}
