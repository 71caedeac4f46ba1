package shared

import (
	"context"
	"time"

	"room-slot-service/internal/domain/job"
	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for consistent multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Slots() SlotRepository
	Policies() PolicyRepository
	Outbox() OutboxRepository
	GenerationRequests() GenerationRequestRepository
	ClosedDateRequests() ClosedDateRequestRepository
}

type SlotRepository interface {
	// InsertMissing inserts slots whose key does not exist yet and returns how many were written.
	InsertMissing(ctx context.Context, slots []*slot.TimeSlot) (int, error)
	FindForUpdate(ctx context.Context, key slot.Key) (*slot.TimeSlot, error)
	FindManyForUpdate(ctx context.Context, roomID int64, date civil.Date, times []civil.TimeOfDay) ([]*slot.TimeSlot, error)
	FindByDateForUpdate(ctx context.Context, roomID int64, date civil.Date) ([]*slot.TimeSlot, error)
	FindByReservationIDForUpdate(ctx context.Context, reservationID int64) ([]*slot.TimeSlot, error)
	FindExpiredPendingForUpdate(ctx context.Context, updatedBefore time.Time, limit int) ([]*slot.TimeSlot, error)
	ListByRoomAndDate(ctx context.Context, roomID int64, date civil.Date) ([]*slot.TimeSlot, error)
	// CommittedKeys lists keys in [start, end] whose status is anything but AVAILABLE.
	CommittedKeys(ctx context.Context, roomID int64, start, end civil.Date) ([]slot.Key, error)
	Save(ctx context.Context, s *slot.TimeSlot) error
	DeleteBefore(ctx context.Context, cutoff civil.Date) (int64, error)
	DeleteAvailableInRange(ctx context.Context, roomID int64, start, end civil.Date) (int64, error)
}

type PolicyRepository interface {
	Create(ctx context.Context, p *policy.OperatingPolicy) (int64, error)
	FindByRoomID(ctx context.Context, roomID int64) (*policy.OperatingPolicy, error)
	FindByRoomIDForUpdate(ctx context.Context, roomID int64) (*policy.OperatingPolicy, error)
	Update(ctx context.Context, p *policy.OperatingPolicy) error
	ListRoomIDs(ctx context.Context) ([]int64, error)
}

type OutboxRepository interface {
	Append(ctx context.Context, msg *outbox.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*outbox.Message, error)
	ListPending(ctx context.Context, createdBefore time.Time, limit int) ([]*outbox.Message, error)
	// MarkPublished and RecordFailure only touch rows that are still PENDING
	// and report whether they did.
	MarkPublished(ctx context.Context, msg *outbox.Message) (bool, error)
	// RecordFailure increments the stored retry count and marks the row
	// FAILED once it reaches maxRetries. msg receives the stored values.
	RecordFailure(ctx context.Context, msg *outbox.Message, cause error, maxRetries int) (bool, error)
	DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type GenerationRequestRepository interface {
	Create(ctx context.Context, r *job.GenerationRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (*job.GenerationRequest, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*job.GenerationRequest, error)
	// ListStalledForUpdate returns REQUESTED rows requested before the cutoff
	// and IN_PROGRESS rows started before it, skipping locked rows.
	ListStalledForUpdate(ctx context.Context, before time.Time, limit int) ([]*job.GenerationRequest, error)
	Update(ctx context.Context, r *job.GenerationRequest) error
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ClosedDateRequestRepository interface {
	Create(ctx context.Context, r *job.ClosedDateUpdateRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (*job.ClosedDateUpdateRequest, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*job.ClosedDateUpdateRequest, error)
	ListStalledForUpdate(ctx context.Context, before time.Time, limit int) ([]*job.ClosedDateUpdateRequest, error)
	Update(ctx context.Context, r *job.ClosedDateUpdateRequest) error
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
