package job

import (
	"errors"
	"fmt"
	"time"

	"room-slot-service/internal/pkg/civil"
)

var ErrInvalidRequestTransition = errors.New("invalid request status transition")

type Status string

const (
	StatusRequested  Status = "REQUESTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsFinished() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Tracking is the lifecycle shared by every asynchronous request row.
type Tracking struct {
	Status      Status
	RequestedAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	ResultCount *int
	Error       *string
}

func newTracking(now time.Time) Tracking {
	return Tracking{Status: StatusRequested, RequestedAt: now}
}

func (t *Tracking) Start(now time.Time) error {
	if t.Status != StatusRequested {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidRequestTransition, t.Status, StatusInProgress)
	}
	t.Status = StatusInProgress
	t.StartedAt = &now
	return nil
}

// Resume claims a request nobody is running: one whose submission never
// started, or one whose run was abandoned while IN_PROGRESS.
func (t *Tracking) Resume(now time.Time) error {
	if t.Status.IsFinished() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidRequestTransition, t.Status, StatusInProgress)
	}
	t.Status = StatusInProgress
	t.StartedAt = &now
	return nil
}

// Requeue hands an interrupted run back so it can be resumed later.
func (t *Tracking) Requeue() error {
	if t.Status != StatusInProgress {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidRequestTransition, t.Status, StatusRequested)
	}
	t.Status = StatusRequested
	t.StartedAt = nil
	return nil
}

func (t *Tracking) Complete(count int, now time.Time) error {
	if t.Status != StatusInProgress {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidRequestTransition, t.Status, StatusCompleted)
	}
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.ResultCount = &count
	return nil
}

// Fail is allowed from any unfinished state so a worker that dies before
// Start can still record the cause.
func (t *Tracking) Fail(cause error, now time.Time) error {
	if t.Status.IsFinished() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidRequestTransition, t.Status, StatusFailed)
	}
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	t.Status = StatusFailed
	t.CompletedAt = &now
	t.Error = &msg
	return nil
}

type GenerationKind string

const (
	// KindInitial materializes the window after room setup.
	KindInitial GenerationKind = "INITIAL"
	// KindRegeneration rewrites the AVAILABLE surface after an operating-hours change.
	KindRegeneration GenerationKind = "REGENERATION"
)

type GenerationRequest struct {
	ID        int64
	RoomID    int64
	Kind      GenerationKind
	StartDate civil.Date
	EndDate   civil.Date
	Tracking
}

func NewGenerationRequest(roomID int64, kind GenerationKind, start, end civil.Date, now time.Time) (*GenerationRequest, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("generation range end %s is before start %s", end, start)
	}
	return &GenerationRequest{
		RoomID:    roomID,
		Kind:      kind,
		StartDate: start,
		EndDate:   end,
		Tracking:  newTracking(now),
	}, nil
}

type ClosedDateUpdateRequest struct {
	ID     int64
	RoomID int64
	Tracking
}

func NewClosedDateUpdateRequest(roomID int64, now time.Time) *ClosedDateUpdateRequest {
	return &ClosedDateUpdateRequest{
		RoomID:   roomID,
		Tracking: newTracking(now),
	}
}
