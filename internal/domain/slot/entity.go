package slot

import (
	"errors"
	"fmt"
	"time"

	"room-slot-service/internal/pkg/civil"
)

var (
	ErrInvalidStateTransition = errors.New("invalid slot state transition")
	ErrInvalidSlot            = errors.New("invalid slot")
	ErrReservationIDRequired  = errors.New("reservation id is required")
)

// InvalidStateTransitionError reports a transition the state machine refused.
type InvalidStateTransitionError struct {
	Current Status
	Target  Status
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid slot state transition: %s -> %s", e.Current, e.Target)
}

func (e *InvalidStateTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// TimeSlot is one bookable unit of one room on one date. State changes only
// through the transition methods, each of which bumps updatedAt.
type TimeSlot struct {
	id            int64
	roomID        int64
	date          civil.Date
	startTime     civil.TimeOfDay
	unit          Unit
	status        Status
	reservationID *int64
	updatedAt     time.Time
}

// New builds a freshly generated slot. Only AVAILABLE and CLOSED are valid initial states.
func New(roomID int64, date civil.Date, startTime civil.TimeOfDay, unit Unit, status Status, now time.Time) (*TimeSlot, error) {
	if roomID <= 0 {
		return nil, fmt.Errorf("%w: room id must be positive", ErrInvalidSlot)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidSlot)
	}
	if !unit.IsValid() {
		return nil, fmt.Errorf("%w: unknown slot unit %q", ErrInvalidSlot, unit)
	}
	if status != StatusAvailable && status != StatusClosed {
		return nil, fmt.Errorf("%w: initial status must be AVAILABLE or CLOSED, got %s", ErrInvalidSlot, status)
	}
	return &TimeSlot{
		roomID:    roomID,
		date:      date,
		startTime: startTime,
		unit:      unit,
		status:    status,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id, roomID int64,
	date civil.Date,
	startTime civil.TimeOfDay,
	unit Unit,
	status Status,
	reservationID *int64,
	updatedAt time.Time,
) *TimeSlot {
	return &TimeSlot{
		id:            id,
		roomID:        roomID,
		date:          date,
		startTime:     startTime,
		unit:          unit,
		status:        status,
		reservationID: reservationID,
		updatedAt:     updatedAt,
	}
}

func (s *TimeSlot) MarkAsPending(reservationID int64, now time.Time) error {
	if s.status != StatusAvailable {
		return s.refuse(StatusPending)
	}
	if reservationID <= 0 {
		return ErrReservationIDRequired
	}
	s.status = StatusPending
	s.reservationID = &reservationID
	s.updatedAt = now
	return nil
}

func (s *TimeSlot) Confirm(now time.Time) error {
	if s.status != StatusPending {
		return s.refuse(StatusReserved)
	}
	s.status = StatusReserved
	s.updatedAt = now
	return nil
}

// Cancel releases a PENDING or RESERVED slot straight back to AVAILABLE.
func (s *TimeSlot) Cancel(now time.Time) error {
	if s.status != StatusPending && s.status != StatusReserved {
		return s.refuse(StatusAvailable)
	}
	s.status = StatusAvailable
	s.reservationID = nil
	s.updatedAt = now
	return nil
}

// Restore forces AVAILABLE regardless of the current state.
func (s *TimeSlot) Restore(now time.Time) {
	s.status = StatusAvailable
	s.reservationID = nil
	s.updatedAt = now
}

func (s *TimeSlot) MarkAsClosed(now time.Time) error {
	if s.status != StatusAvailable {
		return s.refuse(StatusClosed)
	}
	s.status = StatusClosed
	s.updatedAt = now
	return nil
}

func (s *TimeSlot) MarkAsAvailable(now time.Time) error {
	if s.status != StatusClosed {
		return s.refuse(StatusAvailable)
	}
	s.status = StatusAvailable
	s.updatedAt = now
	return nil
}

func (s *TimeSlot) refuse(target Status) error {
	return &InvalidStateTransitionError{Current: s.status, Target: target}
}

// IsExpired reports whether a PENDING slot has not moved since before now-ttl.
func (s *TimeSlot) IsExpired(now time.Time, ttl time.Duration) bool {
	return s.status == StatusPending && s.updatedAt.Before(now.Add(-ttl))
}

// EndTime is the wall-clock end of the slot in loc.
func (s *TimeSlot) EndTime(loc *time.Location) time.Time {
	return s.StartsAt(loc).Add(time.Duration(s.unit.Minutes()) * time.Minute)
}

func (s *TimeSlot) StartsAt(loc *time.Location) time.Time {
	return s.startTime.On(s.date, loc)
}

func (s *TimeSlot) Key() Key {
	return Key{RoomID: s.roomID, Date: s.date, Time: s.startTime}
}

func (s *TimeSlot) ID() int64                  { return s.id }
func (s *TimeSlot) RoomID() int64              { return s.roomID }
func (s *TimeSlot) Date() civil.Date           { return s.date }
func (s *TimeSlot) StartTime() civil.TimeOfDay { return s.startTime }
func (s *TimeSlot) Unit() Unit                 { return s.unit }
func (s *TimeSlot) Status() Status             { return s.status }
func (s *TimeSlot) ReservationID() *int64      { return s.reservationID }
func (s *TimeSlot) UpdatedAt() time.Time       { return s.updatedAt }
func (s *TimeSlot) IsAvailable() bool          { return s.status == StatusAvailable }

// SetID is called by the store after insert.
func (s *TimeSlot) SetID(id int64) { s.id = id }
