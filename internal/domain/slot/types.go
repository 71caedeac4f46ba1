package slot

import (
	"fmt"

	"room-slot-service/internal/pkg/civil"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusPending   Status = "PENDING"
	StatusReserved  Status = "RESERVED"
	StatusClosed    Status = "CLOSED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusReserved, StatusClosed:
		return true
	default:
		return false
	}
}

// Unit is the duration granularity of a room's slots.
type Unit string

const (
	UnitHour     Unit = "HOUR"
	UnitHalfHour Unit = "HALF_HOUR"
)

func (u Unit) String() string {
	return string(u)
}

func (u Unit) IsValid() bool {
	return u == UnitHour || u == UnitHalfHour
}

func (u Unit) Minutes() int {
	switch u {
	case UnitHour:
		return 60
	case UnitHalfHour:
		return 30
	default:
		return 0
	}
}

func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.IsValid() {
		return "", fmt.Errorf("%w: unknown slot unit %q", ErrInvalidSlot, s)
	}
	return u, nil
}

// Key is the natural key of a slot: unique per (room, date, start time).
type Key struct {
	RoomID int64
	Date   civil.Date
	Time   civil.TimeOfDay
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%s", k.RoomID, k.Date, k.Time)
}
