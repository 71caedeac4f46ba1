package request

import (
	"errors"

	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
)

type ReserveSlotsRequest struct {
	Date          civil.Date        `json:"date"`
	StartTimes    []civil.TimeOfDay `json:"startTimes" binding:"required,min=1"`
	ReservationID int64             `json:"reservationId" binding:"required,gt=0"`
}

func (r ReserveSlotsRequest) Validate() error {
	if r.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// SlotKeyRequest addresses a single slot of the room in the path.
// StartTime is a pointer so a missing value is rejected instead of reading
// as 00:00.
type SlotKeyRequest struct {
	Date      civil.Date       `json:"date"`
	StartTime *civil.TimeOfDay `json:"startTime" binding:"required"`
}

func (r SlotKeyRequest) ToKey(roomID int64) (slot.Key, error) {
	if r.Date.IsZero() {
		return slot.Key{}, errors.New("date is required")
	}
	if r.StartTime == nil {
		return slot.Key{}, errors.New("startTime is required")
	}
	return slot.Key{RoomID: roomID, Date: r.Date, Time: *r.StartTime}, nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=64"`
}
