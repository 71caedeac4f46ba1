//go:build unit || e2e

package builder

import (
	"time"

	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
)

type SlotBuilder struct {
	RoomID        int64
	Date          civil.Date
	StartTime     civil.TimeOfDay
	Unit          slot.Unit
	Status        slot.Status
	ReservationID *int64
	UpdatedAt     time.Time
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		RoomID:    1,
		Date:      civil.NewDate(2025, time.March, 3),
		StartTime: civil.MustTimeOfDay(9, 0),
		Unit:      slot.UnitHour,
		Status:    slot.StatusAvailable,
		UpdatedAt: time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

// Pending marks the slot as held by reservationID since at.
func (b *SlotBuilder) Pending(reservationID int64, at time.Time) *SlotBuilder {
	b.Status = slot.StatusPending
	b.ReservationID = &reservationID
	b.UpdatedAt = at
	return b
}

func (b *SlotBuilder) Reserved(reservationID int64) *SlotBuilder {
	b.Status = slot.StatusReserved
	b.ReservationID = &reservationID
	return b
}

func (b *SlotBuilder) BuildDomain() *slot.TimeSlot {
	return slot.Reconstruct(0, b.RoomID, b.Date, b.StartTime, b.Unit, b.Status, b.ReservationID, b.UpdatedAt)
}

func (b *SlotBuilder) Key() slot.Key {
	return slot.Key{RoomID: b.RoomID, Date: b.Date, Time: b.StartTime}
}
