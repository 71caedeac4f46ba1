package queries

import (
	"time"

	"room-slot-service/internal/domain/job"
	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
)

// SlotView represents one materialized slot
type SlotView struct {
	ID            int64           `json:"id"`
	RoomID        int64           `json:"room_id"`
	Date          civil.Date      `json:"date"`
	StartTime     civil.TimeOfDay `json:"start_time"`
	SlotUnit      string          `json:"slot_unit"`
	Status        string          `json:"status"`
	ReservationID *int64          `json:"reservation_id,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type WeeklySlotView struct {
	Day   string          `json:"day"`
	Start civil.TimeOfDay `json:"start"`
}

type ClosedDateView struct {
	StartDate civil.Date       `json:"start_date"`
	EndDate   *civil.Date      `json:"end_date,omitempty"`
	StartTime *civil.TimeOfDay `json:"start_time,omitempty"`
	EndTime   *civil.TimeOfDay `json:"end_time,omitempty"`
}

// PolicyView represents a room's operating policy
type PolicyView struct {
	ID          int64            `json:"id"`
	RoomID      int64            `json:"room_id"`
	WeeklySlots []WeeklySlotView `json:"weekly_slots"`
	Recurrence  string           `json:"recurrence"`
	SlotUnit    string           `json:"slot_unit"`
	ClosedDates []ClosedDateView `json:"closed_dates"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// RequestView is the pollable state of a background request
type RequestView struct {
	ID          int64       `json:"id"`
	RoomID      int64       `json:"room_id"`
	Kind        string      `json:"kind,omitempty"`
	StartDate   *civil.Date `json:"start_date,omitempty"`
	EndDate     *civil.Date `json:"end_date,omitempty"`
	Status      string      `json:"status"`
	RequestedAt time.Time   `json:"requested_at"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	ResultCount *int        `json:"result_count,omitempty"`
	Error       *string     `json:"error,omitempty"`
}

func slotView(s *slot.TimeSlot) *SlotView {
	return &SlotView{
		ID:            s.ID(),
		RoomID:        s.RoomID(),
		Date:          s.Date(),
		StartTime:     s.StartTime(),
		SlotUnit:      s.Unit().String(),
		Status:        s.Status().String(),
		ReservationID: s.ReservationID(),
		UpdatedAt:     s.UpdatedAt(),
	}
}

func policyView(p *policy.OperatingPolicy) *PolicyView {
	weekly := p.WeeklySchedule().Slots()
	v := &PolicyView{
		ID:          p.ID(),
		RoomID:      p.RoomID(),
		WeeklySlots: make([]WeeklySlotView, 0, len(weekly)),
		Recurrence:  p.Recurrence().String(),
		SlotUnit:    p.SlotUnit().String(),
		ClosedDates: []ClosedDateView{},
		UpdatedAt:   p.UpdatedAt(),
	}
	for _, ws := range weekly {
		v.WeeklySlots = append(v.WeeklySlots, WeeklySlotView{Day: ws.Day.String(), Start: ws.Start})
	}
	for _, r := range p.ClosedDates() {
		v.ClosedDates = append(v.ClosedDates, ClosedDateView{
			StartDate: r.StartDate(),
			EndDate:   r.EndDate(),
			StartTime: r.StartTime(),
			EndTime:   r.EndTime(),
		})
	}
	return v
}

func trackingView(id, roomID int64, t job.Tracking) *RequestView {
	return &RequestView{
		ID:          id,
		RoomID:      roomID,
		Status:      t.Status.String(),
		RequestedAt: t.RequestedAt,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
		ResultCount: t.ResultCount,
		Error:       t.Error,
	}
}
