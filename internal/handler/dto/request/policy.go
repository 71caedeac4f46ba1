package request

import (
	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/usecase/commands"
)

type WeeklySlotRequest struct {
	Day   string          `json:"day" binding:"required"`
	Start civil.TimeOfDay `json:"start"`
}

type ClosedDateRequest struct {
	StartDate civil.Date       `json:"startDate"`
	EndDate   *civil.Date      `json:"endDate,omitempty"`
	StartTime *civil.TimeOfDay `json:"startTime,omitempty"`
	EndTime   *civil.TimeOfDay `json:"endTime,omitempty"`
}

type SetupPolicyRequest struct {
	WeeklySlots []WeeklySlotRequest `json:"weeklySlots" binding:"required,dive"`
	Recurrence  string              `json:"recurrence" binding:"omitempty,oneof=EVERY_WEEK ODD_WEEK EVEN_WEEK"`
	SlotUnit    string              `json:"slotUnit" binding:"omitempty,oneof=HOUR HALF_HOUR"`
	ClosedDates []ClosedDateRequest `json:"closedDates"`
}

type UpdateOperatingHoursRequest struct {
	WeeklySlots []WeeklySlotRequest `json:"weeklySlots" binding:"required,dive"`
	SlotUnit    string              `json:"slotUnit" binding:"omitempty,oneof=HOUR HALF_HOUR"`
	Recurrence  string              `json:"recurrence" binding:"omitempty,oneof=EVERY_WEEK ODD_WEEK EVEN_WEEK"`
}

type SetClosedDatesRequest struct {
	ClosedDates []ClosedDateRequest `json:"closedDates"`
}

func (r SetupPolicyRequest) ToCommand(roomID int64) (commands.SetupPolicyRequest, error) {
	weekly, err := toWeekly(r.WeeklySlots)
	if err != nil {
		return commands.SetupPolicyRequest{}, err
	}
	closed, err := toClosedDates(r.ClosedDates)
	if err != nil {
		return commands.SetupPolicyRequest{}, err
	}
	return commands.SetupPolicyRequest{
		RoomID:      roomID,
		Weekly:      weekly,
		Recurrence:  policy.RecurrenceRule(r.Recurrence),
		SlotUnit:    slot.Unit(r.SlotUnit),
		ClosedDates: closed,
	}, nil
}

func (r UpdateOperatingHoursRequest) ToCommand(roomID int64) (commands.UpdateOperatingHoursRequest, error) {
	weekly, err := toWeekly(r.WeeklySlots)
	if err != nil {
		return commands.UpdateOperatingHoursRequest{}, err
	}
	return commands.UpdateOperatingHoursRequest{
		RoomID:     roomID,
		Weekly:     weekly,
		SlotUnit:   slot.Unit(r.SlotUnit),
		Recurrence: policy.RecurrenceRule(r.Recurrence),
	}, nil
}

func (r SetClosedDatesRequest) ToCommand(roomID int64) (commands.SetClosedDatesRequest, error) {
	closed, err := toClosedDates(r.ClosedDates)
	if err != nil {
		return commands.SetClosedDatesRequest{}, err
	}
	return commands.SetClosedDatesRequest{RoomID: roomID, ClosedDates: closed}, nil
}

func toWeekly(in []WeeklySlotRequest) (policy.WeeklySchedule, error) {
	slots := make([]policy.WeeklySlot, 0, len(in))
	for _, ws := range in {
		day, err := policy.ParseWeekday(ws.Day)
		if err != nil {
			return policy.WeeklySchedule{}, err
		}
		slots = append(slots, policy.WeeklySlot{Day: day, Start: ws.Start})
	}
	return policy.NewWeeklySchedule(slots...), nil
}

func toClosedDates(in []ClosedDateRequest) ([]policy.ClosedDateRange, error) {
	out := make([]policy.ClosedDateRange, 0, len(in))
	for _, cd := range in {
		r, err := policy.NewClosedDateRange(cd.StartDate, cd.EndDate, cd.StartTime, cd.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
