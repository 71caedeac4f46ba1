package response

import (
	"time"

	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type WeeklySlotResponse struct {
	Day   string          `json:"day"`
	Start civil.TimeOfDay `json:"start"`
}

type ClosedDateResponse struct {
	StartDate civil.Date       `json:"startDate"`
	EndDate   *civil.Date      `json:"endDate,omitempty"`
	StartTime *civil.TimeOfDay `json:"startTime,omitempty"`
	EndTime   *civil.TimeOfDay `json:"endTime,omitempty"`
}

type PolicyResponse struct {
	ID          int64                `json:"id"`
	RoomID      int64                `json:"roomId"`
	WeeklySlots []WeeklySlotResponse `json:"weeklySlots"`
	Recurrence  string               `json:"recurrence"`
	SlotUnit    string               `json:"slotUnit"`
	ClosedDates []ClosedDateResponse `json:"closedDates"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func FromPolicyView(v *queries.PolicyView) (*PolicyResponse, error) {
	var res PolicyResponse
	if err := copier.CopyWithOption(&res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return &res, nil
}
