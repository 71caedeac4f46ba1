package response

import (
	"time"

	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID            int64           `json:"id"`
	RoomID        int64           `json:"roomId"`
	Date          civil.Date      `json:"date"`
	StartTime     civil.TimeOfDay `json:"startTime"`
	SlotUnit      string          `json:"slotUnit"`
	Status        string          `json:"status"`
	ReservationID *int64          `json:"reservationId,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func FromSlotViews(views []*queries.SlotView) ([]SlotResponse, error) {
	res := make([]SlotResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

type SlotsChangedResponse struct {
	ReservationID int64 `json:"reservationId"`
	Slots         int   `json:"slots"`
}
