package response

import (
	"time"

	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

// RequestResponse is returned when a background request is accepted and
// when it is polled.
type RequestResponse struct {
	ID          int64       `json:"id"`
	RoomID      int64       `json:"roomId"`
	Kind        string      `json:"kind,omitempty"`
	StartDate   *civil.Date `json:"startDate,omitempty"`
	EndDate     *civil.Date `json:"endDate,omitempty"`
	Status      string      `json:"status"`
	RequestedAt time.Time   `json:"requestedAt"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	ResultCount *int        `json:"resultCount,omitempty"`
	Error       *string     `json:"error,omitempty"`
}

func FromRequestView(v *queries.RequestView) (*RequestResponse, error) {
	var res RequestResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}
