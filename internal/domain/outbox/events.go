package outbox

import (
	"strconv"
	"time"

	"room-slot-service/internal/pkg/civil"
)

// Topics
const (
	TopicSlotGenerationRequested   = "slot-generation-requested"
	TopicSlotReserved              = "slot-reserved"
	TopicSlotConfirmed             = "slot-confirmed"
	TopicSlotCancelled             = "slot-cancelled"
	TopicSlotRestored              = "slot-restored"
	TopicClosedDateUpdateRequested = "closed-date-update-requested"

	TopicPaymentCompleted = "payment-completed"
	TopicPaymentCancelled = "payment-cancelled"
	TopicRefundCompleted  = "refund-completed"
)

const (
	AggregateRoom        = "Room"
	AggregateReservation = "Reservation"
)

type SlotGenerationRequested struct {
	RequestID int64      `json:"requestId,string"`
	RoomID    int64      `json:"roomId,string"`
	StartDate civil.Date `json:"startDate"`
	EndDate   civil.Date `json:"endDate"`
}

func (SlotGenerationRequested) Topic() string         { return TopicSlotGenerationRequested }
func (SlotGenerationRequested) EventType() string     { return "SlotGenerationRequested" }
func (SlotGenerationRequested) AggregateType() string { return AggregateRoom }
func (e SlotGenerationRequested) AggregateID() string { return strconv.FormatInt(e.RoomID, 10) }

type SlotReserved struct {
	RoomID        int64             `json:"roomId,string"`
	SlotDate      civil.Date        `json:"slotDate"`
	StartTimes    []civil.TimeOfDay `json:"startTimes"`
	ReservationID int64             `json:"reservationId,string"`
}

func (SlotReserved) Topic() string         { return TopicSlotReserved }
func (SlotReserved) EventType() string     { return "SlotReserved" }
func (SlotReserved) AggregateType() string { return AggregateReservation }
func (e SlotReserved) AggregateID() string { return strconv.FormatInt(e.ReservationID, 10) }

type SlotConfirmed struct {
	ReservationID int64 `json:"reservationId,string"`
}

func (SlotConfirmed) Topic() string         { return TopicSlotConfirmed }
func (SlotConfirmed) EventType() string     { return "SlotConfirmed" }
func (SlotConfirmed) AggregateType() string { return AggregateReservation }
func (e SlotConfirmed) AggregateID() string { return strconv.FormatInt(e.ReservationID, 10) }

type SlotCancelled struct {
	ReservationID int64  `json:"reservationId,string"`
	CancelReason  string `json:"cancelReason"`
}

func (SlotCancelled) Topic() string         { return TopicSlotCancelled }
func (SlotCancelled) EventType() string     { return "SlotCancelled" }
func (SlotCancelled) AggregateType() string { return AggregateReservation }
func (e SlotCancelled) AggregateID() string { return strconv.FormatInt(e.ReservationID, 10) }

type SlotRestored struct {
	ReservationID int64  `json:"reservationId,string"`
	RestoreReason string `json:"restoreReason"`
}

func (SlotRestored) Topic() string         { return TopicSlotRestored }
func (SlotRestored) EventType() string     { return "SlotRestored" }
func (SlotRestored) AggregateType() string { return AggregateReservation }
func (e SlotRestored) AggregateID() string { return strconv.FormatInt(e.ReservationID, 10) }

type ClosedDateUpdateRequested struct {
	RequestID int64 `json:"requestId,string"`
	RoomID    int64 `json:"roomId,string"`
}

func (ClosedDateUpdateRequested) Topic() string         { return TopicClosedDateUpdateRequested }
func (ClosedDateUpdateRequested) EventType() string     { return "ClosedDateUpdateRequested" }
func (ClosedDateUpdateRequested) AggregateType() string { return AggregateRoom }
func (e ClosedDateUpdateRequested) AggregateID() string { return strconv.FormatInt(e.RoomID, 10) }

// Inbound events published by the payment service.

type PaymentCompleted struct {
	PaymentID     int64     `json:"paymentId,string"`
	ReservationID int64     `json:"reservationId,string"`
	OrderID       string    `json:"orderId"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	PaidAt        time.Time `json:"paidAt"`
}

type PaymentCancelled struct {
	ReservationID int64  `json:"reservationId,string"`
	Reason        string `json:"reason,omitempty"`
}

type RefundCompleted struct {
	ReservationID int64  `json:"reservationId,string"`
	Reason        string `json:"reason,omitempty"`
}

// Cancel and restore reasons recorded on outbound events.
const (
	ReasonUserCancelled    = "USER_CANCELLED"
	ReasonPaymentCancelled = "PAYMENT_CANCELLED"
	ReasonRefundCompleted  = "REFUND_COMPLETED"
	ReasonPendingExpired   = "PENDING_EXPIRED"
)
