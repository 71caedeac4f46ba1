package converter

import (
	"fmt"

	"room-slot-service/internal/domain/slot"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/pgconv"
)

func SlotFromInfra(row sqlc.TimeSlot) (*slot.TimeSlot, error) {
	unit, err := slot.ParseUnit(row.SlotUnit)
	if err != nil {
		return nil, err
	}
	status := slot.Status(row.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("slot %d: unknown status %q", row.ID, row.Status)
	}
	return slot.Reconstruct(
		row.ID,
		row.RoomID,
		pgconv.DateFromPgtype(row.SlotDate),
		pgconv.TimeOfDayFromPgtype(row.SlotTime),
		unit,
		status,
		pgconv.Int64PtrFromPgtype(row.ReservationID),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func SlotsFromInfra(rows []sqlc.TimeSlot) ([]*slot.TimeSlot, error) {
	out := make([]*slot.TimeSlot, 0, len(rows))
	for _, row := range rows {
		s, err := SlotFromInfra(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func SlotToUpdateParams(s *slot.TimeSlot) sqlc.UpdateSlotStateParams {
	return sqlc.UpdateSlotStateParams{
		ID:            s.ID(),
		Status:        s.Status().String(),
		ReservationID: pgconv.Int64PtrToPgtype(s.ReservationID()),
		UpdatedAt:     pgconv.TimeToPgtype(s.UpdatedAt()),
	}
}

// SlotsToInsertParams groups slots by room and unit, one batch per group,
// because the insert statement binds both as scalars.
func SlotsToInsertParams(slots []*slot.TimeSlot) []sqlc.InsertSlotsParams {
	type groupKey struct {
		roomID int64
		unit   slot.Unit
	}
	var order []groupKey
	groups := make(map[groupKey]*sqlc.InsertSlotsParams)
	for _, s := range slots {
		k := groupKey{roomID: s.RoomID(), unit: s.Unit()}
		p, ok := groups[k]
		if !ok {
			p = &sqlc.InsertSlotsParams{
				RoomID:    s.RoomID(),
				SlotUnit:  s.Unit().String(),
				UpdatedAt: pgconv.TimeToPgtype(s.UpdatedAt()),
			}
			groups[k] = p
			order = append(order, k)
		}
		p.SlotDates = append(p.SlotDates, pgconv.DateToPgtype(s.Date()))
		p.SlotTimes = append(p.SlotTimes, pgconv.TimeOfDayToPgtype(s.StartTime()))
		p.Statuses = append(p.Statuses, s.Status().String())
	}

	out := make([]sqlc.InsertSlotsParams, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}
