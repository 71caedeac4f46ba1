package converter

import (
	"encoding/json"
	"fmt"

	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/pgconv"
)

// weeklySlotRecord is the stored shape of one weekly_slots element.
type weeklySlotRecord struct {
	Day   string          `json:"day"`
	Start civil.TimeOfDay `json:"start"`
}

type closedDateRecord struct {
	StartDate civil.Date       `json:"startDate"`
	EndDate   *civil.Date      `json:"endDate,omitempty"`
	StartTime *civil.TimeOfDay `json:"startTime,omitempty"`
	EndTime   *civil.TimeOfDay `json:"endTime,omitempty"`
}

func PolicyToCreateParams(p *policy.OperatingPolicy) (sqlc.CreatePolicyParams, error) {
	weekly, closed, err := encodePolicyDocuments(p)
	if err != nil {
		return sqlc.CreatePolicyParams{}, err
	}
	return sqlc.CreatePolicyParams{
		RoomID:      p.RoomID(),
		WeeklySlots: weekly,
		Recurrence:  p.Recurrence().String(),
		SlotUnit:    p.SlotUnit().String(),
		ClosedDates: closed,
		CreatedAt:   pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(p.UpdatedAt()),
	}, nil
}

func PolicyToUpdateParams(p *policy.OperatingPolicy) (sqlc.UpdatePolicyParams, error) {
	weekly, closed, err := encodePolicyDocuments(p)
	if err != nil {
		return sqlc.UpdatePolicyParams{}, err
	}
	return sqlc.UpdatePolicyParams{
		ID:          p.ID(),
		WeeklySlots: weekly,
		Recurrence:  p.Recurrence().String(),
		SlotUnit:    p.SlotUnit().String(),
		ClosedDates: closed,
		UpdatedAt:   pgconv.TimeToPgtype(p.UpdatedAt()),
	}, nil
}

func PolicyFromInfra(row sqlc.OperatingPolicy) (*policy.OperatingPolicy, error) {
	var weeklyRecords []weeklySlotRecord
	if err := json.Unmarshal(row.WeeklySlots, &weeklyRecords); err != nil {
		return nil, fmt.Errorf("policy %d: decode weekly slots: %w", row.ID, err)
	}
	slots := make([]policy.WeeklySlot, 0, len(weeklyRecords))
	for _, rec := range weeklyRecords {
		day, err := policy.ParseWeekday(rec.Day)
		if err != nil {
			return nil, fmt.Errorf("policy %d: %w", row.ID, err)
		}
		slots = append(slots, policy.WeeklySlot{Day: day, Start: rec.Start})
	}

	var closedRecords []closedDateRecord
	if len(row.ClosedDates) > 0 {
		if err := json.Unmarshal(row.ClosedDates, &closedRecords); err != nil {
			return nil, fmt.Errorf("policy %d: decode closed dates: %w", row.ID, err)
		}
	}
	closed := make([]policy.ClosedDateRange, 0, len(closedRecords))
	for _, rec := range closedRecords {
		r, err := policy.NewClosedDateRange(rec.StartDate, rec.EndDate, rec.StartTime, rec.EndTime)
		if err != nil {
			return nil, fmt.Errorf("policy %d: %w", row.ID, err)
		}
		closed = append(closed, r)
	}

	recurrence, err := policy.ParseRecurrenceRule(row.Recurrence)
	if err != nil {
		return nil, err
	}
	unit, err := slot.ParseUnit(row.SlotUnit)
	if err != nil {
		return nil, err
	}

	return policy.ReconstructOperatingPolicy(
		row.ID,
		row.RoomID,
		policy.NewWeeklySchedule(slots...),
		recurrence,
		unit,
		closed,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func encodePolicyDocuments(p *policy.OperatingPolicy) (weekly, closed []byte, err error) {
	weeklySlots := p.WeeklySchedule().Slots()
	weeklyRecords := make([]weeklySlotRecord, 0, len(weeklySlots))
	for _, ws := range weeklySlots {
		weeklyRecords = append(weeklyRecords, weeklySlotRecord{Day: ws.Day.String(), Start: ws.Start})
	}
	if weekly, err = json.Marshal(weeklyRecords); err != nil {
		return nil, nil, fmt.Errorf("encode weekly slots: %w", err)
	}

	ranges := p.ClosedDates()
	closedRecords := make([]closedDateRecord, 0, len(ranges))
	for _, r := range ranges {
		closedRecords = append(closedRecords, closedDateRecord{
			StartDate: r.StartDate(),
			EndDate:   r.EndDate(),
			StartTime: r.StartTime(),
			EndTime:   r.EndTime(),
		})
	}
	if closed, err = json.Marshal(closedRecords); err != nil {
		return nil, nil, fmt.Errorf("encode closed dates: %w", err)
	}
	return weekly, closed, nil
}
