package policy

import (
	"errors"
	"fmt"
	"time"

	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
)

var (
	ErrInvalidPolicy     = errors.New("invalid operating policy")
	ErrInvalidClosedDate = errors.New("invalid closed date range")
	ErrNilArgument       = errors.New("required argument is missing")
)

// OperatingPolicy decides which slots exist for a room. One per room.
type OperatingPolicy struct {
	id          int64
	roomID      int64
	weekly      WeeklySchedule
	recurrence  RecurrenceRule
	slotUnit    slot.Unit
	closedDates []ClosedDateRange
	createdAt   time.Time
	updatedAt   time.Time
}

func NewOperatingPolicy(
	roomID int64,
	weekly WeeklySchedule,
	recurrence RecurrenceRule,
	slotUnit slot.Unit,
	closedDates []ClosedDateRange,
	now time.Time,
) (*OperatingPolicy, error) {
	if roomID <= 0 {
		return nil, fmt.Errorf("%w: room id must be positive", ErrInvalidPolicy)
	}
	if weekly.isNil() {
		return nil, fmt.Errorf("%w: weekly schedule", ErrNilArgument)
	}
	if !recurrence.IsValid() {
		return nil, fmt.Errorf("%w: unknown recurrence rule %q", ErrInvalidPolicy, recurrence)
	}
	if !slotUnit.IsValid() {
		return nil, fmt.Errorf("%w: unknown slot unit %q", ErrInvalidPolicy, slotUnit)
	}
	return &OperatingPolicy{
		roomID:      roomID,
		weekly:      weekly,
		recurrence:  recurrence,
		slotUnit:    slotUnit,
		closedDates: append([]ClosedDateRange(nil), closedDates...),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructOperatingPolicy(
	id, roomID int64,
	weekly WeeklySchedule,
	recurrence RecurrenceRule,
	slotUnit slot.Unit,
	closedDates []ClosedDateRange,
	createdAt, updatedAt time.Time,
) *OperatingPolicy {
	return &OperatingPolicy{
		id:          id,
		roomID:      roomID,
		weekly:      weekly,
		recurrence:  recurrence,
		slotUnit:    slotUnit,
		closedDates: closedDates,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// GenerateSlotsFor returns the slots the policy yields on date. A date
// outside the recurrence or closed for the full day yields nothing; start
// times inside a partial closure are emitted as CLOSED. unit is recorded on
// each slot and does not change which start times are emitted.
func (p *OperatingPolicy) GenerateSlotsFor(date civil.Date, unit slot.Unit, now time.Time) ([]*slot.TimeSlot, error) {
	if !p.recurrence.Matches(date) || p.IsFullDayClosed(date) {
		return nil, nil
	}

	times := p.weekly.TimesFor(date.Weekday())
	out := make([]*slot.TimeSlot, 0, len(times))
	for _, t := range times {
		status := slot.StatusAvailable
		if p.IsClosedAt(date, t) {
			status = slot.StatusClosed
		}
		s, err := slot.New(p.roomID, date, t, unit, status, now)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (p *OperatingPolicy) IsFullDayClosed(date civil.Date) bool {
	return IsFullDayClosed(p.closedDates, date)
}

func (p *OperatingPolicy) IsClosedAt(date civil.Date, t civil.TimeOfDay) bool {
	return IsClosedAt(p.closedDates, date, t)
}

func (p *OperatingPolicy) UpdateWeeklySchedule(weekly WeeklySchedule, now time.Time) error {
	if weekly.isNil() {
		return fmt.Errorf("%w: weekly schedule", ErrNilArgument)
	}
	p.weekly = weekly
	p.updatedAt = now
	return nil
}

func (p *OperatingPolicy) UpdateRecurrence(rule RecurrenceRule, now time.Time) error {
	if rule == "" {
		return fmt.Errorf("%w: recurrence rule", ErrNilArgument)
	}
	if !rule.IsValid() {
		return fmt.Errorf("%w: unknown recurrence rule %q", ErrInvalidPolicy, rule)
	}
	p.recurrence = rule
	p.updatedAt = now
	return nil
}

func (p *OperatingPolicy) UpdateSlotUnit(unit slot.Unit, now time.Time) error {
	if unit == "" {
		return fmt.Errorf("%w: slot unit", ErrNilArgument)
	}
	if !unit.IsValid() {
		return fmt.Errorf("%w: unknown slot unit %q", ErrInvalidPolicy, unit)
	}
	p.slotUnit = unit
	p.updatedAt = now
	return nil
}

func (p *OperatingPolicy) AddClosedDate(r *ClosedDateRange, now time.Time) error {
	if r == nil {
		return fmt.Errorf("%w: closed date range", ErrNilArgument)
	}
	p.closedDates = append(p.closedDates, *r)
	p.updatedAt = now
	return nil
}

// RemoveClosedDate drops every range equal to r. Removing an absent range is not an error.
func (p *OperatingPolicy) RemoveClosedDate(r *ClosedDateRange, now time.Time) error {
	if r == nil {
		return fmt.Errorf("%w: closed date range", ErrNilArgument)
	}
	kept := p.closedDates[:0]
	for _, existing := range p.closedDates {
		if !existing.Equal(*r) {
			kept = append(kept, existing)
		}
	}
	p.closedDates = kept
	p.updatedAt = now
	return nil
}

func (p *OperatingPolicy) UpdateClosedDates(ranges []ClosedDateRange, now time.Time) error {
	if ranges == nil {
		return fmt.Errorf("%w: closed date list", ErrNilArgument)
	}
	p.closedDates = append([]ClosedDateRange(nil), ranges...)
	p.updatedAt = now
	return nil
}

func (p *OperatingPolicy) ID() int64                      { return p.id }
func (p *OperatingPolicy) RoomID() int64                  { return p.roomID }
func (p *OperatingPolicy) WeeklySchedule() WeeklySchedule { return p.weekly }
func (p *OperatingPolicy) Recurrence() RecurrenceRule     { return p.recurrence }
func (p *OperatingPolicy) SlotUnit() slot.Unit            { return p.slotUnit }
func (p *OperatingPolicy) CreatedAt() time.Time           { return p.createdAt }
func (p *OperatingPolicy) UpdatedAt() time.Time           { return p.updatedAt }

func (p *OperatingPolicy) ClosedDates() []ClosedDateRange {
	return append([]ClosedDateRange(nil), p.closedDates...)
}

// SetID is called by the store after insert.
func (p *OperatingPolicy) SetID(id int64) { p.id = id }
