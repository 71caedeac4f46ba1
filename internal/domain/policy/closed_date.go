package policy

import (
	"fmt"

	"room-slot-service/internal/pkg/civil"
)

// ClosedDateRange is one exception to the weekly schedule. Without an end
// date it covers a single day; without times it covers whole days.
type ClosedDateRange struct {
	startDate civil.Date
	endDate   *civil.Date
	startTime *civil.TimeOfDay
	endTime   *civil.TimeOfDay
}

func NewClosedDateRange(startDate civil.Date, endDate *civil.Date, startTime, endTime *civil.TimeOfDay) (ClosedDateRange, error) {
	if startDate.IsZero() {
		return ClosedDateRange{}, fmt.Errorf("%w: closed date start is required", ErrInvalidClosedDate)
	}
	if endDate != nil && endDate.Before(startDate) {
		return ClosedDateRange{}, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidClosedDate, endDate, startDate)
	}
	if (startTime == nil) != (endTime == nil) {
		return ClosedDateRange{}, fmt.Errorf("%w: start and end time must be given together", ErrInvalidClosedDate)
	}
	if startTime != nil && endTime.Before(*startTime) {
		return ClosedDateRange{}, fmt.Errorf("%w: end time %s is before start time %s", ErrInvalidClosedDate, endTime, startTime)
	}
	return ClosedDateRange{
		startDate: startDate,
		endDate:   endDate,
		startTime: startTime,
		endTime:   endTime,
	}, nil
}

// FullDay is shorthand for a date range closed at all times.
func FullDay(start civil.Date, end *civil.Date) (ClosedDateRange, error) {
	return NewClosedDateRange(start, end, nil, nil)
}

func (r ClosedDateRange) lastDate() civil.Date {
	if r.endDate == nil {
		return r.startDate
	}
	return *r.endDate
}

func (r ClosedDateRange) ContainsDate(date civil.Date) bool {
	return !date.Before(r.startDate) && !date.After(r.lastDate())
}

// ContainsTime matches the half-open interval [startTime, endTime), so a
// 12:00-13:00 closure blocks the 12:00 slot but not the one starting at 13:00.
// A zero-length range blocks exactly its start time. A range without bounds
// matches every time.
func (r ClosedDateRange) ContainsTime(t civil.TimeOfDay) bool {
	if !r.HasTimeBounds() {
		return true
	}
	if *r.startTime == *r.endTime {
		return t == *r.startTime
	}
	return !t.Before(*r.startTime) && t.Before(*r.endTime)
}

func (r ClosedDateRange) Contains(date civil.Date, t civil.TimeOfDay) bool {
	return r.ContainsDate(date) && r.ContainsTime(t)
}

func (r ClosedDateRange) HasTimeBounds() bool {
	return r.startTime != nil && r.endTime != nil
}

func (r ClosedDateRange) Equal(o ClosedDateRange) bool {
	return r.startDate == o.startDate &&
		eqPtr(r.endDate, o.endDate) &&
		eqPtr(r.startTime, o.startTime) &&
		eqPtr(r.endTime, o.endTime)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r ClosedDateRange) StartDate() civil.Date       { return r.startDate }
func (r ClosedDateRange) EndDate() *civil.Date        { return r.endDate }
func (r ClosedDateRange) StartTime() *civil.TimeOfDay { return r.startTime }
func (r ClosedDateRange) EndTime() *civil.TimeOfDay   { return r.endTime }

// IsFullDayClosed reports whether any date-only range covers date.
func IsFullDayClosed(ranges []ClosedDateRange, date civil.Date) bool {
	for _, r := range ranges {
		if !r.HasTimeBounds() && r.ContainsDate(date) {
			return true
		}
	}
	return false
}

// IsClosedAt reports whether any range covers (date, t). Overlaps are OR'ed.
func IsClosedAt(ranges []ClosedDateRange, date civil.Date, t civil.TimeOfDay) bool {
	for _, r := range ranges {
		if r.Contains(date, t) {
			return true
		}
	}
	return false
}
