//go:build unit || e2e

package builder

import (
	"time"

	"room-slot-service/internal/domain/policy"
	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/pkg/civil"
)

type PolicyBuilder struct {
	RoomID      int64
	Weekly      []policy.WeeklySlot
	Recurrence  policy.RecurrenceRule
	SlotUnit    slot.Unit
	ClosedDates []policy.ClosedDateRange
	Now         time.Time
}

// NewPolicyBuilder defaults to room 1 open 09:00-11:00 (three hourly slots)
// every weekday.
func NewPolicyBuilder() *PolicyBuilder {
	b := &PolicyBuilder{
		RoomID:     1,
		Recurrence: policy.EveryWeek,
		SlotUnit:   slot.UnitHour,
		Now:        time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC),
	}
	for d := time.Monday; d <= time.Friday; d++ {
		b.Weekly = append(b.Weekly, DayAt(d, "09:00", "10:00", "11:00")...)
	}
	return b
}

func (b *PolicyBuilder) With(mutate func(*PolicyBuilder)) *PolicyBuilder {
	mutate(b)
	return b
}

func (b *PolicyBuilder) BuildDomain() (*policy.OperatingPolicy, error) {
	return policy.NewOperatingPolicy(
		b.RoomID,
		policy.NewWeeklySchedule(b.Weekly...),
		b.Recurrence,
		b.SlotUnit,
		b.ClosedDates,
		b.Now,
	)
}

// DayAt expands "HH:MM" start times on one weekday.
func DayAt(day time.Weekday, starts ...string) []policy.WeeklySlot {
	out := make([]policy.WeeklySlot, 0, len(starts))
	for _, s := range starts {
		out = append(out, policy.WeeklySlot{Day: day, Start: MustTime(s)})
	}
	return out
}

func MustTime(s string) civil.TimeOfDay {
	t, err := civil.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func MustDate(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
