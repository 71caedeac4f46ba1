package policy

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"room-slot-service/internal/pkg/civil"
)

type WeeklySlot struct {
	Day   time.Weekday
	Start civil.TimeOfDay
}

// WeeklySchedule is a set of (weekday, start time) pairs. Insertion order is irrelevant.
type WeeklySchedule struct {
	slots map[WeeklySlot]struct{}
}

func NewWeeklySchedule(slots ...WeeklySlot) WeeklySchedule {
	ws := WeeklySchedule{slots: make(map[WeeklySlot]struct{}, len(slots))}
	for _, s := range slots {
		ws.slots[s] = struct{}{}
	}
	return ws
}

func (w WeeklySchedule) Len() int {
	return len(w.slots)
}

func (w WeeklySchedule) Contains(s WeeklySlot) bool {
	_, ok := w.slots[s]
	return ok
}

// TimesFor returns the distinct start times scheduled on day, ascending.
func (w WeeklySchedule) TimesFor(day time.Weekday) []civil.TimeOfDay {
	var out []civil.TimeOfDay
	for s := range w.slots {
		if s.Day == day {
			out = append(out, s.Start)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Slots returns the schedule ordered by weekday (Monday first) then time.
func (w WeeklySchedule) Slots() []WeeklySlot {
	out := make([]WeeklySlot, 0, len(w.slots))
	for s := range w.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := isoDay(out[i].Day), isoDay(out[j].Day)
		if di != dj {
			return di < dj
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func isoDay(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

func (w WeeklySchedule) isNil() bool {
	return w.slots == nil
}

// ParseWeekday accepts English day names in any case ("monday", "MONDAY").
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidPolicy, s)
}
