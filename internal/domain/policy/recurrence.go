package policy

import (
	"fmt"

	"room-slot-service/internal/pkg/civil"
)

// RecurrenceRule selects which ISO weeks a weekly schedule applies to.
type RecurrenceRule string

const (
	EveryWeek RecurrenceRule = "EVERY_WEEK"
	OddWeek   RecurrenceRule = "ODD_WEEK"
	EvenWeek  RecurrenceRule = "EVEN_WEEK"
)

func ParseRecurrenceRule(s string) (RecurrenceRule, error) {
	r := RecurrenceRule(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown recurrence rule %q", ErrInvalidPolicy, s)
	}
	return r, nil
}

func (r RecurrenceRule) IsValid() bool {
	switch r {
	case EveryWeek, OddWeek, EvenWeek:
		return true
	default:
		return false
	}
}

func (r RecurrenceRule) String() string {
	return string(r)
}

// Matches reports whether the rule applies on date. Odd/even use the ISO-8601
// week number, so Dec 29-31 may count as week 1 of the following year.
func (r RecurrenceRule) Matches(date civil.Date) bool {
	switch r {
	case EveryWeek:
		return true
	case OddWeek:
		_, week := date.ISOWeek()
		return week%2 == 1
	case EvenWeek:
		_, week := date.ISOWeek()
		return week%2 == 0
	default:
		return false
	}
}
