package clock

import (
	"sync"
	"time"

	"room-slot-service/internal/pkg/civil"
)

type Clock interface {
	Now() time.Time
}

// RealClock reports the current time in the configured slot zone so that
// no code path depends on the process-wide local zone.
type RealClock struct {
	loc *time.Location
}

func NewRealClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &RealClock{loc: loc}
}

func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the calendar date of c.Now() in the clock's own zone.
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now())
}

type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}
