package utils

import "time"

// Clock is the source of "now" for anything that defaults a date or a month.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// ZonedClock reports the time of an inner clock in a fixed location, so that
// calendar days and months are those of the user rather than of the host.
type ZonedClock struct {
	Inner    Clock
	Location *time.Location
}

func InLocation(inner Clock, location *time.Location) ZonedClock {
	return ZonedClock{Inner: inner, Location: location}
}

func (z ZonedClock) Now() time.Time {
	if z.Location == nil {
		return z.Inner.Now()
	}
	return z.Inner.Now().In(z.Location)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
