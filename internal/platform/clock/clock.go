package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time. Analytics buckets sessions by
// the hour-of-day in the clock's location, so the zone matters here.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
