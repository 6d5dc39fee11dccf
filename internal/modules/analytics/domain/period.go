package domain

import (
	"fmt"
	"time"
)

// Period is the sliding window used to filter sessions before aggregation,
// always anchored at "now" when the snapshot is requested.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

func (p Period) Validate() error {
	switch p {
	case PeriodDay, PeriodMonth, PeriodYear, PeriodAll:
		return nil
	default:
		return fmt.Errorf("unsupported period %q", string(p))
	}
}

// Start returns the window's lower bound in now's location, and whether the
// window is bounded at all (PeriodAll is not).
func (p Period) Start(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}
