package policy

import (
	"fmt"
	"time"
)

// CapWindow decides which bookings count toward a cap.
type CapWindow string

const (
	// WindowLifetime counts every booking the employee ever made.
	WindowLifetime CapWindow = "lifetime"
	// WindowAnnual counts bookings whose leave starts in the same calendar year.
	WindowAnnual CapWindow = "annual"
)

// LifetimePeriod is the period key shared by all lifetime bookings.
const LifetimePeriod = 0

func ParseCapWindow(v string) (CapWindow, error) {
	switch CapWindow(v) {
	case WindowLifetime, "":
		return WindowLifetime, nil
	case WindowAnnual:
		return WindowAnnual, nil
	default:
		return "", fmt.Errorf("unknown cap window %q", v)
	}
}

// Period returns the ledger period a leave starting on start is booked into.
func (w CapWindow) Period(start time.Time) int {
	if w == WindowAnnual {
		return start.Year()
	}
	return LifetimePeriod
}
