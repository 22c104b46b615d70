package models

import "time"

// BusyInterval is a half-open [Start, End) window during which the instructor
// cannot take a lesson. It is never persisted, only assembled per request from
// bookings and the external calendar.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the half-open interval [start, end) intersects b.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
