package utils

import (
	"fmt"
	"regexp"
	"time"

	"lessonbook-service/internal/pkg/constvars"
)

var hhmmPattern = regexp.MustCompile(constvars.RegexTimeHHMM)

// ParseClockMinutes converts an "HH:MM" wall-clock string to minutes since
// midnight. The second return is false for anything that does not match the
// 24-hour clock format.
func ParseClockMinutes(clock string) (int, bool) {
	if !hhmmPattern.MatchString(clock) {
		return 0, false
	}
	var hours, minutes int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hours, &minutes); err != nil {
		return 0, false
	}
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// DayWindow is one calendar day pinned to a fixed UTC offset, so every
// wall-clock minute within it maps to exactly one instant.
type DayWindow struct {
	Start   time.Time
	End     time.Time
	Weekday int
}

// ResolveDayWindow computes the [midnight, midnight+24h) window for a
// YYYY-MM-DD date in the given location. The UTC offset is sampled at noon of
// that date and held fixed for the whole day, so a DST transition shifts the
// day's slots uniformly instead of splitting the day across two offsets.
func ResolveDayWindow(date string, loc *time.Location) (DayWindow, error) {
	parsed, err := time.Parse(constvars.DateLayoutYYYYMMDD, date)
	if err != nil {
		return DayWindow{}, err
	}
	year, month, day := parsed.Date()

	noon := time.Date(year, month, day, 12, 0, 0, 0, loc)
	_, offsetSeconds := noon.Zone()
	fixed := time.FixedZone(loc.String(), offsetSeconds)

	start := time.Date(year, month, day, 0, 0, 0, 0, fixed)
	return DayWindow{
		Start:   start,
		End:     start.Add(24 * time.Hour),
		Weekday: int(start.Weekday()),
	}, nil
}
