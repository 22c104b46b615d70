package availability

import (
	"time"

	"lessonbook-service/internal/app/models"
)

// FilterConflicts drops every slot start whose [start, start+length) window
// intersects at least one busy interval. Intervals are half-open, so a lesson
// ending exactly when a busy window begins survives.
func FilterConflicts(starts []time.Time, length time.Duration, busy []models.BusyInterval) []time.Time {
	if len(busy) == 0 {
		return starts
	}

	free := make([]time.Time, 0, len(starts))
	for _, start := range starts {
		end := start.Add(length)
		conflicted := false
		for _, interval := range busy {
			if interval.Overlaps(start, end) {
				conflicted = true
				break
			}
		}
		if !conflicted {
			free = append(free, start)
		}
	}
	return free
}
