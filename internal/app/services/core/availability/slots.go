package availability

import (
	"sort"
	"time"

	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/utils"
)

// GenerateSlotStarts walks every block matching the window's weekday in
// lengthMinutes steps and returns the start instant of each lesson that fits
// entirely inside the block. A block shorter than the lesson length yields
// nothing. Results are sorted and deduplicated, since legacy rule documents
// may carry blocks that produce the same start twice.
func GenerateSlotStarts(blocks []models.WeeklyRuleBlock, window utils.DayWindow, lengthMinutes int) []time.Time {
	if lengthMinutes <= 0 {
		return nil
	}

	var starts []time.Time
	for _, block := range blocks {
		if block.Day != window.Weekday {
			continue
		}
		startMinutes, ok := utils.ParseClockMinutes(block.Start)
		if !ok {
			continue
		}
		endMinutes, ok := utils.ParseClockMinutes(block.End)
		if !ok {
			continue
		}
		for minute := startMinutes; minute+lengthMinutes <= endMinutes; minute += lengthMinutes {
			starts = append(starts, window.Start.Add(time.Duration(minute)*time.Minute))
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	deduped := starts[:0]
	for i, start := range starts {
		if i > 0 && start.Equal(starts[i-1]) {
			continue
		}
		deduped = append(deduped, start)
	}
	return deduped
}
