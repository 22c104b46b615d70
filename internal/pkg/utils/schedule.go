package utils

import (
	"sort"

	"lessonbook-service/internal/app/models"
)

// NormalizeWeeklyBlocks drops blocks with an out-of-range weekday, a malformed
// clock string, or a non-positive duration, then sorts by (day, start) and
// removes exact duplicates. Stored rules predating validation pass through
// here on every read, so the generator never sees a malformed block.
func NormalizeWeeklyBlocks(blocks []models.WeeklyRuleBlock) []models.WeeklyRuleBlock {
	cleaned := make([]models.WeeklyRuleBlock, 0, len(blocks))
	for _, block := range blocks {
		if block.Day < 0 || block.Day > 6 {
			continue
		}
		startMinutes, ok := ParseClockMinutes(block.Start)
		if !ok {
			continue
		}
		endMinutes, ok := ParseClockMinutes(block.End)
		if !ok {
			continue
		}
		if endMinutes <= startMinutes {
			continue
		}
		cleaned = append(cleaned, block)
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		if cleaned[i].Day != cleaned[j].Day {
			return cleaned[i].Day < cleaned[j].Day
		}
		startI, _ := ParseClockMinutes(cleaned[i].Start)
		startJ, _ := ParseClockMinutes(cleaned[j].Start)
		return startI < startJ
	})

	deduped := cleaned[:0]
	seen := make(map[models.WeeklyRuleBlock]struct{}, len(cleaned))
	for _, block := range cleaned {
		if _, ok := seen[block]; ok {
			continue
		}
		seen[block] = struct{}{}
		deduped = append(deduped, block)
	}
	return deduped
}

// FindOverlappingBlocks returns the first pair of same-day blocks whose time
// ranges intersect, or ok=false when no pair overlaps. Input is expected to
// already be normalized (sorted by day and start).
func FindOverlappingBlocks(blocks []models.WeeklyRuleBlock) (models.WeeklyRuleBlock, models.WeeklyRuleBlock, bool) {
	for i := 1; i < len(blocks); i++ {
		prev, current := blocks[i-1], blocks[i]
		if prev.Day != current.Day {
			continue
		}
		prevEnd, _ := ParseClockMinutes(prev.End)
		currentStart, _ := ParseClockMinutes(current.Start)
		if currentStart < prevEnd {
			return prev, current, true
		}
	}
	return models.WeeklyRuleBlock{}, models.WeeklyRuleBlock{}, false
}
