package availability

import (
	"testing"
	"time"

	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func mondayWindow(t *testing.T) utils.DayWindow {
	t.Helper()
	newYork, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)
	window, err := utils.ResolveDayWindow("2025-03-03", newYork)
	assert.NoError(t, err)
	return window
}

func TestGenerateSlotStarts(t *testing.T) {
	window := mondayWindow(t)

	t.Run("Thirty Minute Steps", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{{Day: 1, Start: "17:00", End: "20:00"}}

		starts := GenerateSlotStarts(blocks, window, 30)

		assert.Len(t, starts, 6)
		assert.Equal(t, window.Start.Add(17*time.Hour), starts[0])
		assert.Equal(t, window.Start.Add(19*time.Hour+30*time.Minute), starts[5])
	})

	t.Run("Sixty Minute Steps", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{{Day: 1, Start: "17:00", End: "20:00"}}

		starts := GenerateSlotStarts(blocks, window, 60)

		assert.Len(t, starts, 3)
		assert.Equal(t, window.Start.Add(19*time.Hour), starts[2])
	})

	t.Run("Block Shorter Than Lesson", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{{Day: 1, Start: "17:00", End: "17:20"}}

		assert.Empty(t, GenerateSlotStarts(blocks, window, 30))
	})

	t.Run("Trailing Remainder Is Dropped", func(t *testing.T) {
		// 17:00-17:45 fits one 30-minute lesson; the 17:30 start would
		// run past the block end.
		blocks := []models.WeeklyRuleBlock{{Day: 1, Start: "17:00", End: "17:45"}}

		starts := GenerateSlotStarts(blocks, window, 30)

		assert.Len(t, starts, 1)
		assert.Equal(t, window.Start.Add(17*time.Hour), starts[0])
	})

	t.Run("Blocks On Other Days Are Ignored", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{{Day: 2, Start: "17:00", End: "20:00"}}

		assert.Empty(t, GenerateSlotStarts(blocks, window, 30))
	})

	t.Run("Overlapping Blocks Deduplicate Starts", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{
			{Day: 1, Start: "09:00", End: "10:00"},
			{Day: 1, Start: "09:00", End: "10:30"},
		}

		starts := GenerateSlotStarts(blocks, window, 30)

		assert.Equal(t, []time.Time{
			window.Start.Add(9 * time.Hour),
			window.Start.Add(9*time.Hour + 30*time.Minute),
			window.Start.Add(10 * time.Hour),
		}, starts)
	})

	t.Run("Non Positive Length", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{{Day: 1, Start: "17:00", End: "20:00"}}

		assert.Empty(t, GenerateSlotStarts(blocks, window, 0))
	})
}

func TestFilterConflicts(t *testing.T) {
	window := mondayWindow(t)
	starts := GenerateSlotStarts(
		[]models.WeeklyRuleBlock{{Day: 1, Start: "17:00", End: "20:00"}},
		window,
		30,
	)

	t.Run("No Busy Intervals", func(t *testing.T) {
		free := FilterConflicts(starts, 30*time.Minute, nil)

		assert.Equal(t, starts, free)
	})

	t.Run("Partial Overlap Removes Both Touched Slots", func(t *testing.T) {
		busy := []models.BusyInterval{{
			Start: window.Start.Add(17*time.Hour + 45*time.Minute),
			End:   window.Start.Add(18*time.Hour + 15*time.Minute),
		}}

		free := FilterConflicts(starts, 30*time.Minute, busy)

		assert.Len(t, free, 4)
		assert.NotContains(t, free, window.Start.Add(17*time.Hour+30*time.Minute))
		assert.NotContains(t, free, window.Start.Add(18*time.Hour))
	})

	t.Run("Exact Slot Booking Removes Only That Slot", func(t *testing.T) {
		busy := []models.BusyInterval{{
			Start: window.Start.Add(18 * time.Hour),
			End:   window.Start.Add(18*time.Hour + 30*time.Minute),
		}}

		free := FilterConflicts(starts, 30*time.Minute, busy)

		assert.Len(t, free, 5)
		assert.NotContains(t, free, window.Start.Add(18*time.Hour))
	})

	t.Run("Boundary Touching Interval Does Not Conflict", func(t *testing.T) {
		// Busy window starts exactly when the 17:00 lesson ends.
		busy := []models.BusyInterval{{
			Start: window.Start.Add(17*time.Hour + 30*time.Minute),
			End:   window.Start.Add(18 * time.Hour),
		}}

		free := FilterConflicts([]time.Time{window.Start.Add(17 * time.Hour)}, 30*time.Minute, busy)

		assert.Len(t, free, 1)
	})
}
