package utils

import (
	"testing"
	"time"

	"lessonbook-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestParseClockMinutes(t *testing.T) {
	t.Run("Valid Times", func(t *testing.T) {
		minutes, ok := ParseClockMinutes("00:00")
		assert.True(t, ok)
		assert.Equal(t, 0, minutes)

		minutes, ok = ParseClockMinutes("17:30")
		assert.True(t, ok)
		assert.Equal(t, 17*60+30, minutes)

		minutes, ok = ParseClockMinutes("23:59")
		assert.True(t, ok)
		assert.Equal(t, 23*60+59, minutes)
	})

	t.Run("Invalid Times", func(t *testing.T) {
		for _, input := range []string{"", "9:00", "24:00", "12:60", "noon", "12-30"} {
			_, ok := ParseClockMinutes(input)
			assert.False(t, ok, "expected %q to be rejected", input)
		}
	})
}

func TestNormalizeWeeklyBlocks(t *testing.T) {
	t.Run("Drops Invalid Blocks", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{
			{Day: 7, Start: "09:00", End: "10:00"},
			{Day: -1, Start: "09:00", End: "10:00"},
			{Day: 1, Start: "9am", End: "10:00"},
			{Day: 1, Start: "09:00", End: "09:00"},
			{Day: 1, Start: "10:00", End: "09:00"},
			{Day: 1, Start: "09:00", End: "10:00"},
		}

		normalized := NormalizeWeeklyBlocks(blocks)

		assert.Equal(t, []models.WeeklyRuleBlock{{Day: 1, Start: "09:00", End: "10:00"}}, normalized)
	})

	t.Run("Sorts By Day Then Start", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{
			{Day: 3, Start: "08:00", End: "09:00"},
			{Day: 1, Start: "17:00", End: "20:00"},
			{Day: 1, Start: "09:00", End: "12:00"},
		}

		normalized := NormalizeWeeklyBlocks(blocks)

		assert.Equal(t, []models.WeeklyRuleBlock{
			{Day: 1, Start: "09:00", End: "12:00"},
			{Day: 1, Start: "17:00", End: "20:00"},
			{Day: 3, Start: "08:00", End: "09:00"},
		}, normalized)
	})

	t.Run("Removes Exact Duplicates", func(t *testing.T) {
		blocks := []models.WeeklyRuleBlock{
			{Day: 2, Start: "10:00", End: "11:00"},
			{Day: 2, Start: "10:00", End: "11:00"},
		}

		normalized := NormalizeWeeklyBlocks(blocks)

		assert.Len(t, normalized, 1)
	})

	t.Run("Empty Input", func(t *testing.T) {
		assert.Empty(t, NormalizeWeeklyBlocks(nil))
	})
}

func TestFindOverlappingBlocks(t *testing.T) {
	t.Run("Detects Same Day Overlap", func(t *testing.T) {
		blocks := NormalizeWeeklyBlocks([]models.WeeklyRuleBlock{
			{Day: 1, Start: "09:00", End: "12:00"},
			{Day: 1, Start: "11:00", End: "13:00"},
		})

		first, second, overlap := FindOverlappingBlocks(blocks)

		assert.True(t, overlap)
		assert.Equal(t, "09:00", first.Start)
		assert.Equal(t, "11:00", second.Start)
	})

	t.Run("Adjacent Blocks Do Not Overlap", func(t *testing.T) {
		blocks := NormalizeWeeklyBlocks([]models.WeeklyRuleBlock{
			{Day: 1, Start: "09:00", End: "12:00"},
			{Day: 1, Start: "12:00", End: "13:00"},
		})

		_, _, overlap := FindOverlappingBlocks(blocks)

		assert.False(t, overlap)
	})

	t.Run("Same Times On Different Days Do Not Overlap", func(t *testing.T) {
		blocks := NormalizeWeeklyBlocks([]models.WeeklyRuleBlock{
			{Day: 1, Start: "09:00", End: "12:00"},
			{Day: 2, Start: "09:00", End: "12:00"},
		})

		_, _, overlap := FindOverlappingBlocks(blocks)

		assert.False(t, overlap)
	})
}

func TestResolveDayWindow(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	t.Run("Standard Time", func(t *testing.T) {
		window, err := ResolveDayWindow("2025-03-03", newYork)
		assert.NoError(t, err)

		// 2025-03-03 is a Monday and EST is UTC-5.
		assert.Equal(t, 1, window.Weekday)
		_, offset := window.Start.Zone()
		assert.Equal(t, -5*3600, offset)
		assert.Equal(t, 24*time.Hour, window.End.Sub(window.Start))
	})

	t.Run("Daylight Saving Day Uses Noon Offset", func(t *testing.T) {
		// DST starts 2025-03-09 at 02:00; noon is already EDT.
		window, err := ResolveDayWindow("2025-03-09", newYork)
		assert.NoError(t, err)

		assert.Equal(t, 0, window.Weekday)
		_, offset := window.Start.Zone()
		assert.Equal(t, -4*3600, offset)
	})

	t.Run("Invalid Date", func(t *testing.T) {
		_, err := ResolveDayWindow("03/03/2025", newYork)
		assert.Error(t, err)
	})
}
