package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validationFixture struct {
	Date     string `validate:"omitempty,date_ymd"`
	Clock    string `validate:"omitempty,hhmm"`
	Timezone string `validate:"omitempty,iana_tz"`
	Length   int    `validate:"omitempty,lesson_length"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("Date Tag", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&validationFixture{Date: "2025-03-03"}))
		assert.Error(t, ValidateStruct(&validationFixture{Date: "03/03/2025"}))
		assert.Error(t, ValidateStruct(&validationFixture{Date: "2025-02-30"}))
	})

	t.Run("Clock Tag", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&validationFixture{Clock: "17:30"}))
		assert.Error(t, ValidateStruct(&validationFixture{Clock: "24:00"}))
		assert.Error(t, ValidateStruct(&validationFixture{Clock: "5pm"}))
	})

	t.Run("Timezone Tag", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&validationFixture{Timezone: "America/New_York"}))
		assert.Error(t, ValidateStruct(&validationFixture{Timezone: "Not/AZone"}))
	})

	t.Run("Lesson Length Tag", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&validationFixture{Length: 30}))
		assert.NoError(t, ValidateStruct(&validationFixture{Length: 60}))
		assert.Error(t, ValidateStruct(&validationFixture{Length: 45}))
	})
}
