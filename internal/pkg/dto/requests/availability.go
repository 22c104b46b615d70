package requests

// GetAvailableSlots carries the query parameters of the availability endpoint.
type GetAvailableSlots struct {
	InstructorID  string `json:"instructor_id" validate:"required"`
	Date          string `json:"date" validate:"required,date_ymd"`
	LengthMinutes int    `json:"length" validate:"required,lesson_length"`
	Timezone      string `json:"tz" validate:"omitempty,iana_tz"`
}
