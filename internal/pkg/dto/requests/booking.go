package requests

// CreateBooking is the payload accepted by POST /bookings. StudentID is not
// part of the body; it arrives via the X-Student-Id header and is injected by
// the controller before validation. Price is derived from the lesson length
// server side and never taken from the client.
type CreateBooking struct {
	InstructorID  string `json:"instructorId" validate:"required"`
	StudentID     string `json:"-" validate:"required"`
	StartAt       string `json:"startAt" validate:"required"`
	LengthMinutes int    `json:"lengthMinutes" validate:"required,lesson_length"`
}
