package responses

import "time"

type Booking struct {
	BookingID        string    `json:"bookingId"`
	InstructorID     string    `json:"instructorId"`
	StudentID        string    `json:"studentId"`
	StartAt          time.Time `json:"startAt"`
	EndAt            time.Time `json:"endAt"`
	LengthMinutes    int       `json:"lengthMinutes"`
	Status           string    `json:"status"`
	PriceCents       int       `json:"priceCents"`
	Currency         string    `json:"currency"`
	PaymentReference string    `json:"paymentReference,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreatedBooking struct {
	BookingID string `json:"bookingId"`
}
