package requests

// CreateCheckout asks the payment gateway for a checkout session covering an
// existing pending booking.
type CreateCheckout struct {
	BookingID     string `json:"bookingId" validate:"required,uuid"`
	LengthMinutes int    `json:"length" validate:"required,lesson_length"`
}
