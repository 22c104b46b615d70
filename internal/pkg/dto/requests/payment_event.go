package requests

// PaymentConfirmationEvent is the inbound gateway notification that a
// checkout completed. EventID is informational only; deduplication is done by
// the booking status machine, not by event identity.
type PaymentConfirmationEvent struct {
	BookingID        string `json:"bookingId" validate:"required"`
	PaymentReference string `json:"paymentReference" validate:"required"`
	EventID          string `json:"eventId"`
}
