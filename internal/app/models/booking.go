package models

import "time"

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusPaid           BookingStatus = "PAID"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
)

// Booking is a student's claim on one offered slot. It is created as
// PENDING_PAYMENT, moves forward only (to PAID or CANCELLED), and is never
// deleted; terminal records stay as audit history.
type Booking struct {
	BookingID         string        `json:"bookingId" bson:"_id"`
	InstructorID      string        `json:"instructorId" bson:"instructorId"`
	StudentID         string        `json:"studentId" bson:"studentId"`
	StartAt           time.Time     `json:"startAt" bson:"startAt"`
	EndAt             time.Time     `json:"endAt" bson:"endAt"`
	LengthMinutes     int           `json:"lengthMinutes" bson:"lengthMinutes"`
	Status            BookingStatus `json:"status" bson:"status"`
	PriceCents        int           `json:"priceCents" bson:"priceCents"`
	Currency          string        `json:"currency" bson:"currency"`
	PaymentReference  string        `json:"paymentReference,omitempty" bson:"paymentReference,omitempty"`
	CheckoutSessionID string        `json:"checkoutSessionId,omitempty" bson:"checkoutSessionId,omitempty"`
	CreatedAt         time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Blocks reports whether this booking removes its slot from the offered set.
func (b *Booking) Blocks() bool {
	return b.Status == BookingStatusPendingPayment || b.Status == BookingStatusPaid
}
