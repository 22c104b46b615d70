package contracts

import (
	"context"
	"time"

	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
)

type UpdateBookingStatusInput struct {
	BookingID        string
	ExpectedPrior    []models.BookingStatus
	NewStatus        models.BookingStatus
	PaymentReference string
	// CheckoutSessionID, when set, is stored alongside the transition.
	CheckoutSessionID string
}

type UpdateBookingStatusOutput struct {
	// Booking is the post-operation state of the document.
	Booking *models.Booking
	// Applied is false when the status gate rejected the update. Booking then
	// carries the untouched current document.
	Applied bool
}

// BookingRepository stores bookings keyed by booking ID. CreateIfAbsent fails
// with ErrBookingAlreadyExists when the ID is taken, FindByID returns
// (nil, nil) when no document matches, and UpdateStatusConditionally applies
// the status transition atomically against ExpectedPrior.
type BookingRepository interface {
	CreateIfAbsent(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindByInstructorAndWindow(ctx context.Context, instructorID string, from, to time.Time) ([]models.Booking, error)
	UpdateStatusConditionally(ctx context.Context, input *UpdateBookingStatusInput) (*UpdateBookingStatusOutput, error)
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, request *requests.CreateBooking) (*responses.CreatedBooking, error)
	GetBookingByID(ctx context.Context, bookingID string) (*responses.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID, paymentReference string) error
}
