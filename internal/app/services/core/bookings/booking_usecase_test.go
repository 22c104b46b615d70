package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeBookingRepository keeps bookings in a map and mirrors the repository
// contract, including the status gate on conditional updates.
type fakeBookingRepository struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepository) CreateIfAbsent(_ context.Context, booking *models.Booking) error {
	if _, ok := r.bookings[booking.BookingID]; ok {
		return exceptions.ErrBookingAlreadyExists(nil)
	}
	stored := *booking
	r.bookings[booking.BookingID] = &stored
	return nil
}

func (r *fakeBookingRepository) FindByID(_ context.Context, bookingID string) (*models.Booking, error) {
	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	found := *booking
	return &found, nil
}

func (r *fakeBookingRepository) FindByInstructorAndWindow(_ context.Context, instructorID string, from, to time.Time) ([]models.Booking, error) {
	var matched []models.Booking
	for _, booking := range r.bookings {
		if booking.InstructorID != instructorID {
			continue
		}
		if booking.StartAt.Before(from) || !booking.StartAt.Before(to) {
			continue
		}
		matched = append(matched, *booking)
	}
	return matched, nil
}

func (r *fakeBookingRepository) UpdateStatusConditionally(_ context.Context, input *contracts.UpdateBookingStatusInput) (*contracts.UpdateBookingStatusOutput, error) {
	booking, ok := r.bookings[input.BookingID]
	if !ok {
		return nil, exceptions.ErrBookingNotFound(nil)
	}

	gateOpen := len(input.ExpectedPrior) == 0
	for _, status := range input.ExpectedPrior {
		if booking.Status == status {
			gateOpen = true
			break
		}
	}
	if !gateOpen {
		current := *booking
		return &contracts.UpdateBookingStatusOutput{Booking: &current, Applied: false}, nil
	}

	booking.Status = input.NewStatus
	booking.UpdatedAt = time.Now().UTC()
	if input.PaymentReference != "" {
		booking.PaymentReference = input.PaymentReference
	}
	if input.CheckoutSessionID != "" {
		booking.CheckoutSessionID = input.CheckoutSessionID
	}
	updated := *booking
	return &contracts.UpdateBookingStatusOutput{Booking: &updated, Applied: true}, nil
}

func TestLessonPriceCents(t *testing.T) {
	t.Run("Thirty Minutes", func(t *testing.T) {
		assert.Equal(t, 2500, LessonPriceCents(30))
	})

	t.Run("Sixty Minutes", func(t *testing.T) {
		assert.Equal(t, 4000, LessonPriceCents(60))
	})
}

func TestCreateBooking(t *testing.T) {
	t.Run("Creates Pending Booking With Derived Price", func(t *testing.T) {
		repo := newFakeBookingRepository()
		usecase := NewBookingUsecase(repo, zap.NewNop())

		created, err := usecase.CreateBooking(context.Background(), &requests.CreateBooking{
			InstructorID:  "instructor-1",
			StudentID:     "student-1",
			StartAt:       "2025-03-03T17:00:00-05:00",
			LengthMinutes: 60,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, created.BookingID)

		stored := repo.bookings[created.BookingID]
		assert.Equal(t, models.BookingStatusPendingPayment, stored.Status)
		assert.Equal(t, 4000, stored.PriceCents)
		assert.Equal(t, "usd", stored.Currency)
		assert.Equal(t, time.Hour, stored.EndAt.Sub(stored.StartAt))
	})

	t.Run("Rejects Non RFC3339 StartAt", func(t *testing.T) {
		repo := newFakeBookingRepository()
		usecase := NewBookingUsecase(repo, zap.NewNop())

		_, err := usecase.CreateBooking(context.Background(), &requests.CreateBooking{
			InstructorID:  "instructor-1",
			StudentID:     "student-1",
			StartAt:       "2025-03-03 17:00",
			LengthMinutes: 30,
		})

		assert.Error(t, err)
		assert.Empty(t, repo.bookings)
	})
}

func TestGetBookingByID(t *testing.T) {
	t.Run("Returns Stored Booking", func(t *testing.T) {
		repo := newFakeBookingRepository()
		usecase := NewBookingUsecase(repo, zap.NewNop())

		created, err := usecase.CreateBooking(context.Background(), &requests.CreateBooking{
			InstructorID:  "instructor-1",
			StudentID:     "student-1",
			StartAt:       "2025-03-03T17:00:00-05:00",
			LengthMinutes: 30,
		})
		assert.NoError(t, err)

		booking, err := usecase.GetBookingByID(context.Background(), created.BookingID)

		assert.NoError(t, err)
		assert.Equal(t, created.BookingID, booking.BookingID)
		assert.Equal(t, string(models.BookingStatusPendingPayment), booking.Status)
		assert.Equal(t, 2500, booking.PriceCents)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		usecase := NewBookingUsecase(newFakeBookingRepository(), zap.NewNop())

		_, err := usecase.GetBookingByID(context.Background(), "missing")

		assert.True(t, errors.Is(err, exceptions.ErrBookingNotFound(nil)), "expected a booking-not-found error, got %v", err)
	})
}

func TestConfirmPayment(t *testing.T) {
	createPending := func(t *testing.T, repo *fakeBookingRepository) string {
		t.Helper()
		usecase := NewBookingUsecase(repo, zap.NewNop())
		created, err := usecase.CreateBooking(context.Background(), &requests.CreateBooking{
			InstructorID:  "instructor-1",
			StudentID:     "student-1",
			StartAt:       "2025-03-03T17:00:00-05:00",
			LengthMinutes: 30,
		})
		assert.NoError(t, err)
		return created.BookingID
	}

	t.Run("Marks Pending Booking Paid", func(t *testing.T) {
		repo := newFakeBookingRepository()
		bookingID := createPending(t, repo)
		usecase := NewBookingUsecase(repo, zap.NewNop())

		err := usecase.ConfirmPayment(context.Background(), bookingID, "pi_123")

		assert.NoError(t, err)
		assert.Equal(t, models.BookingStatusPaid, repo.bookings[bookingID].Status)
		assert.Equal(t, "pi_123", repo.bookings[bookingID].PaymentReference)
	})

	t.Run("Duplicate Confirmation Is Idempotent", func(t *testing.T) {
		repo := newFakeBookingRepository()
		bookingID := createPending(t, repo)
		usecase := NewBookingUsecase(repo, zap.NewNop())

		assert.NoError(t, usecase.ConfirmPayment(context.Background(), bookingID, "pi_123"))
		assert.NoError(t, usecase.ConfirmPayment(context.Background(), bookingID, "pi_456"))

		// The second delivery succeeds without replacing the reference.
		assert.Equal(t, "pi_123", repo.bookings[bookingID].PaymentReference)
	})

	t.Run("Cancelled Booking Rejects Confirmation", func(t *testing.T) {
		repo := newFakeBookingRepository()
		bookingID := createPending(t, repo)
		repo.bookings[bookingID].Status = models.BookingStatusCancelled
		usecase := NewBookingUsecase(repo, zap.NewNop())

		err := usecase.ConfirmPayment(context.Background(), bookingID, "pi_123")

		assert.Error(t, err)
		assert.Equal(t, models.BookingStatusCancelled, repo.bookings[bookingID].Status)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		usecase := NewBookingUsecase(newFakeBookingRepository(), zap.NewNop())

		err := usecase.ConfirmPayment(context.Background(), "missing", "pi_123")

		assert.True(t, errors.Is(err, exceptions.ErrBookingNotFound(nil)), "expected a booking-not-found error, got %v", err)
	})
}

