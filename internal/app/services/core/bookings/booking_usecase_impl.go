package bookings

import (
	"context"
	"fmt"
	"time"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
	"lessonbook-service/internal/pkg/exceptions"
	"lessonbook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type BookingUsecase struct {
	bookingRepo contracts.BookingRepository
	logger      *zap.Logger
}

func NewBookingUsecase(bookingRepo contracts.BookingRepository, logger *zap.Logger) contracts.BookingUsecase {
	return &BookingUsecase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// LessonPriceCents maps a lesson length to its price. Pricing is fixed by
// length; the client never supplies an amount.
func LessonPriceCents(lengthMinutes int) int {
	if lengthMinutes == constvars.LessonLengthLong {
		return constvars.LessonPriceLongCents
	}
	return constvars.LessonPriceShortCents
}

func (uc *BookingUsecase) CreateBooking(ctx context.Context, request *requests.CreateBooking) (*responses.CreatedBooking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("BookingUsecase.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInstructorIDKey, request.InstructorID),
		zap.String(constvars.LoggingStudentIDKey, request.StudentID),
	)

	startAt, err := time.Parse(time.RFC3339, request.StartAt)
	if err != nil {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("startAt must be an RFC 3339 timestamp"))
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		BookingID:     utils.GenerateBookingID(),
		InstructorID:  request.InstructorID,
		StudentID:     request.StudentID,
		StartAt:       startAt,
		EndAt:         startAt.Add(time.Duration(request.LengthMinutes) * time.Minute),
		LengthMinutes: request.LengthMinutes,
		Status:        models.BookingStatusPendingPayment,
		PriceCents:    LessonPriceCents(request.LengthMinutes),
		Currency:      constvars.LessonCurrency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.bookingRepo.CreateIfAbsent(ctx, booking); err != nil {
		uc.logger.Error("BookingUsecase.CreateBooking error inserting booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, booking.BookingID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("BookingUsecase.CreateBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, booking.BookingID),
	)
	return &responses.CreatedBooking{BookingID: booking.BookingID}, nil
}

func (uc *BookingUsecase) GetBookingByID(ctx context.Context, bookingID string) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("BookingUsecase.GetBookingByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	booking, err := uc.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil)
	}
	return buildBookingResponse(booking), nil
}

// ConfirmPayment moves a booking to PAID. Confirmations arrive at least once,
// so a booking that is already PAID is reported as success without touching
// the stored payment reference. Only a cancelled booking rejects the event.
func (uc *BookingUsecase) ConfirmPayment(ctx context.Context, bookingID, paymentReference string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("BookingUsecase.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	output, err := uc.bookingRepo.UpdateStatusConditionally(ctx, &contracts.UpdateBookingStatusInput{
		BookingID:        bookingID,
		ExpectedPrior:    []models.BookingStatus{models.BookingStatusPendingPayment},
		NewStatus:        models.BookingStatusPaid,
		PaymentReference: paymentReference,
	})
	if err != nil {
		uc.logger.Error("BookingUsecase.ConfirmPayment error updating booking status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
		return err
	}

	if output.Applied {
		uc.logger.Info("BookingUsecase.ConfirmPayment booking marked paid",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
		)
		return nil
	}

	switch output.Booking.Status {
	case models.BookingStatusPaid:
		// Duplicate delivery of an already applied confirmation.
		uc.logger.Info("BookingUsecase.ConfirmPayment booking already paid",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
		)
		return nil
	default:
		return exceptions.ErrBookingStatusConflict(fmt.Errorf(
			"booking %s is %s and cannot accept a payment confirmation", bookingID, output.Booking.Status,
		))
	}
}

func buildBookingResponse(booking *models.Booking) *responses.Booking {
	return &responses.Booking{
		BookingID:        booking.BookingID,
		InstructorID:     booking.InstructorID,
		StudentID:        booking.StudentID,
		StartAt:          booking.StartAt,
		EndAt:            booking.EndAt,
		LengthMinutes:    booking.LengthMinutes,
		Status:           string(booking.Status),
		PriceCents:       booking.PriceCents,
		Currency:         booking.Currency,
		PaymentReference: booking.PaymentReference,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}
}
