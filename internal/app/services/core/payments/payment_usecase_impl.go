package payments

import (
	"context"
	"fmt"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/app/services/shared/paymentqueue"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
	"lessonbook-service/internal/pkg/exceptions"
	"lessonbook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type PaymentUsecase struct {
	bookingRepo contracts.BookingRepository
	gateway     contracts.PaymentGatewayService
	queue       *paymentqueue.Service
	logger      *zap.Logger
}

func NewPaymentUsecase(
	bookingRepo contracts.BookingRepository,
	gateway contracts.PaymentGatewayService,
	queue *paymentqueue.Service,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &PaymentUsecase{
		bookingRepo: bookingRepo,
		gateway:     gateway,
		queue:       queue,
		logger:      logger,
	}
}

func (uc *PaymentUsecase) CreateCheckout(ctx context.Context, request *requests.CreateCheckout) (*responses.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("PaymentUsecase.CreateCheckout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, request.BookingID),
	)

	booking, err := uc.bookingRepo.FindByID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil)
	}
	if booking.Status != models.BookingStatusPendingPayment {
		return nil, exceptions.ErrBookingStatusConflict(fmt.Errorf(
			"booking %s is %s and cannot be checked out", booking.BookingID, booking.Status,
		))
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, &contracts.CreateCheckoutSessionInput{
		BookingID:     booking.BookingID,
		LengthMinutes: booking.LengthMinutes,
		AmountCents:   booking.PriceCents,
		Currency:      booking.Currency,
		Description:   fmt.Sprintf("%d-minute lesson", booking.LengthMinutes),
	})
	if err != nil {
		uc.logger.Error("PaymentUsecase.CreateCheckout gateway call failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, booking.BookingID),
			zap.Error(err),
		)
		return nil, err
	}

	// Remember the session on the booking for later reconciliation. The
	// transition keeps the status as-is; a lost update here is harmless since
	// the confirmation is keyed by booking ID, not session ID.
	if _, err := uc.bookingRepo.UpdateStatusConditionally(ctx, &contracts.UpdateBookingStatusInput{
		BookingID:         booking.BookingID,
		ExpectedPrior:     []models.BookingStatus{models.BookingStatusPendingPayment},
		NewStatus:         models.BookingStatusPendingPayment,
		CheckoutSessionID: session.SessionID,
	}); err != nil {
		uc.logger.Warn("PaymentUsecase.CreateCheckout failed to persist session id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, booking.BookingID),
			zap.Error(err),
		)
	}

	return &responses.CheckoutSession{URL: session.URL}, nil
}

// EnqueueConfirmation persists the gateway event to the durable queue and
// returns once the broker confirms it. Applying the confirmation to the
// booking happens asynchronously in the drain worker.
func (uc *PaymentUsecase) EnqueueConfirmation(ctx context.Context, event *requests.PaymentConfirmationEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("PaymentUsecase.EnqueueConfirmation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, event.BookingID),
		zap.String(constvars.LoggingEventIDKey, event.EventID),
	)

	eventID := event.EventID
	if eventID == "" {
		eventID = utils.GenerateRequestID()
	}

	_, err := uc.queue.Enqueue(ctx, &paymentqueue.EnqueueInput{
		Message: paymentqueue.PaymentQueueMessage{
			ID:               eventID,
			BookingID:        event.BookingID,
			PaymentReference: event.PaymentReference,
		},
	})
	if err != nil {
		uc.logger.Error("PaymentUsecase.EnqueueConfirmation enqueue failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, event.BookingID),
			zap.Error(err),
		)
	}
	return err
}
