package contracts

import (
	"context"

	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
)

type CreateCheckoutSessionInput struct {
	BookingID     string
	LengthMinutes int
	AmountCents   int
	Currency      string
	Description   string
}

type CreateCheckoutSessionOutput struct {
	SessionID string
	URL       string
}

// PaymentGatewayService fronts the hosted checkout provider. The booking ID is
// carried as the session's client reference so the confirmation webhook can be
// routed back to the booking.
type PaymentGatewayService interface {
	CreateCheckoutSession(ctx context.Context, input *CreateCheckoutSessionInput) (*CreateCheckoutSessionOutput, error)
}

type PaymentUsecase interface {
	CreateCheckout(ctx context.Context, request *requests.CreateCheckout) (*responses.CheckoutSession, error)
	EnqueueConfirmation(ctx context.Context, event *requests.PaymentConfirmationEvent) error
}
