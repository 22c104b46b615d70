package contracts

import (
	"context"

	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
)

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, request *requests.GetAvailableSlots) (*responses.AvailableSlots, error)
}
