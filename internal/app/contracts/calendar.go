package contracts

import (
	"context"
	"time"

	"lessonbook-service/internal/app/models"
)

// CalendarTokenRepository stores per-instructor calendar credentials. Load
// returns (nil, nil) when the instructor never connected a calendar.
type CalendarTokenRepository interface {
	Load(ctx context.Context, instructorID string) (*models.CalendarToken, error)
}

// BusyCalendarService queries the instructor's external calendar for busy
// intervals inside [timeMin, timeMax). It returns ErrCalendarNotConnected
// when the instructor has no linked calendar.
type BusyCalendarService interface {
	GetBusyIntervals(ctx context.Context, instructorID string, timeMin, timeMax time.Time) ([]models.BusyInterval, error)
}
