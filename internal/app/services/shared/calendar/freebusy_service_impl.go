package calendar

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"lessonbook-service/internal/app/config"
	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// freeBusyService queries the instructor's linked Google Calendar through the
// freeBusy endpoint using the instructor's stored OAuth access token.
type freeBusyService struct {
	endpoint  string
	tokenRepo contracts.CalendarTokenRepository
	client    *http.Client
	log       *zap.Logger
}

func NewFreeBusyService(internalConfig *config.InternalConfig, tokenRepo contracts.CalendarTokenRepository, logger *zap.Logger) contracts.BusyCalendarService {
	timeout := time.Duration(internalConfig.Calendar.TimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &freeBusyService{
		endpoint:  internalConfig.Calendar.FreeBusyUrl,
		tokenRepo: tokenRepo,
		client:    &http.Client{Timeout: timeout},
		log:       logger,
	}
}

type freeBusyRequest struct {
	TimeMin string             `json:"timeMin"`
	TimeMax string             `json:"timeMax"`
	Items   []freeBusyCalendar `json:"items"`
}

type freeBusyCalendar struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"busy"`
	} `json:"calendars"`
}

func (s *freeBusyService) GetBusyIntervals(ctx context.Context, instructorID string, timeMin, timeMax time.Time) ([]models.BusyInterval, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("freeBusyService.GetBusyIntervals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInstructorIDKey, instructorID),
	)

	token, err := s.tokenRepo.Load(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if token == nil || token.AccessToken == "" {
		return nil, exceptions.ErrCalendarNotConnected(nil)
	}

	calendarID := token.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	payload := freeBusyRequest{
		TimeMin: timeMin.UTC().Format(time.RFC3339),
		TimeMax: timeMax.UTC().Format(time.RFC3339),
		Items:   []freeBusyCalendar{{ID: calendarID}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, exceptions.ErrCalendarUpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrCalendarUpstreamUnavailable(fmt.Errorf("calendar upstream returned status %d", resp.StatusCode))
	}

	var decoded freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, exceptions.ErrDecodeUpstreamResponse(err)
	}

	var intervals []models.BusyInterval
	for _, calendarBusy := range decoded.Calendars {
		for _, window := range calendarBusy.Busy {
			intervals = append(intervals, models.BusyInterval{Start: window.Start, End: window.End})
		}
	}
	return intervals, nil
}
