package availability

import (
	"context"
	"errors"
	"time"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
	"lessonbook-service/internal/pkg/exceptions"
	"lessonbook-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ruleCacheTTL bounds how stale a cached rule document may get; saves also
// invalidate the key eagerly.
const ruleCacheTTL = 5 * time.Minute

type AvailabilityUsecase struct {
	ruleRepo    contracts.RuleRepository
	bookingRepo contracts.BookingRepository
	calendar    contracts.BusyCalendarService
	redisRepo   contracts.RedisRepository
	logger      *zap.Logger
}

func NewAvailabilityUsecase(
	ruleRepo contracts.RuleRepository,
	bookingRepo contracts.BookingRepository,
	calendar contracts.BusyCalendarService,
	redisRepo contracts.RedisRepository,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	return &AvailabilityUsecase{
		ruleRepo:    ruleRepo,
		bookingRepo: bookingRepo,
		calendar:    calendar,
		redisRepo:   redisRepo,
		logger:      logger,
	}
}

func (uc *AvailabilityUsecase) GetAvailableSlots(ctx context.Context, request *requests.GetAvailableSlots) (*responses.AvailableSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("AvailabilityUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInstructorIDKey, request.InstructorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.Int("length_minutes", request.LengthMinutes),
	)

	rule, err := uc.loadRule(ctx, request.InstructorID)
	if err != nil {
		return nil, err
	}

	timezone := request.Timezone
	if timezone == "" && rule != nil {
		timezone = rule.Timezone
	}
	if timezone == "" {
		timezone = constvars.DefaultTimezone
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, exceptions.ErrInvalidTimezone(err)
	}

	window, err := utils.ResolveDayWindow(request.Date, location)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	response := &responses.AvailableSlots{
		InstructorID:  request.InstructorID,
		Date:          request.Date,
		Timezone:      timezone,
		LengthMinutes: request.LengthMinutes,
		Slots:         []string{},
	}

	if rule == nil {
		return response, nil
	}

	starts := GenerateSlotStarts(utils.NormalizeWeeklyBlocks(rule.Weekly), window, request.LengthMinutes)

	calendarBusy, connected := uc.collectCalendarIntervals(ctx, request.InstructorID, window)
	response.Connected = connected
	if len(starts) == 0 {
		return response, nil
	}

	busy, err := uc.collectBookedIntervals(ctx, request.InstructorID, window)
	if err != nil {
		return nil, err
	}
	busy = append(busy, calendarBusy...)

	lessonLength := time.Duration(request.LengthMinutes) * time.Minute
	free := FilterConflicts(starts, lessonLength, busy)

	slots := make([]string, 0, len(free))
	for _, start := range free {
		slots = append(slots, start.Format(time.RFC3339))
	}
	response.Slots = slots
	if len(free) > 0 {
		response.Window = &responses.SlotWindow{
			Start: free[0].Format(time.RFC3339),
			End:   free[len(free)-1].Format(time.RFC3339),
		}
	}

	uc.logger.Info("AvailabilityUsecase.GetAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInstructorIDKey, request.InstructorID),
		zap.Int(constvars.LoggingSlotCountKey, len(slots)),
	)
	return response, nil
}

// loadRule reads through the Redis cache. Cache failures fall back to Mongo
// so a degraded Redis never takes availability down.
func (uc *AvailabilityUsecase) loadRule(ctx context.Context, instructorID string) (*models.WeeklyRule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := constvars.RedisKeyWeeklyRulesPrefix + instructorID

	cached, err := uc.redisRepo.Get(ctx, cacheKey)
	if err != nil {
		uc.logger.Warn("AvailabilityUsecase.loadRule cache read failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	} else if cached != "" {
		rule := new(models.WeeklyRule)
		if err := json.Unmarshal([]byte(cached), rule); err == nil {
			return rule, nil
		}
	}

	rule, err := uc.ruleRepo.Load(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if rule != nil {
		if err := uc.redisRepo.Set(ctx, cacheKey, rule, ruleCacheTTL); err != nil {
			uc.logger.Warn("AvailabilityUsecase.loadRule cache write failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, cacheKey),
				zap.Error(err),
			)
		}
	}
	return rule, nil
}

func (uc *AvailabilityUsecase) collectBookedIntervals(ctx context.Context, instructorID string, window utils.DayWindow) ([]models.BusyInterval, error) {
	bookings, err := uc.bookingRepo.FindByInstructorAndWindow(ctx, instructorID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	intervals := make([]models.BusyInterval, 0, len(bookings))
	for i := range bookings {
		if !bookings[i].Blocks() {
			continue
		}
		intervals = append(intervals, models.BusyInterval{Start: bookings[i].StartAt, End: bookings[i].EndAt})
	}
	return intervals, nil
}

// collectCalendarIntervals queries the external calendar and degrades to an
// empty set when the instructor never connected one or the upstream is down.
// Availability must keep working on bookings alone in both cases.
func (uc *AvailabilityUsecase) collectCalendarIntervals(ctx context.Context, instructorID string, window utils.DayWindow) ([]models.BusyInterval, bool) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	intervals, err := uc.calendar.GetBusyIntervals(ctx, instructorID, window.Start, window.End)
	if err != nil {
		if errors.Is(err, exceptions.ErrCalendarNotConnected(nil)) {
			return nil, false
		}
		uc.logger.Warn("AvailabilityUsecase.collectCalendarIntervals calendar lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInstructorIDKey, instructorID),
			zap.Error(err),
		)
		return nil, false
	}
	return intervals, true
}
