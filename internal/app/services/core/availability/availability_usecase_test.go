package availability

import (
	"context"
	"testing"
	"time"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRuleRepository struct {
	rule  *models.WeeklyRule
	loads int
}

func (r *fakeRuleRepository) Load(_ context.Context, _ string) (*models.WeeklyRule, error) {
	r.loads++
	return r.rule, nil
}

func (r *fakeRuleRepository) Save(_ context.Context, rule *models.WeeklyRule) error {
	r.rule = rule
	return nil
}

type fakeBookingRepository struct {
	bookings []models.Booking
}

func (r *fakeBookingRepository) CreateIfAbsent(_ context.Context, booking *models.Booking) error {
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *fakeBookingRepository) FindByID(_ context.Context, _ string) (*models.Booking, error) {
	return nil, nil
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
		matched = append(matched, booking)
	}
	return matched, nil
}

func (r *fakeBookingRepository) UpdateStatusConditionally(_ context.Context, _ *contracts.UpdateBookingStatusInput) (*contracts.UpdateBookingStatusOutput, error) {
	return nil, exceptions.ErrBookingNotFound(nil)
}

type fakeCalendarService struct {
	intervals []models.BusyInterval
	err       error
}

func (s *fakeCalendarService) GetBusyIntervals(_ context.Context, _ string, _, _ time.Time) ([]models.BusyInterval, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.intervals, nil
}

type fakeRedisRepository struct {
	values map[string]string
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{values: make(map[string]string)}
}

func (r *fakeRedisRepository) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(encoded)
	return nil
}

func (r *fakeRedisRepository) Get(_ context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *fakeRedisRepository) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func (r *fakeRedisRepository) TrySetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if _, ok := r.values[key]; ok {
		return false, nil
	}
	return true, r.Set(context.Background(), key, value, 0)
}

func (r *fakeRedisRepository) IncrementWithTTL(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 1, nil
}

func mondayRule() *models.WeeklyRule {
	return &models.WeeklyRule{
		InstructorID: "instructor-1",
		Timezone:     "America/New_York",
		Weekly:       []models.WeeklyRuleBlock{{Day: 1, Start: "17:00", End: "20:00"}},
	}
}

func availabilityRequest() *requests.GetAvailableSlots {
	return &requests.GetAvailableSlots{
		InstructorID:  "instructor-1",
		Date:          "2025-03-03",
		LengthMinutes: 30,
	}
}

func TestGetAvailableSlots(t *testing.T) {
	t.Run("Full Block Without Conflicts", func(t *testing.T) {
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{rule: mondayRule()},
			&fakeBookingRepository{},
			&fakeCalendarService{},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		response, err := usecase.GetAvailableSlots(context.Background(), availabilityRequest())

		assert.NoError(t, err)
		assert.Len(t, response.Slots, 6)
		assert.Equal(t, "America/New_York", response.Timezone)
		assert.True(t, response.Connected)
		assert.Equal(t, "2025-03-03T17:00:00-05:00", response.Slots[0])
		assert.Equal(t, "2025-03-03T19:30:00-05:00", response.Slots[5])
		assert.Equal(t, response.Slots[0], response.Window.Start)
		assert.Equal(t, response.Slots[5], response.Window.End)
	})

	t.Run("Pending And Paid Bookings Block Slots", func(t *testing.T) {
		bookingRepo := &fakeBookingRepository{}
		base := time.Date(2025, 3, 3, 17, 0, 0, 0, time.FixedZone("America/New_York", -5*3600))
		bookingRepo.bookings = []models.Booking{
			{
				InstructorID: "instructor-1",
				StartAt:      base,
				EndAt:        base.Add(30 * time.Minute),
				Status:       models.BookingStatusPaid,
			},
			{
				InstructorID: "instructor-1",
				StartAt:      base.Add(30 * time.Minute),
				EndAt:        base.Add(time.Hour),
				Status:       models.BookingStatusPendingPayment,
			},
			{
				InstructorID: "instructor-1",
				StartAt:      base.Add(time.Hour),
				EndAt:        base.Add(90 * time.Minute),
				Status:       models.BookingStatusCancelled,
			},
		}
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{rule: mondayRule()},
			bookingRepo,
			&fakeCalendarService{},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		response, err := usecase.GetAvailableSlots(context.Background(), availabilityRequest())

		assert.NoError(t, err)
		// Cancelled bookings release their slot, so 18:00 stays free.
		assert.Len(t, response.Slots, 4)
		assert.Equal(t, "2025-03-03T18:00:00-05:00", response.Slots[0])
	})

	t.Run("Calendar Busy Intervals Block Slots", func(t *testing.T) {
		base := time.Date(2025, 3, 3, 17, 45, 0, 0, time.FixedZone("America/New_York", -5*3600))
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{rule: mondayRule()},
			&fakeBookingRepository{},
			&fakeCalendarService{intervals: []models.BusyInterval{{Start: base, End: base.Add(30 * time.Minute)}}},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		response, err := usecase.GetAvailableSlots(context.Background(), availabilityRequest())

		assert.NoError(t, err)
		assert.Len(t, response.Slots, 4)
		assert.NotContains(t, response.Slots, "2025-03-03T17:30:00-05:00")
		assert.NotContains(t, response.Slots, "2025-03-03T18:00:00-05:00")
	})

	t.Run("Disconnected Calendar Degrades Gracefully", func(t *testing.T) {
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{rule: mondayRule()},
			&fakeBookingRepository{},
			&fakeCalendarService{err: exceptions.ErrCalendarNotConnected(nil)},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		response, err := usecase.GetAvailableSlots(context.Background(), availabilityRequest())

		assert.NoError(t, err)
		assert.False(t, response.Connected)
		assert.Len(t, response.Slots, 6)
	})

	t.Run("Calendar Outage Falls Back To Bookings", func(t *testing.T) {
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{rule: mondayRule()},
			&fakeBookingRepository{},
			&fakeCalendarService{err: exceptions.ErrCalendarUpstreamUnavailable(nil)},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		response, err := usecase.GetAvailableSlots(context.Background(), availabilityRequest())

		assert.NoError(t, err)
		assert.False(t, response.Connected)
		assert.Len(t, response.Slots, 6)
	})

	t.Run("No Rules Yields Empty Slots", func(t *testing.T) {
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{},
			&fakeBookingRepository{},
			&fakeCalendarService{},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		response, err := usecase.GetAvailableSlots(context.Background(), availabilityRequest())

		assert.NoError(t, err)
		assert.Empty(t, response.Slots)
	})

	t.Run("Requested Timezone Overrides Rule Timezone", func(t *testing.T) {
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{rule: mondayRule()},
			&fakeBookingRepository{},
			&fakeCalendarService{},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		request := availabilityRequest()
		request.Timezone = "UTC"
		response, err := usecase.GetAvailableSlots(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, "UTC", response.Timezone)
		assert.Equal(t, "2025-03-03T17:00:00Z", response.Slots[0])
	})

	t.Run("Invalid Timezone", func(t *testing.T) {
		usecase := NewAvailabilityUsecase(
			&fakeRuleRepository{rule: mondayRule()},
			&fakeBookingRepository{},
			&fakeCalendarService{},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		request := availabilityRequest()
		request.Timezone = "Not/AZone"
		_, err := usecase.GetAvailableSlots(context.Background(), request)

		assert.Error(t, err)
	})

	t.Run("Second Read Hits The Rule Cache", func(t *testing.T) {
		ruleRepo := &fakeRuleRepository{rule: mondayRule()}
		usecase := NewAvailabilityUsecase(
			ruleRepo,
			&fakeBookingRepository{},
			&fakeCalendarService{},
			newFakeRedisRepository(),
			zap.NewNop(),
		)

		_, err := usecase.GetAvailableSlots(context.Background(), availabilityRequest())
		assert.NoError(t, err)
		_, err = usecase.GetAvailableSlots(context.Background(), availabilityRequest())
		assert.NoError(t, err)

		assert.Equal(t, 1, ruleRepo.loads)
	})
}
