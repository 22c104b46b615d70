package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCounterRepository struct {
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newFakeCounterRepository() *fakeCounterRepository {
	return &fakeCounterRepository{
		counts: make(map[string]int64),
		ttls:   make(map[string]time.Duration),
	}
}

func (r *fakeCounterRepository) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (r *fakeCounterRepository) Get(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (r *fakeCounterRepository) Delete(_ context.Context, _ string) error {
	return nil
}

func (r *fakeCounterRepository) TrySetNX(_ context.Context, _ string, _ interface{}, _ time.Duration) (bool, error) {
	return true, nil
}

func (r *fakeCounterRepository) IncrementWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	r.counts[key]++
	if r.counts[key] == 1 {
		r.ttls[key] = ttl
	}
	return r.counts[key], nil
}

func TestApplyResourceLimiter(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 30, 0, time.UTC)

	newInput := func() *ApplyResourceLimiterInput {
		return &ApplyResourceLimiterInput{
			ResourceName:      "instructor-1",
			LimiterGroupName:  "payment-drain",
			WindowDurationSec: 60,
			MaxQuota:          3,
			NowUTC:            now,
		}
	}

	t.Run("Allows Up To Quota Then Blocks", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeCounterRepository(), zap.NewNop())

		for i := 0; i < 3; i++ {
			output, err := limiter.ApplyResourceLimiter(context.Background(), newInput())
			assert.NoError(t, err)
			assert.True(t, output.Allowed, "request %d should be within quota", i+1)
		}

		output, err := limiter.ApplyResourceLimiter(context.Background(), newInput())
		assert.NoError(t, err)
		assert.False(t, output.Allowed)
		assert.Greater(t, output.RetryAfterSecs, 0)
	})

	t.Run("Quota Resets In The Next Window", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeCounterRepository(), zap.NewNop())

		for i := 0; i < 4; i++ {
			_, err := limiter.ApplyResourceLimiter(context.Background(), newInput())
			assert.NoError(t, err)
		}

		input := newInput()
		input.NowUTC = now.Add(time.Minute)
		output, err := limiter.ApplyResourceLimiter(context.Background(), input)

		assert.NoError(t, err)
		assert.True(t, output.Allowed)
	})

	t.Run("Resources Count Independently", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeCounterRepository(), zap.NewNop())

		for i := 0; i < 3; i++ {
			_, err := limiter.ApplyResourceLimiter(context.Background(), newInput())
			assert.NoError(t, err)
		}

		input := newInput()
		input.ResourceName = "instructor-2"
		output, err := limiter.ApplyResourceLimiter(context.Background(), input)

		assert.NoError(t, err)
		assert.True(t, output.Allowed)
	})

	t.Run("Zero Quota Disables The Limiter", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeCounterRepository(), zap.NewNop())

		input := newInput()
		input.MaxQuota = 0
		output, err := limiter.ApplyResourceLimiter(context.Background(), input)

		assert.NoError(t, err)
		assert.True(t, output.Allowed)
	})

	t.Run("Blank Resource Is Rejected", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeCounterRepository(), zap.NewNop())

		input := newInput()
		input.ResourceName = "  "
		output, err := limiter.ApplyResourceLimiter(context.Background(), input)

		assert.NoError(t, err)
		assert.False(t, output.Allowed)
	})

	t.Run("Counter TTL Outlives The Window", func(t *testing.T) {
		repo := newFakeCounterRepository()
		limiter := NewResourceLimiter(repo, zap.NewNop())

		_, err := limiter.ApplyResourceLimiter(context.Background(), newInput())
		assert.NoError(t, err)

		for _, ttl := range repo.ttls {
			assert.Equal(t, 61*time.Second, ttl)
		}
	})
}
