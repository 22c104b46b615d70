package paymentevents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lessonbook-service/internal/app/config"
	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/services/shared/paymentqueue"
	"lessonbook-service/internal/app/services/shared/ratelimiter"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const drainLimiterGroup = "payment-drain"

// Worker periodically drains queued payment confirmations and applies them to
// bookings with at-least-once semantics. The redis lock keeps one replica
// draining at a time; ConfirmPayment itself is idempotent, so a lock handover
// mid-batch cannot double-apply a confirmation.
type Worker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	queue    *paymentqueue.Service
	bookings contracts.BookingUsecase
	limiter  *ratelimiter.ResourceLimiter
	stop     chan struct{}
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue *paymentqueue.Service,
	bookings contracts.BookingUsecase,
	limiter *ratelimiter.ResourceLimiter,
) *Worker {
	return &Worker{
		log:      log,
		cfg:      cfg,
		locker:   lockerSvc,
		queue:    queue,
		bookings: bookings,
		limiter:  limiter,
		stop:     make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	interval := time.Duration(w.cfg.PaymentWorker.IntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	stopped := make(chan struct{})

	fmt.Println("Payment confirmation worker started")

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time) {
	interval := time.Duration(w.cfg.PaymentWorker.IntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ttl := interval - time.Second
	if ttl < time.Second {
		ttl = time.Second
	}

	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.RedisKeyPaymentWorkerLock, ttl)
	if err != nil {
		w.log.Info("payment worker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisKeyPaymentWorkerLock, lockVal); err != nil {
			w.log.Error("payment worker unlock failed", zap.Error(err))
		}
	}()

	max := w.cfg.PaymentWorker.BatchSize
	if max <= 0 {
		max = 1
	}
	out, err := w.queue.FetchN(ctx, &paymentqueue.FetchNInput{Max: max})
	if err != nil {
		w.log.Info("payment queue FetchN error", zap.Error(err))
		return
	}
	if len(out.Items) == 0 {
		return
	}

	w.log.Info("payment worker draining batch",
		zap.Time("tick", now),
		zap.Int("fetched_count", len(out.Items)))

	for _, item := range out.Items {
		allowed, err := w.limiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:      "confirmations",
			LimiterGroupName:  drainLimiterGroup,
			WindowDurationSec: 60,
			MaxQuota:          w.cfg.PaymentWorker.DrainQuotaPerMinute,
		})
		if err == nil && !allowed.Allowed {
			// Quota spent; push the message back untouched and stop the batch.
			w.requeue(ctx, item, item.Message, false)
			return
		}
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item paymentqueue.QueuedItem) {
	msg := item.Message
	w.log.Info("applying payment confirmation",
		zap.String("message_id", msg.ID),
		zap.String(constvars.LoggingBookingIDKey, msg.BookingID),
		zap.Int("failed_count", msg.FailedCount))

	err := w.bookings.ConfirmPayment(ctx, msg.BookingID, msg.PaymentReference)
	if err == nil {
		if _, ackErr := w.queue.AckMessage(ctx, &paymentqueue.AckMessageInput{DeliveryTag: item.DeliveryTag}); ackErr != nil {
			w.log.Info("ack failed after successful confirmation",
				zap.String("message_id", msg.ID),
				zap.Error(ackErr))
		}
		return
	}

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) &&
		customErr.StatusCode < constvars.StatusInternalServerError &&
		customErr.StatusCode != constvars.StatusNotFound {
		// Terminal status such as a cancelled booking. Retrying cannot change
		// the outcome, so the event is parked for inspection.
		w.log.Warn("unprocessable payment confirmation moved to DLQ",
			zap.String("message_id", msg.ID),
			zap.String(constvars.LoggingBookingIDKey, msg.BookingID),
			zap.Error(err))
		if _, dlqErr := w.queue.EnqueueToDeadQueue(ctx, &paymentqueue.EnqueueToDLQInput{Message: msg}); dlqErr != nil {
			w.log.Info("enqueue to DLQ failed", zap.String("message_id", msg.ID), zap.Error(dlqErr))
			return
		}
		_, _ = w.queue.AckMessage(ctx, &paymentqueue.AckMessageInput{DeliveryTag: item.DeliveryTag})
		return
	}

	// Transient failure (storage unavailable) or a confirmation that arrived
	// before its booking became visible: retry with a bounded attempt count.
	msg.FailedCount++
	w.log.Info("retryable confirmation failure",
		zap.String("message_id", msg.ID),
		zap.String(constvars.LoggingBookingIDKey, msg.BookingID),
		zap.Int("failed_count", msg.FailedCount),
		zap.Error(err))

	if msg.FailedCount >= w.cfg.PaymentWorker.MaxAttempts {
		if _, dlqErr := w.queue.EnqueueToDeadQueue(ctx, &paymentqueue.EnqueueToDLQInput{Message: msg}); dlqErr != nil {
			w.log.Info("enqueue to DLQ failed", zap.String("message_id", msg.ID), zap.Error(dlqErr))
			return
		}
		_, _ = w.queue.AckMessage(ctx, &paymentqueue.AckMessageInput{DeliveryTag: item.DeliveryTag})
		w.log.Info("confirmation exhausted retries; moved to DLQ",
			zap.String("message_id", msg.ID),
			zap.Int("failed_count", msg.FailedCount))
		return
	}

	w.requeue(ctx, item, msg, true)
}

func (w *Worker) requeue(ctx context.Context, item paymentqueue.QueuedItem, msg paymentqueue.PaymentQueueMessage, logIt bool) {
	if _, err := w.queue.Reenqueue(ctx, &paymentqueue.ReenqueueInput{Message: msg}); err != nil {
		w.log.Info("reenqueue failed; message stays unacked for redelivery",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return
	}
	_, _ = w.queue.AckMessage(ctx, &paymentqueue.AckMessageInput{DeliveryTag: item.DeliveryTag})
	if logIt {
		w.log.Info("confirmation requeued to tail",
			zap.String("message_id", msg.ID),
			zap.Int("failed_count", msg.FailedCount))
	}
}
