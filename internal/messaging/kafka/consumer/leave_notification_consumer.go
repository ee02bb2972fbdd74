package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-leave/internal/events"
	"go-leave/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	retryBackoff    = time.Second
	maxRetryBackoff = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveNotifications delivers leave e-mails published through the
// outbox. A message is committed only after the mailer accepted it, or when
// it can never be decoded. A failed send is retried with backoff and holds
// back later messages until it goes through.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader MessageReader,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notification")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		var event events.LeaveNotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave notification event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sendWithRetry(ctx, mailer, event, log); err != nil {
			log.Info("leave notification consumer stopped",
				zap.String("pending_leave_id", event.LeaveID),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification delivered",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
		)
	}
}

// sendWithRetry keeps sending until the mailer accepts the message or ctx is
// done. The delay doubles after every failure up to maxRetryBackoff.
func sendWithRetry(ctx context.Context, mailer notification.Mailer, event events.LeaveNotificationEvent, log *zap.Logger) error {
	delay := retryBackoff
	for attempt := 1; ; attempt++ {
		err := mailer.Send(ctx, event.Message)
		if err == nil {
			return nil
		}
		log.Error("send leave notification failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
			zap.String("to", event.Message.To),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > maxRetryBackoff {
			delay = maxRetryBackoff
		}
	}
}
