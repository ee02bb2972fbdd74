package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/config"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/notification"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

const notificationGroupID = "go-leave-notification-mailer"

// RunConsumer sends the leave e-mails published by the worker until SIGINT
// or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := connection.NewKafkaReader(cfg.KafkaBroker, events.LeaveNotificationTopic, notificationGroupID)
	defer reader.Close()

	mailer := notification.NewMailer(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeLeaveNotifications(ctx, reader, mailer, logger)

	logger.Info("consumer shutting down")
	return nil
}
