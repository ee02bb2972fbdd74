package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/notification"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
)

// Notice is an e-mail raised by a leave request state change.
type Notice struct {
	EventType  string
	LeaveID    string
	EmployeeID string
	Message    notification.Message
}

// Notifier delivers notices either inline after commit or through the
// outbox inside the same transaction as the state change.
//
//go:generate mockgen -source=leave_notifier.go -destination=mock/leave_notifier_mock.go -package=mock
type Notifier interface {
	// Stage runs inside the state change transaction.
	Stage(ctx context.Context, tx *sql.Tx, n Notice) error
	// Deliver runs after commit.
	Deliver(ctx context.Context, n Notice) error
}

type mailNotifier struct {
	mailer notification.Mailer
}

func NewMailNotifier(mailer notification.Mailer) Notifier {
	return &mailNotifier{mailer: mailer}
}

func (m *mailNotifier) Stage(ctx context.Context, tx *sql.Tx, n Notice) error {
	return nil
}

func (m *mailNotifier) Deliver(ctx context.Context, n Notice) error {
	return m.mailer.Send(ctx, n.Message)
}

type outboxNotifier struct {
	outbox kafka.OutboxRepository
	now    func() time.Time
}

func NewOutboxNotifier(outbox kafka.OutboxRepository) Notifier {
	return &outboxNotifier{outbox: outbox, now: time.Now}
}

func (o *outboxNotifier) Stage(ctx context.Context, tx *sql.Tx, n Notice) error {
	payload, err := json.Marshal(events.LeaveNotificationEvent{
		EventType:  n.EventType,
		LeaveID:    n.LeaveID,
		EmployeeID: n.EmployeeID,
		Message:    n.Message,
		OccurredAt: o.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal leave notification: %w", err)
	}

	repo := o.outbox
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	return repo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   n.LeaveID,
		EventType:     n.EventType,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
	})
}

func (o *outboxNotifier) Deliver(ctx context.Context, n Notice) error {
	return nil
}
