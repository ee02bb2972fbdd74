package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/notification"
	notificationMock "go-leave/internal/notification/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
	drained   chan struct{}
	once      sync.Once
}

func newFakeReader(msgs ...kafkago.Message) *fakeReader {
	return &fakeReader{queue: msgs, drained: make(chan struct{})}
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		msg := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return msg, nil
	}
	f.mu.Unlock()

	f.once.Do(func() { close(f.drained) })
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

func encode(t *testing.T, event events.LeaveNotificationEvent) []byte {
	t.Helper()
	b, err := json.Marshal(event)
	assert.NoError(t, err)
	return b
}

func run(t *testing.T, reader *fakeReader, mailer notification.Mailer) {
	t.Helper()
	runUntil(t, reader, mailer, reader.drained)
}

// runUntil consumes until ready is closed and then stops the consumer.
func runUntil(t *testing.T, reader *fakeReader, mailer notification.Mailer, ready <-chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.ConsumeLeaveNotifications(ctx, reader, mailer, zap.NewNop())
		close(done)
	}()

	select {
	case <-ready:
	case <-time.After(time.Second):
		t.Fatal("consumer did not reach the expected point")
	}
	cancel()
	<-done
}

func TestConsumeLeaveNotifications(t *testing.T) {
	defer consumer.SetRetryBackoff(time.Millisecond, 4*time.Millisecond)()
	msg := notification.Message{To: "asha.rao@example.com", Subject: "Leave request APPROVED", Body: "ok"}

	t.Run("success commits after send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := notificationMock.NewMockMailer(ctrl)
		mailer.EXPECT().Send(gomock.Any(), msg).Return(nil)

		reader := newFakeReader(kafkago.Message{Offset: 1, Value: encode(t, events.LeaveNotificationEvent{
			EventType: events.EventLeaveApproved,
			LeaveID:   "leave-1",
			Message:   msg,
		})})

		run(t, reader, mailer)

		assert.Len(t, reader.committed, 1)
	})

	t.Run("negative send failure is retried and never committed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := notificationMock.NewMockMailer(ctrl)
		retried := make(chan struct{})
		var (
			mu    sync.Mutex
			calls int
		)
		mailer.EXPECT().Send(gomock.Any(), msg).DoAndReturn(func(ctx context.Context, m notification.Message) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if calls == 3 {
				close(retried)
			}
			return errors.New("smtp down")
		}).MinTimes(3)

		reader := newFakeReader(kafkago.Message{Offset: 1, Value: encode(t, events.LeaveNotificationEvent{LeaveID: "leave-1", Message: msg})})

		runUntil(t, reader, mailer, retried)

		assert.Empty(t, reader.committed)
	})

	t.Run("failed message is delivered before the next one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := notificationMock.NewMockMailer(ctrl)
		next := notification.Message{To: "vikram@example.com", Subject: "Leave Approval Request from Rao Asha", Body: "review"}
		gomock.InOrder(
			mailer.EXPECT().Send(gomock.Any(), msg).Return(errors.New("smtp down")).Times(2),
			mailer.EXPECT().Send(gomock.Any(), msg).Return(nil),
			mailer.EXPECT().Send(gomock.Any(), next).Return(nil),
		)

		reader := newFakeReader(
			kafkago.Message{Offset: 1, Value: encode(t, events.LeaveNotificationEvent{EventType: events.EventLeaveApproved, LeaveID: "leave-1", Message: msg})},
			kafkago.Message{Offset: 2, Value: encode(t, events.LeaveNotificationEvent{EventType: events.EventLeaveSubmitted, LeaveID: "leave-2", Message: next})},
		)

		run(t, reader, mailer)

		if assert.Len(t, reader.committed, 2) {
			assert.Equal(t, int64(1), reader.committed[0].Offset)
			assert.Equal(t, int64(2), reader.committed[1].Offset)
		}
	})

	t.Run("negative undecodable message is skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := notificationMock.NewMockMailer(ctrl)

		reader := newFakeReader(kafkago.Message{Offset: 7, Value: []byte("{not json")})

		run(t, reader, mailer)

		assert.Len(t, reader.committed, 1)
		assert.Equal(t, int64(7), reader.committed[0].Offset)
	})
}
