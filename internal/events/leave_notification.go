package events

import (
	"time"

	"go-leave/internal/notification"
)

const LeaveNotificationTopic = "leave.notification.requested.v1"

const (
	EventLeaveSubmitted = "leave_submitted"
	EventLeaveApproved  = "leave_approved"
	EventLeaveRejected  = "leave_rejected"
)

// LeaveNotificationEvent carries a rendered e-mail for a leave request so the
// consumer does not need to read the request back.
type LeaveNotificationEvent struct {
	EventType  string               `json:"event_type"`
	LeaveID    string               `json:"leave_id"`
	EmployeeID string               `json:"employee_id"`
	Message    notification.Message `json:"message"`
	OccurredAt time.Time            `json:"occurred_at"`
}
