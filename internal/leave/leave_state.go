package leave

import (
	"strings"

	leaveerrors "go-leave/internal/leave/errors"
)

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "PENDING"
	StatusApproved LeaveStatus = "APPROVED"
	StatusRejected LeaveStatus = "REJECTED"
)

// transitions lists every allowed status change. APPROVED and REJECTED are
// terminal.
var transitions = map[LeaveStatus][]LeaveStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

func ParseStatus(v string) (LeaveStatus, error) {
	switch s := LeaveStatus(strings.ToUpper(strings.TrimSpace(v))); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", leaveerrors.ErrInvalidLeaveStatus
	}
}

func (s LeaveStatus) CanTransitionTo(target LeaveStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s LeaveStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// transition moves l to target or fails with ErrInvalidStatusTransition.
func (l *LeaveRequest) transition(target LeaveStatus) error {
	if l.LeaveStatus.IsTerminal() || !l.LeaveStatus.CanTransitionTo(target) {
		return leaveerrors.ErrInvalidStatusTransition
	}
	l.LeaveStatus = target
	return nil
}
