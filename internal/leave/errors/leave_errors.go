package leaveerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-leave/internal/policy"
	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrDatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Leave start date and end date must be provided.",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"leave end date must be on or after leave start date",
		http.StatusBadRequest,
	)
	ErrInvalidUpdateDates = apperror.New(
		apperror.CodeInvalidInput,
		"Leave start and end dates must be valid and cannot be in the past.",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type.",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave status, expected PENDING, APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"You have already applied for overlapping leaves.",
		http.StatusConflict,
	)
	ErrMedicalDocumentRequired = apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("a medical document is required for sick leave longer than %d days", policy.SickDocumentThreshold),
		http.StatusBadRequest,
	)
	ErrMedicalDocumentTooLarge = apperror.New(
		apperror.CodeTooLarge,
		"medical document is too large",
		http.StatusRequestEntityTooLarge,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave Request Id Not Found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been decided",
		http.StatusConflict,
	)
	ErrNotPendingUpdate = apperror.New(
		apperror.CodeInvalidState,
		"Only PENDING leave requests can be updated.",
		http.StatusConflict,
	)
	ErrNotPendingDelete = apperror.New(
		apperror.CodeInvalidState,
		"Only PENDING leave requests can be deleted.",
		http.StatusConflict,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You can only act on your own leave requests.",
		http.StatusForbidden,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrInvalidDocumentRef = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document reference",
		http.StatusBadRequest,
	)
)

// LimitDetails is the error body of a LIMIT_EXCEEDED response.
type LimitDetails struct {
	LeaveType string `json:"leave_type"`
	Cap       int    `json:"cap"`
	Booked    int    `json:"booked"`
	Requested int    `json:"requested"`
}

// LimitExceeded converts a policy cap violation into a client error that
// keeps the policy's message.
func LimitExceeded(err *policy.LimitError) *apperror.AppError {
	return apperror.Wrap(err, apperror.CodeLimitExceeded, err.Error(), http.StatusUnprocessableEntity).
		WithDetails(LimitDetails{
			LeaveType: string(err.LeaveType),
			Cap:       err.Cap,
			Booked:    err.Booked,
			Requested: err.Requested,
		})
}

// NotificationFailed reports a state change that was saved but whose e-mail
// could not be delivered.
func NotificationFailed(err error) *apperror.AppError {
	return apperror.Delivery(err, "leave request saved but notification could not be delivered")
}

func IsNotificationFailed(err error) bool {
	return apperror.Is(err, apperror.CodeDeliveryFailed)
}

// NoneFound builds the NOT_FOUND error returned for an empty listing.
func NoneFound(status, ownerKind, ownerID string) *apperror.AppError {
	s := strings.ToLower(status)
	switch {
	case ownerKind == "manager" && s == "":
		return apperror.NotFound("No leave requests found for manager ID: " + ownerID)
	case ownerKind == "manager":
		return apperror.NotFound(fmt.Sprintf("No %s leave requests found for manager ID: %s", s, ownerID))
	case ownerKind == "employee" && s == "":
		return apperror.NotFound("No leave requests found for employeeID: " + ownerID)
	case ownerKind == "employee" && s == "pending":
		return apperror.NotFound("No pending leave requests found for employeeID: " + ownerID)
	case ownerKind == "employee":
		return apperror.NotFound(fmt.Sprintf("No %s leave requests for employeeID: %s", s, ownerID))
	case s != "":
		return apperror.NotFound(fmt.Sprintf("No %s leave requests found", s))
	default:
		return apperror.NotFound("No leave requests found")
	}
}

func IsLimitExceeded(err error) bool {
	var limitErr *policy.LimitError
	return errors.As(err, &limitErr)
}
