package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInvalidState  = "INVALID_STATE"
	CodeLimitExceeded = "LIMIT_EXCEEDED"
	CodeTooLarge      = "PAYLOAD_TOO_LARGE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeDeliveryFailed     = "DELIVERY_FAILED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
