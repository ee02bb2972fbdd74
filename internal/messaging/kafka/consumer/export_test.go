package consumer

import "time"

// SetRetryBackoff shortens the send retry delays for the duration of a test.
func SetRetryBackoff(initial, max time.Duration) (restore func()) {
	prevInitial, prevMax := retryBackoff, maxRetryBackoff
	retryBackoff, maxRetryBackoff = initial, max
	return func() {
		retryBackoff, maxRetryBackoff = prevInitial, prevMax
	}
}
