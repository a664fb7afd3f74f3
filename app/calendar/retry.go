package calendar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
)

const maxAttempts = 3

// withRetry runs a remote call with bounded retry and exponential
// backoff. Only transient failures are retried; authorization and other
// client errors surface immediately so the caller can report them.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err = op()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}

		slog.Warn("Calendar call failed, retrying", "attempt", attempt+1, "error", err)
	}

	return err
}

func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	// Network-level failures carry no HTTP status.
	return true
}
