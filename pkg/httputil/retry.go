package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNetwork marks transport failures and retryable statuses.
var ErrNetwork = errors.New("network error")

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, doubling delay after each
// failure. Only errors wrapped in RetryableError are retried.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// IsRetryable reports whether err is wrapped in RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// CheckStatus returns nil for 2xx responses. Otherwise it consumes the body
// and returns a RetryableError for 429 and 5xx, or a *StatusError.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	var body ErrorBody
	if json.Unmarshal(data, &body) != nil || body.Error == "" {
		body = ErrorBody{Error: http.StatusText(resp.StatusCode)}
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{Err: fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode, body.Error)}
	}
	return &StatusError{Status: resp.StatusCode, Body: body}
}
