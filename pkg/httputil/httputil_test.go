package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"core failure", fmt.Errorf("draw: %w", gerr.New(gerr.ErrCodeVisibilitySearch, "exhausted")), http.StatusUnprocessableEntity},
		{"outer face", gerr.New(gerr.ErrCodeInvalidOuterFace, "bad face"), http.StatusUnprocessableEntity},
		{"bad input", gerr.New(gerr.ErrCodeInvalidInput, "bad"), http.StatusBadRequest},
		{"algorithm", gerr.New(gerr.ErrCodeUnknownAlgorithm, "c"), http.StatusBadRequest},
		{"not found", gerr.New(gerr.ErrCodeNotFound, "gone"), http.StatusNotFound},
		{"unsupported", gerr.New(gerr.ErrCodeUnsupported, "gif"), http.StatusNotImplemented},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", fmt.Errorf("load: %w", context.Canceled), http.StatusServiceUnavailable},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, gerr.Wrap(gerr.ErrCodeInvalidInput, errors.New("unexpected EOF"), "decode request"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{`"error": "decode request: unexpected EOF"`, `"code": "INVALID_INPUT"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	type req struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"ok", `{"name": "k4"}`, false},
		{"unknown field", `{"nom": "k4"}`, true},
		{"trailing", `{"name": "k4"} {}`, true},
		{"malformed", `{"name":`, true},
		{"too large", `{"name": "` + strings.Repeat("x", MaxBodyBytes) + `"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v req
			err := DecodeJSON(httptest.NewRecorder(), r, &v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !gerr.Is(err, gerr.ErrCodeInvalidInput) {
				t.Errorf("error code = %s", gerr.GetCode(err))
			}
			if err == nil && v.Name != "k4" {
				t.Errorf("Name = %q", v.Name)
			}
		})
	}
}

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestCheckStatus(t *testing.T) {
	if err := CheckStatus(response(http.StatusCreated, "")); err != nil {
		t.Errorf("201: %v", err)
	}

	err := CheckStatus(response(http.StatusUnprocessableEntity, `{"error": "exhausted", "code": "VISIBILITY_SEARCH_EXHAUSTED"}`))
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusUnprocessableEntity {
		t.Fatalf("422: %v", err)
	}
	if IsRetryable(err) {
		t.Error("422 should not be retryable")
	}
	if !gerr.Is(err, gerr.ErrCodeVisibilitySearch) {
		t.Errorf("code lost: %v", err)
	}

	for _, status := range []int{http.StatusTooManyRequests, http.StatusBadGateway} {
		err := CheckStatus(response(status, "<html>"))
		if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
			t.Errorf("%d: %v, want retryable network error", status, err)
		}
	}

	err = CheckStatus(response(http.StatusNotFound, "not json"))
	if !errors.As(err, &se) || se.Body.Error != "Not Found" || se.Unwrap() != nil {
		t.Errorf("404: %v", err)
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	retryable := &RetryableError{Err: ErrNetwork}

	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return retryable
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("Retry() = %v after %d calls", err, calls)
	}

	calls = 0
	permanent := errors.New("permanent")
	if err := Retry(ctx, 3, time.Millisecond, func() error { calls++; return permanent }); err != permanent || calls != 1 {
		t.Errorf("permanent: %v after %d calls", err, calls)
	}

	calls = 0
	if err := Retry(ctx, 0, time.Millisecond, func() error { calls++; return retryable }); err != retryable || calls != 1 {
		t.Errorf("zero attempts: %v after %d calls", err, calls)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := Retry(canceled, 3, time.Hour, func() error { return retryable }); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled: %v", err)
	}
}
