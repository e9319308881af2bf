package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 4 << 20

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error string    `json:"error"`
	Code  gerr.Code `json:"code,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as an ErrorBody with the status from StatusFor.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), ErrorBody{
		Error: message(err),
		Code:  gerr.GetCode(err),
	})
}

// message is the error text without the code prefix, keeping the cause.
func message(err error) string {
	var e *gerr.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// StatusFor maps an error to an HTTP status. Bad requests are 400, missing
// resources 404, and instances the core cannot draw 422.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case gerr.IsCoreFailure(err):
		return http.StatusUnprocessableEntity
	}
	switch gerr.GetCode(err) {
	case gerr.ErrCodeInvalidInput, gerr.ErrCodeInvalidFormat, gerr.ErrCodeInvalidPath,
		gerr.ErrCodeInvalidName, gerr.ErrCodeUnknownAlgorithm:
		return http.StatusBadRequest
	case gerr.ErrCodeNotFound, gerr.ErrCodeFileNotFound:
		return http.StatusNotFound
	case gerr.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the body of r into v. Bodies over MaxBodyBytes,
// unknown fields and trailing data are INVALID_INPUT errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return gerr.Wrap(gerr.ErrCodeInvalidInput, err, "decode request")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return gerr.New(gerr.ErrCodeInvalidInput, "decode request: unexpected data after JSON body")
	}
	return nil
}

// StatusError is a non-2xx response that is not worth retrying.
type StatusError struct {
	Status int
	Body   ErrorBody
}

func (e *StatusError) Error() string {
	if e.Body.Code != "" {
		return fmt.Sprintf("status %d: [%s] %s", e.Status, e.Body.Code, e.Body.Error)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Body.Error)
}

// Unwrap exposes the server's error code to gerr.Is and gerr.GetCode.
func (e *StatusError) Unwrap() error {
	if e.Body.Code == "" {
		return nil
	}
	return gerr.New(e.Body.Code, "%s", e.Body.Error)
}
