// Package httputil holds the HTTP plumbing shared by the gridraw API server
// and its client.
//
// # Responses
//
// [WriteJSON] and [WriteError] write JSON bodies. Errors are rendered as
//
//	{"error": "need at least 3 vertices, got 2", "code": "INVALID_INPUT_SIZE"}
//
// with the HTTP status chosen by [StatusFor] from the error code.
//
// # Requests
//
// [DecodeJSON] reads a size-limited JSON request body and rejects unknown
// fields.
//
// # Retry
//
// [Retry] repeats an operation with exponential backoff while it fails
// with a [RetryableError]. [CheckStatus] classifies a response status:
// 5xx and 429 are retryable, other non-2xx statuses are returned as
// [*StatusError] carrying the server's error code.
package httputil
