package httpclient

import (
	"fmt"

	"github.com/zeebo/errs"
)

var (
	// ErrMalformedResponse is returned when a response body is not the JSON
	// the caller expected.
	ErrMalformedResponse = errs.Class("malformed response")
	// ErrAPI is returned for HTTP statuses outside 2xx.
	ErrAPI = errs.Class("api error")
	// ErrTransport wraps network level failures (DNS, connect, TLS, context).
	ErrTransport = errs.Class("transport error")
	// ErrRequest is returned when a request body cannot be encoded.
	ErrRequest = errs.Class("invalid request")
)

const maxErrorBody = 512

type MalformedResponseError struct {
	StatusCode int
	// Body is the raw response text.
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("failed to parse response (status %d): %s", e.StatusCode, body)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

type APIError struct {
	StatusCode int
	Summary    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Summary)
}
