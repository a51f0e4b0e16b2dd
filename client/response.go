package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const UnknownErrorSummary = "Unknown error"

// Error is the error object returned by the gateway.
type Error struct {
	Summary string `json:"summary"`
}

// Response carries the fields shared by every gateway response.
type Response struct {
	Success bool
	Error   *Error
}

type jsonresponse struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var jsonresponse jsonresponse
	err := json.Unmarshal(data, &jsonresponse)
	if err != nil {
		return err
	}
	r.Success = jsonresponse.Success
	r.Error, err = decodeError(jsonresponse.Error)
	return err
}

// Err turns a business failure into an error. It returns nil when the
// response reports success.
func (r *Response) Err() error {
	if r.Success {
		return nil
	}
	summary := UnknownErrorSummary
	if r.Error != nil && r.Error.Summary != "" {
		summary = r.Error.Summary
	}
	return &BusinessError{Summary: summary}
}

// BusinessError is a success=false outcome converted by Response.Err.
type BusinessError struct {
	Summary string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("payment gateway: %s", e.Summary)
}

// decodeError treats a missing, null or empty error object as no error.
func decodeError(raw json.RawMessage) (*Error, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	var e Error
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
