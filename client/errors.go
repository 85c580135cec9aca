package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a structured failure from the collaborator API. Detail carries the
// backend's message verbatim; the screen layer owns turning it into a localized,
// user-facing string.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (HTTP %d)", e.Detail, e.StatusCode)
}

func (e *APIError) IsNotFound() bool     { return e.StatusCode == http.StatusNotFound }
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusConflict
}

// parseAPIError reads the backend's error envelope. FastAPI answers
// {"detail": "..."} with detail occasionally being a list of field errors;
// anything unparseable falls back to the raw body or status text.
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		apiErr.Detail = http.StatusText(resp.StatusCode)
		return apiErr
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		apiErr.Detail = string(body)
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}
	// list-shaped validation detail; keep it readable
	apiErr.Detail = string(envelope.Detail)
	return apiErr
}
