package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any *Error carrying a 401 via errors.Is, so
// callers can detect a rejected token without inspecting status codes.
var ErrUnauthorized = errors.New("api: unauthorized")

// genericDetail is shown when the server gives no usable detail message.
const genericDetail = "The request failed. Please try again."

// Error is a non-2xx API response. Detail carries the server's message when
// the body decoded, otherwise the generic fallback.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// errorDetail is the FastAPI-style error envelope the backend emits.
type errorDetail struct {
	Detail string `json:"detail"`
}

// newError decodes body into an *Error, falling back to the generic
// message when the envelope is absent or malformed.
func newError(status int, body []byte) *Error {
	var env errorDetail
	if err := json.Unmarshal(body, &env); err == nil && env.Detail != "" {
		return &Error{StatusCode: status, Detail: env.Detail}
	}
	return &Error{StatusCode: status, Detail: genericDetail}
}

// Detail extracts a user-presentable message from any error returned by the
// client: the server detail when available, the error text otherwise.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
