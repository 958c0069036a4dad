package app

import (
	"errors"
	"net/http"
)

// HTTPError carries a status code and a user-facing message.
type HTTPError struct {
	// Err is the underlying error, logged but never shown.
	Err       error
	Message   string
	RequestID string
	Code      int
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

func (e *HTTPError) StatusCode() int { return e.Code }

func (e *HTTPError) StatusText() string { return http.StatusText(e.Code) }

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) { e.Err = err }
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) { e.RequestID = id }
}

func newError(code int, message string, opts []HTTPErrorOption) *HTTPError {
	e := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return newError(http.StatusBadRequest, message, opts)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return newError(http.StatusNotFound, message, opts)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return newError(http.StatusInternalServerError, message, opts)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return newError(http.StatusServiceUnavailable, message, opts)
}

// AsHTTPError extracts an HTTPError from err's chain, or returns nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// errorBody is the JSON shape of DefaultErrorHandler responses.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// DefaultErrorHandler writes HTTPErrors with their own code and message.
// Anything else becomes a logged 500 with a generic message.
func DefaultErrorHandler(c Context, err error) error {
	httpErr := AsHTTPError(err)
	if httpErr == nil {
		httpErr = ErrInternal(http.StatusText(http.StatusInternalServerError), WithError(err))
	}
	if httpErr.RequestID == "" {
		httpErr.RequestID = c.RequestID()
	}

	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed", "status", httpErr.Code, "error", err.Error())
	}

	if c.WantsJSON() {
		return c.JSON(httpErr.Code, errorBody{Error: httpErr.Message, RequestID: httpErr.RequestID})
	}
	return c.String(httpErr.Code, httpErr.Message)
}
