package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxJSONBody caps request bodies accepted by BindJSON.
const maxJSONBody = 1 << 20

// ErrInvalidJSON is returned by BindJSON for unreadable bodies.
var ErrInvalidJSON = errors.New("app: invalid JSON body")

// Component renders itself to w. Compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helpers.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a chi URL parameter.
	Param(name string) string
	Query(name string) string
	// Form returns a form value, parsing the body on first access.
	Form(name string) string
	Header(name string) string
	SetHeader(name, value string)

	// RequestID is the ID assigned by chi's RequestID middleware.
	RequestID() string

	// WantsJSON reports whether the client sent or accepts JSON.
	WantsJSON() bool

	JSON(code int, v any) error
	String(code int, s string) error
	Render(code int, component Component) error
	NoContent(code int) error

	// BindJSON decodes a JSON body into v.
	BindJSON(v any) error

	// Error creates an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether a response has already been written.
	Written() bool
	ResponseWriter() *ResponseWriter

	Logger() *slog.Logger
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// SetContext replaces the request context, e.g. with a deadline.
	SetContext(ctx context.Context)
	// Set stores a value in the request context.
	Set(key, value any)
	Get(key any) any
}

type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	return &requestContext{request: r, responseWriter: rw, logger: logger}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.responseWriter }
func (c *requestContext) Context() context.Context      { return c.request.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) RequestID() string {
	return middleware.GetReqID(c.request.Context())
}

func (c *requestContext) WantsJSON() bool {
	return isJSON(c.request.Header.Get("Content-Type")) || isJSON(c.request.Header.Get("Accept"))
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := c.responseWriter.Write([]byte(s))
	return err
}

func (c *requestContext) Render(code int, component Component) error {
	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return component.Render(c.request.Context(), c.responseWriter)
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) BindJSON(v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(c.responseWriter, c.request.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidJSON, err)
	}
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) Written() bool                   { return c.responseWriter.Written() }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.responseWriter }
func (c *requestContext) Logger() *slog.Logger            { return c.logger }

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func isJSON(mediaType string) bool {
	return strings.Contains(strings.ToLower(mediaType), "application/json")
}
