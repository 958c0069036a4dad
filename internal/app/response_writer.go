package app

import (
	"net/http"
	"sync/atomic"
)

// ResponseWriter records the status and size of a response and whether
// the header has gone out. It is safe to share between the goroutine of a
// timed-out handler and the error handler.
type ResponseWriter struct {
	http.ResponseWriter
	status  atomic.Int32
	size    atomic.Int64
	started atomic.Bool
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

// WriteHeader sends the status code once; later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.started.CompareAndSwap(false, true) {
		w.status.Store(int32(code))
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.size.Add(int64(n))
	return n, err
}

// Status is the code sent, or 200 if nothing was sent yet.
func (w *ResponseWriter) Status() int {
	if s := w.status.Load(); s != 0 {
		return int(s)
	}
	return http.StatusOK
}

// Size is the number of body bytes written.
func (w *ResponseWriter) Size() int64 { return w.size.Load() }

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool { return w.started.Load() }

// Unwrap lets http.ResponseController reach Flush and Hijack on the
// underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
